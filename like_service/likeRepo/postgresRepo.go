package likeRepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ShounakM04/Blog-Microservices/like_service/models"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{
		db: db,
	}
}

// The uniqueness invariant lives in the two partial unique indexes on the
// likes table, one per scope. Concurrent inserts for the same (user,
// target) pair resolve inside Postgres: one row, one unique_violation.
func (ps *PostgresRepo) CreateLike(ctx context.Context, userID int64, target models.Target) (models.Like, error) {
	like := models.Like{
		UserID:    userID,
		PostID:    target.PostID,
		CommentID: target.CommentID,
	}
	err := ps.db.QueryRowContext(ctx,
		`INSERT INTO likes (user_id, post_id, comment_id)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		userID, target.PostID, target.CommentID).
		Scan(&like.ID, &like.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Like{}, ErrAlreadyLiked
		}
		return models.Like{}, err
	}
	return like, nil
}

func (ps *PostgresRepo) DeleteLike(ctx context.Context, userID int64, target models.Target) error {
	var (
		res sql.Result
		err error
	)
	if target.PostID != nil {
		res, err = ps.db.ExecContext(ctx,
			`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, *target.PostID)
	} else {
		res, err = ps.db.ExecContext(ctx,
			`DELETE FROM likes WHERE user_id = $1 AND comment_id = $2`, userID, *target.CommentID)
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (ps *PostgresRepo) CountFor(ctx context.Context, target models.Target) (int64, error) {
	var count int64
	var err error
	if target.PostID != nil {
		err = ps.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM likes WHERE post_id = $1`, *target.PostID).Scan(&count)
	} else {
		err = ps.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM likes WHERE comment_id = $1`, *target.CommentID).Scan(&count)
	}
	return count, err
}

func (ps *PostgresRepo) HasLiked(ctx context.Context, userID int64, target models.Target) (bool, error) {
	var liked bool
	var err error
	if target.PostID != nil {
		err = ps.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`,
			userID, *target.PostID).Scan(&liked)
	} else {
		err = ps.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND comment_id = $2)`,
			userID, *target.CommentID).Scan(&liked)
	}
	return liked, err
}

func (ps *PostgresRepo) ListByUser(ctx context.Context, userID int64) ([]models.Like, error) {
	rows, err := ps.db.QueryContext(ctx,
		`SELECT id, user_id, post_id, comment_id, created_at
		FROM likes WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make([]models.Like, 0)
	for rows.Next() {
		var (
			like      models.Like
			postID    sql.NullInt64
			commentID sql.NullInt64
		)
		if err := rows.Scan(&like.ID, &like.UserID, &postID, &commentID, &like.CreatedAt); err != nil {
			return nil, err
		}
		if postID.Valid {
			like.PostID = &postID.Int64
		}
		if commentID.Valid {
			like.CommentID = &commentID.Int64
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}
