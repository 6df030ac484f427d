package main

import (
	"context"
	"database/sql"
	"errors"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepo interface {
	CreateComment(ctx context.Context, comment Comment) (Comment, error)
	ListForPost(ctx context.Context, postID int64) ([]Comment, error)
	UpdateComment(ctx context.Context, id int64, content string) (Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}

type postgresCommentRepo struct {
	db *sql.DB
}

func NewCommentRepo(db *sql.DB) *postgresCommentRepo {
	return &postgresCommentRepo{
		db: db,
	}
}

func (repo *postgresCommentRepo) CreateComment(ctx context.Context, comment Comment) (Comment, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		comment.PostID, comment.AuthorID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (repo *postgresCommentRepo) ListForPost(ctx context.Context, postID int64) ([]Comment, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, post_id, author_id, content, created_at
		FROM comments WHERE post_id = $1
		ORDER BY created_at DESC, id DESC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (repo *postgresCommentRepo) UpdateComment(ctx context.Context, id int64, content string) (Comment, error) {
	var comment Comment
	err := repo.db.QueryRowContext(ctx,
		`UPDATE comments SET content = $2 WHERE id = $1
		RETURNING id, post_id, author_id, content, created_at`,
		id, content).
		Scan(&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Content, &comment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Comment{}, ErrCommentNotFound
		}
		return Comment{}, err
	}
	return comment, nil
}

func (repo *postgresCommentRepo) DeleteComment(ctx context.Context, id int64) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCommentNotFound
	}
	return nil
}
