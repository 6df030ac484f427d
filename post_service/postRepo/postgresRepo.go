package postRepo

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/ShounakM04/Blog-Microservices/post_service/models"
	"github.com/lib/pq"
)

// Writes go to the primary. Reads go to the replica, which may lag the
// primary; the system accepts eventual cross-store consistency.
type PostgresRepo struct {
	primary *sql.DB
	replica *sql.DB
}

func NewPostgresRepo(primary, replica *sql.DB) *PostgresRepo {
	return &PostgresRepo{
		primary: primary,
		replica: replica,
	}
}

func (ps *PostgresRepo) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if post.Tags == nil {
		post.Tags = []string{}
	}
	err := ps.primary.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, author_id, tags)
		VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at`,
		post.Title, post.Content, post.AuthorID, pq.Array(post.Tags)).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.Println("Error creating post: ", err.Error())
		return models.Post{}, err
	}
	return post, nil
}

func (ps *PostgresRepo) GetPost(ctx context.Context, id int64) (models.Post, error) {
	var post models.Post
	err := ps.replica.QueryRowContext(ctx,
		`SELECT id, title, content, author_id, tags, created_at, updated_at
		FROM posts WHERE id = $1`, id).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID,
			pq.Array(&post.Tags), &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

// ListPosts defines the "latest posts" contract: descending creation time.
func (ps *PostgresRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	rows, err := ps.replica.QueryContext(ctx,
		`SELECT id, title, content, author_id, tags, created_at, updated_at
		FROM posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID,
			pq.Array(&post.Tags), &post.CreatedAt, &post.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (ps *PostgresRepo) UpdatePost(ctx context.Context, id int64, upd models.UpdatePostRequest) (models.Post, error) {
	var tags interface{}
	if upd.Tags != nil {
		tags = pq.Array(*upd.Tags)
	}
	var post models.Post
	err := ps.primary.QueryRowContext(ctx,
		`UPDATE posts SET
			title      = COALESCE($2, title),
			content    = COALESCE($3, content),
			tags       = COALESCE($4, tags),
			updated_at = now()
		WHERE id = $1
		RETURNING id, title, content, author_id, tags, created_at, updated_at`,
		id, upd.Title, upd.Content, tags).
		Scan(&post.ID, &post.Title, &post.Content, &post.AuthorID,
			pq.Array(&post.Tags), &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Post{}, ErrNotFound
		}
		log.Printf("Error updating post{%v}: %v\n", id, err.Error())
		return models.Post{}, err
	}
	return post, nil
}

// DeletePost removes only the post row. Comments and likes referencing it
// stay where they are; there is no cross-store cascade.
func (ps *PostgresRepo) DeletePost(ctx context.Context, id int64) error {
	res, err := ps.primary.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error Deleting post{%v}: %v\n", id, err.Error())
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
