package postRepo

import (
	"context"
	"errors"

	"github.com/ShounakM04/Blog-Microservices/post_service/models"
)

var ErrNotFound = errors.New("post not found")

type PostRepo interface {
	CreatePost(ctx context.Context, post models.Post) (models.Post, error)
	GetPost(ctx context.Context, id int64) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	UpdatePost(ctx context.Context, id int64, upd models.UpdatePostRequest) (models.Post, error)
	DeletePost(ctx context.Context, id int64) error
}
