package likeRepo

import (
	"context"
	"errors"

	"github.com/ShounakM04/Blog-Microservices/like_service/models"
)

var (
	ErrAlreadyLiked = errors.New("already liked")
	ErrNotFound     = errors.New("like not found")
)

// CreateLike must be a single atomic constrained write: the store itself
// rejects a duplicate (user, target) pair. A check-then-insert sequence
// is not equivalent — two racing callers both pass the check.
type LikeRepo interface {
	CreateLike(ctx context.Context, userID int64, target models.Target) (models.Like, error)
	DeleteLike(ctx context.Context, userID int64, target models.Target) error
	CountFor(ctx context.Context, target models.Target) (int64, error)
	HasLiked(ctx context.Context, userID int64, target models.Target) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Like, error)
}
