package cachedRepo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/ShounakM04/Blog-Microservices/like_service/likeRepo"
	"github.com/ShounakM04/Blog-Microservices/like_service/models"
	"github.com/redis/go-redis/v9"
)

const countTTL = 5 * time.Minute

type redisRepo struct {
	repo        likeRepo.LikeRepo // presistance db
	redisClient *redis.Client
}

func NewRedisRepo(repo likeRepo.LikeRepo, addr, pass string) (*redisRepo, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &redisRepo{
		repo:        repo,
		redisClient: client,
	}, nil
}

func countKey(target models.Target) string {
	if target.PostID != nil {
		return fmt.Sprintf("likes:post:%v", *target.PostID)
	}
	return fmt.Sprintf("likes:comment:%v", *target.CommentID)
}

// Writes invalidate rather than increment: a missed increment drifts
// until somebody notices, a missed invalidation heals at the TTL. The
// unique-indexed table stays the source of truth either way.
func (rs *redisRepo) invalidate(ctx context.Context, target models.Target) {
	if err := rs.redisClient.Del(ctx, countKey(target)).Err(); err != nil {
		log.Printf("Failed to invalidate count for %v: %v\n", countKey(target), err.Error())
	}
}

func (rs *redisRepo) CreateLike(ctx context.Context, userID int64, target models.Target) (models.Like, error) {
	like, err := rs.repo.CreateLike(ctx, userID, target)
	if err != nil {
		return models.Like{}, err
	}
	rs.invalidate(ctx, target)
	return like, nil
}

func (rs *redisRepo) DeleteLike(ctx context.Context, userID int64, target models.Target) error {
	if err := rs.repo.DeleteLike(ctx, userID, target); err != nil {
		return err
	}
	rs.invalidate(ctx, target)
	return nil
}

func (rs *redisRepo) CountFor(ctx context.Context, target models.Target) (int64, error) {
	key := countKey(target)
	cached, err := rs.redisClient.Get(ctx, key).Result()
	if err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Failed to read %v from cache: %v\n", key, err.Error())
	}

	count, err := rs.repo.CountFor(ctx, target)
	if err != nil {
		return 0, err
	}
	if err := rs.redisClient.Set(ctx, key, count, countTTL).Err(); err != nil {
		log.Printf("Failed to cache %v: %v\n", key, err.Error())
	}
	return count, nil
}

func (rs *redisRepo) HasLiked(ctx context.Context, userID int64, target models.Target) (bool, error) {
	return rs.repo.HasLiked(ctx, userID, target)
}

func (rs *redisRepo) ListByUser(ctx context.Context, userID int64) ([]models.Like, error) {
	return rs.repo.ListByUser(ctx, userID)
}
