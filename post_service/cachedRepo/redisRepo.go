package cachedRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ShounakM04/Blog-Microservices/post_service/models"
	"github.com/ShounakM04/Blog-Microservices/post_service/postRepo"
	"github.com/redis/go-redis/v9"
)

const postTTL = 10 * time.Minute

type redisRepo struct {
	repo        postRepo.PostRepo // presistance db
	redisClient *redis.Client
}

func NewRedisRepo(repo postRepo.PostRepo, addr, pass string) (*redisRepo, error) {
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

func postKey(id int64) string {
	return fmt.Sprintf("post:%v", id)
}

func (rs *redisRepo) cachePost(ctx context.Context, post models.Post) {
	data, err := json.Marshal(post)
	if err != nil {
		return
	}
	if err := rs.redisClient.Set(ctx, postKey(post.ID), data, postTTL).Err(); err != nil {
		log.Printf("Failed to cache post{%v}: %v\n", post.ID, err.Error())
	}
}

func (rs *redisRepo) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	created, err := rs.repo.CreatePost(ctx, post)
	if err != nil {
		return models.Post{}, err
	}
	rs.cachePost(ctx, created)
	return created, nil
}

func (rs *redisRepo) GetPost(ctx context.Context, id int64) (models.Post, error) {
	data, err := rs.redisClient.Get(ctx, postKey(id)).Bytes()
	if err == nil {
		var post models.Post
		if err := json.Unmarshal(data, &post); err == nil {
			return post, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("Failed to read post{%v} from cache: %v\n", id, err.Error())
	}

	post, err := rs.repo.GetPost(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	rs.cachePost(ctx, post)
	return post, nil
}

func (rs *redisRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	return rs.repo.ListPosts(ctx)
}

func (rs *redisRepo) UpdatePost(ctx context.Context, id int64, upd models.UpdatePostRequest) (models.Post, error) {
	post, err := rs.repo.UpdatePost(ctx, id, upd)
	if err != nil {
		return models.Post{}, err
	}
	rs.cachePost(ctx, post)
	return post, nil
}

func (rs *redisRepo) DeletePost(ctx context.Context, id int64) error {
	if err := rs.repo.DeletePost(ctx, id); err != nil {
		return err
	}
	// in case of cache failing, there will be inconsistency as users can
	// still see the post even it is deleted, until the TTL expires.
	// just log the error now
	if err := rs.redisClient.Del(ctx, postKey(id)).Err(); err != nil {
		log.Printf("Failed to Delete post{%v} from the cache: %v\n", id, err.Error())
	}
	return nil
}
