package models

import (
	"errors"
	"time"
)

// Target names exactly one likeable entity. The two scopes are
// independent uniqueness domains: one like per (user, post) and one per
// (user, comment).
type Target struct {
	PostID    *int64 `json:"postId,omitempty"`
	CommentID *int64 `json:"commentId,omitempty"`
}

func (t Target) Validate() error {
	if (t.PostID == nil) == (t.CommentID == nil) {
		return errors.New("exactly one of postId or commentId is required")
	}
	return nil
}

type Like struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	PostID    *int64    `json:"postId,omitempty"`
	CommentID *int64    `json:"commentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CountResponse struct {
	PostID int64 `json:"postId"`
	Count  int64 `json:"count"`
}

type LikedResponse struct {
	PostID int64 `json:"postId"`
	Liked  bool  `json:"liked"`
}

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	CacheAddr     string
	CachePassword string

	JWTSecret []byte

	ServerHost string
	ServerPort string
}
