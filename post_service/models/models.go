package models

import "time"

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreatePostRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// UpdatePostRequest carries a partial update; nil fields keep the stored
// value.
type UpdatePostRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type Config struct {
	// Primary DB
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Replica DB (falls back to the primary when unset)
	DBReplicaHost     string
	DBReplicaPort     string
	DBReplicaUser     string
	DBReplicaPassword string
	DBReplicaName     string

	CacheAddr     string
	CachePassword string

	JWTSecret []byte

	ServerHost string
	ServerPort string
}
