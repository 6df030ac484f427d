package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/ShounakM04/Blog-Microservices/like_service/models"
	_ "github.com/lib/pq"
)

// The CHECK keeps every row bound to exactly one target; the two partial
// unique indexes are the at-most-one-like invariant, one per scope. They
// hold across any number of service instances because Postgres enforces
// them inside the insert itself.
var likeSchema = []string{
	`CREATE TABLE IF NOT EXISTS likes (
        id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        user_id BIGINT NOT NULL,
        post_id BIGINT,
        comment_id BIGINT,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        CHECK ((post_id IS NULL) <> (comment_id IS NULL))
    );`,
	`CREATE UNIQUE INDEX IF NOT EXISTS likes_user_post_unique
        ON likes (user_id, post_id) WHERE post_id IS NOT NULL;`,
	`CREATE UNIQUE INDEX IF NOT EXISTS likes_user_comment_unique
        ON likes (user_id, comment_id) WHERE comment_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS likes_post_idx
        ON likes (post_id) WHERE post_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS likes_comment_idx
        ON likes (comment_id) WHERE comment_id IS NOT NULL;`,
	`CREATE INDEX IF NOT EXISTS likes_user_idx
        ON likes (user_id, created_at DESC);`,
}

func InitDB(config models.Config) *sql.DB {
	DBpath := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)
	DB, err := sql.Open("postgres", DBpath)
	if err != nil {
		log.Fatal("Failed to Connect with DB", err.Error())
	}
	for _, stmt := range likeSchema {
		if _, err := DB.Exec(stmt); err != nil {
			log.Fatal("Failed to create Likes schema: ", err.Error())
		}
	}
	DB.SetMaxOpenConns(15)
	DB.SetMaxIdleConns(5)
	return DB
}
