package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

func InitDB(config Config) *sql.DB {
	DBpath := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)
	DB, err := sql.Open("postgres", DBpath)
	if err != nil {
		log.Fatal("Failed to Connect with DB", err.Error())
	}
	// post_id is a plain value copied from the client, no foreign key:
	// the post lives in another service's database.
	_, err = DB.Exec(`CREATE TABLE IF NOT EXISTS comments (
        id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
        post_id BIGINT NOT NULL,
        author_id BIGINT NOT NULL,
        content TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );`)
	if err != nil {
		log.Fatal("Failed to create Comments table: ", err.Error())
	}
	_, err = DB.Exec(`CREATE INDEX IF NOT EXISTS comments_post_idx ON comments (post_id, created_at DESC);`)
	if err != nil {
		log.Fatal("Failed to create Comments index: ", err.Error())
	}
	DB.SetMaxOpenConns(15)
	DB.SetMaxIdleConns(5)
	return DB
}
