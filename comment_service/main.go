package main

import (
	"log"
)

func main() {
	InitLogger()
	config, err := LoadConfig()
	if err != nil {
		log.Fatal("Failed To Load The Configuration:", err.Error())
	}
	db := InitDB(config)
	commentRepo := NewCommentRepo(db)
	server := NewCommentServer(commentRepo, config)

	log.Fatal(server.start())
}
