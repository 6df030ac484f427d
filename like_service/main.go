package main

import (
	"log"

	"github.com/ShounakM04/Blog-Microservices/like_service/cachedRepo"
	"github.com/ShounakM04/Blog-Microservices/like_service/likeRepo"
)

func main() {
	InitLogger()
	config, err := LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err.Error())
	}

	db := InitDB(config)
	defer db.Close()

	var repo likeRepo.LikeRepo = likeRepo.NewPostgresRepo(db)
	cached, err := cachedRepo.NewRedisRepo(repo, config.CacheAddr, config.CachePassword)
	if err != nil {
		log.Println("Error in Loading Redis cache, serving counts from Postgres only: ", err.Error())
	} else {
		repo = cached
	}

	server := NewLikeServer(repo, config)
	log.Fatal(server.start())
}
