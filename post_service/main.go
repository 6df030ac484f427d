package main

import (
	"log"

	"github.com/ShounakM04/Blog-Microservices/post_service/cachedRepo"
	"github.com/ShounakM04/Blog-Microservices/post_service/db"
	"github.com/ShounakM04/Blog-Microservices/post_service/postRepo"
)

func main() {
	InitLogger()
	config, err := LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err.Error())
	}

	primaryDB, replicaDB, err := db.InitDBConnections(config)
	if err != nil {
		log.Fatal("Failed to initialize database connections: ", err.Error())
	}
	defer primaryDB.Close()
	defer replicaDB.Close()

	var repo postRepo.PostRepo = postRepo.NewPostgresRepo(primaryDB, replicaDB)
	cached, err := cachedRepo.NewRedisRepo(repo, config.CacheAddr, config.CachePassword)
	if err != nil {
		log.Println("Error in Loading Redis cache, serving from Postgres only: ", err.Error())
	} else {
		repo = cached
	}

	postService := NewPostService(repo, config)
	log.Fatal(postService.start())
}
