package main

import "log"

func main() {
	InitLogger()
	config, err := LoadAppConfig("config.yaml")
	if err != nil {
		log.Fatal("Error in Loading Configs: ", err.Error())
	}

	fanout := NewFanout(
		NewPostClient(config.Services.Post.Addr),
		NewCommentClient(config.Services.Comment.Addr),
		NewLikeClient(config.Services.Like.Addr),
		config.Services,
	)

	var limiter *RateLimiter
	if config.RateLimiting.Enabled {
		limiter, err = NewRateLimiter(config.RateLimiting)
		if err != nil {
			log.Println("Error in Loading rate limiter, serving without limits: ", err.Error())
			limiter = nil
		}
	}

	server := NewAggregatorServer(fanout, limiter, config)
	log.Fatal(server.start())
}
