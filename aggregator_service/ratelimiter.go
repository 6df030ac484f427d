package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
	"github.com/redis/go-redis/v9"
)

// Fixed window counter per client IP. INCR and PEXPIRE run atomically
// inside the script so the window never leaks.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
if current > tonumber(ARGV[1]) then
    return 0
end
return 1
`

type RateLimiter struct {
	redisClient *redis.Client
	limit       int
	window      time.Duration
}

func NewRateLimiter(config models.RateLimitingConfig) (*RateLimiter, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Println("Error in Connection to redis: ", err.Error())
		return nil, err
	}
	window := time.Duration(config.WindowMs) * time.Millisecond
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{redisClient: c, limit: config.Limit, window: window}, nil
}

func (rl *RateLimiter) AllowIP(r *http.Request) bool {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	keys := []string{"ratelimit:" + host}
	args := []interface{}{rl.limit, rl.window.Milliseconds()}
	res, err := rl.redisClient.Eval(r.Context(), rateLimitScript, keys, args...).Result()
	// lets fail-Open
	if err != nil {
		log.Printf("There is error in redis connection: %v", err.Error())
		return true
	}
	if v, ok := res.(int64); ok {
		return v == 1
	}
	return true
}
