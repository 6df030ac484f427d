package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
	"github.com/ShounakM04/Blog-Microservices/auth"
	"github.com/ShounakM04/Blog-Microservices/httpapi"
)

type AggregatorServer struct {
	fanout  *Fanout
	limiter *RateLimiter
	config  models.AppConfig
	router  *http.ServeMux
}

func NewAggregatorServer(fanout *Fanout, limiter *RateLimiter, config models.AppConfig) *AggregatorServer {
	s := &AggregatorServer{
		fanout:  fanout,
		limiter: limiter,
		config:  config,
		router:  http.NewServeMux(),
	}
	s.addRoutes()
	return s
}

func (s *AggregatorServer) addRoutes() {
	s.router.HandleFunc("GET /pages/post/{id}", s.handlePostPage)
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (s *AggregatorServer) start() error {
	server := &http.Server{
		Addr:    s.config.Server.Host + ":" + s.config.Server.Port,
		Handler: s.router,
	}
	log.Println("Aggregator Service runs on port: ", s.config.Server.Port)
	return server.ListenAndServe()
}

// bearerToken pulls the raw token out of r without requiring one.
// A request with no Authorization header is an anonymous caller; a
// request that carries a token must carry a valid one.
func (s *AggregatorServer) bearerToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", true
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if _, err := auth.VerifyToken(token, s.config.JWTSecret); err != nil {
		if errors.Is(err, auth.ErrExpired) {
			httpapi.WriteError(w, http.StatusUnauthorized, "Token expired")
		} else {
			httpapi.WriteError(w, http.StatusUnauthorized, "Invalid or missing token")
		}
		return "", false
	}
	return token, true
}

func (s *AggregatorServer) handlePostPage(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil && !s.limiter.AllowIP(r) {
		httpapi.WriteError(w, http.StatusTooManyRequests, "Too many requests")
		return
	}
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	token, ok := s.bearerToken(w, r)
	if !ok {
		return
	}
	page, err := s.fanout.FetchPostPage(r.Context(), postID, token)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Println("Error in Fetching post page: ", err.Error())
		httpapi.WriteError(w, http.StatusBadGateway, "Post service unavailable")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, page)
}
