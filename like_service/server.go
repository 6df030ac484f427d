package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/ShounakM04/Blog-Microservices/httpapi"
	"github.com/ShounakM04/Blog-Microservices/like_service/likeRepo"
	"github.com/ShounakM04/Blog-Microservices/like_service/models"
)

type LikeServer struct {
	repo   likeRepo.LikeRepo // count-cache-wrapped when redis is reachable
	config models.Config
	router *http.ServeMux
}

func NewLikeServer(repo likeRepo.LikeRepo, config models.Config) *LikeServer {
	server := &LikeServer{
		repo:   repo,
		config: config,
		router: http.NewServeMux(),
	}
	server.addRoutes()
	return server
}

func (s *LikeServer) addRoutes() {
	s.router.HandleFunc("POST /likes", s.handleCreateLike)
	s.router.HandleFunc("DELETE /likes", s.handleDeleteLike)
	s.router.HandleFunc("GET /likes/post/{id}/count", s.handlePostCount)
	s.router.HandleFunc("GET /likes/post/{id}/liked", s.handlePostLiked)
	s.router.HandleFunc("GET /likes/me", s.handleListMine)
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
}

func (s *LikeServer) start() error {
	log.Printf("Starting like_service on %s:%s", s.config.ServerHost, s.config.ServerPort)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(s.config.ServerHost, s.config.ServerPort),
		Handler: s.router,
	}
	return httpServer.ListenAndServe()
}

func (s *LikeServer) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	actx, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret)
	if !ok {
		return
	}
	var target models.Target
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := target.Validate(); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	like, err := s.repo.CreateLike(r.Context(), actx.UserID, target)
	if err != nil {
		if errors.Is(err, likeRepo.ErrAlreadyLiked) {
			httpapi.WriteError(w, http.StatusConflict, "Already liked")
			return
		}
		log.Printf("Failed to create like by user{%v}: %v\n", actx.UserID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to create like")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, like)
}

func (s *LikeServer) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	actx, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret)
	if !ok {
		return
	}
	var target models.Target
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := target.Validate(); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.repo.DeleteLike(r.Context(), actx.UserID, target); err != nil {
		if errors.Is(err, likeRepo.ErrNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Like not found")
			return
		}
		log.Printf("Failed to delete like by user{%v}: %v\n", actx.UserID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to remove like")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Unliked"})
}

func (s *LikeServer) handlePostCount(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	count, err := s.repo.CountFor(r.Context(), models.Target{PostID: &postID})
	if err != nil {
		log.Printf("Failed to count likes for post{%v}: %v\n", postID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to get likes count")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, models.CountResponse{PostID: postID, Count: count})
}

func (s *LikeServer) handlePostLiked(w http.ResponseWriter, r *http.Request) {
	actx, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret)
	if !ok {
		return
	}
	postID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	liked, err := s.repo.HasLiked(r.Context(), actx.UserID, models.Target{PostID: &postID})
	if err != nil {
		log.Printf("Failed to check like for post{%v} by user{%v}: %v\n", postID, actx.UserID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to check like")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, models.LikedResponse{PostID: postID, Liked: liked})
}

func (s *LikeServer) handleListMine(w http.ResponseWriter, r *http.Request) {
	actx, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret)
	if !ok {
		return
	}
	likes, err := s.repo.ListByUser(r.Context(), actx.UserID)
	if err != nil {
		log.Printf("Failed to list likes for user{%v}: %v\n", actx.UserID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to get user likes")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, likes)
}
