package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/ShounakM04/Blog-Microservices/httpapi"
)

type CommentServer struct {
	repo   CommentRepo
	config Config
	router *http.ServeMux
}

func NewCommentServer(repo CommentRepo, config Config) *CommentServer {
	server := &CommentServer{
		repo:   repo,
		config: config,
		router: http.NewServeMux(),
	}
	server.addRoutes()
	return server
}

func (s *CommentServer) addRoutes() {
	s.router.HandleFunc("POST /comments", s.handleCreateComment)
	s.router.HandleFunc("GET /comments/post/{postId}", s.handleListForPost)
	s.router.HandleFunc("PUT /comments/{id}", s.handleUpdateComment)
	s.router.HandleFunc("DELETE /comments/{id}", s.handleDeleteComment)
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
}

func (s *CommentServer) start() error {
	log.Printf("Starting comment_service on %s:%s", s.config.ServerHost, s.config.ServerPort)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(s.config.ServerHost, s.config.ServerPort),
		Handler: s.router,
	}
	return httpServer.ListenAndServe()
}

func (s *CommentServer) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	actx, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret)
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PostID == 0 || req.Content == "" {
		httpapi.WriteError(w, http.StatusBadRequest, "postId and content are required")
		return
	}
	// The postId is stored verbatim; whether such a post exists is the
	// post service's business, not ours.
	comment, err := s.repo.CreateComment(r.Context(), Comment{
		PostID:   req.PostID,
		AuthorID: actx.UserID,
		Content:  req.Content,
	})
	if err != nil {
		log.Printf("Failed to create comment on post{%v} by user{%v}: %v", req.PostID, actx.UserID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, comment)
}

func (s *CommentServer) handleListForPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(r.PathValue("postId"), 10, 64)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	comments, err := s.repo.ListForPost(r.Context(), postID)
	if err != nil {
		log.Printf("Failed to list comments for post{%v}: %v", postID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, comments)
}

// Like post mutation, comment mutation carries no ownership check.
func (s *CommentServer) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret); !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}
	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		httpapi.WriteError(w, http.StatusBadRequest, "content is required")
		return
	}
	comment, err := s.repo.UpdateComment(r.Context(), id, req.Content)
	if err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Comment not found")
			return
		}
		log.Printf("Failed to update comment{%v}: %v", id, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to update comment")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, comment)
}

func (s *CommentServer) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := httpapi.CheckAuth(w, r, s.config.JWTSecret); !ok {
		return
	}
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid comment id")
		return
	}
	if err := s.repo.DeleteComment(r.Context(), id); err != nil {
		if errors.Is(err, ErrCommentNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Comment not found")
			return
		}
		log.Printf("Failed to delete comment{%v}: %v", id, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to delete comment")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}
