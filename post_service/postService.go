package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/ShounakM04/Blog-Microservices/httpapi"
	"github.com/ShounakM04/Blog-Microservices/post_service/models"
	"github.com/ShounakM04/Blog-Microservices/post_service/postRepo"
)

type postService struct {
	repo   postRepo.PostRepo // cache-wrapped when redis is reachable
	config models.Config
	router *http.ServeMux
}

func NewPostService(repo postRepo.PostRepo, config models.Config) *postService {
	ps := &postService{
		repo:   repo,
		config: config,
		router: http.NewServeMux(),
	}
	ps.addRoutes()
	return ps
}

func (ps *postService) addRoutes() {
	ps.router.HandleFunc("POST /posts", ps.handleCreatePost)
	ps.router.HandleFunc("GET /posts", ps.handleListPosts)
	ps.router.HandleFunc("GET /posts/{id}", ps.handleGetPost)
	ps.router.HandleFunc("PUT /posts/{id}", ps.handleUpdatePost)
	ps.router.HandleFunc("DELETE /posts/{id}", ps.handleDeletePost)
	ps.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
}

func (ps *postService) start() error {
	log.Printf("Starting post_service on %s:%s", ps.config.ServerHost, ps.config.ServerPort)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(ps.config.ServerHost, ps.config.ServerPort),
		Handler: ps.router,
	}
	return httpServer.ListenAndServe()
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (ps *postService) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	actx, ok := httpapi.CheckAuth(w, r, ps.config.JWTSecret)
	if !ok {
		return
	}
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		httpapi.WriteError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	post, err := ps.repo.CreatePost(r.Context(), models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: actx.UserID,
		Tags:     req.Tags,
	})
	if err != nil {
		log.Printf("Failed to create post for user{%v}: %v\n", actx.UserID, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, post)
}

func (ps *postService) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := ps.repo.ListPosts(r.Context())
	if err != nil {
		log.Println("Failed to list posts: ", err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, posts)
}

func (ps *postService) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	post, err := ps.repo.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, postRepo.ErrNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Failed to fetch post{%v}: %v\n", id, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to fetch post")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, post)
}

// Ownership is recorded on create but not re-checked here: any
// authenticated caller may update any post.
func (ps *postService) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	if _, ok := httpapi.CheckAuth(w, r, ps.config.JWTSecret); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	post, err := ps.repo.UpdatePost(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, postRepo.ErrNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Failed to update post{%v}: %v\n", id, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to update post")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, post)
}

func (ps *postService) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if _, ok := httpapi.CheckAuth(w, r, ps.config.JWTSecret); !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid post id")
		return
	}
	if err := ps.repo.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, postRepo.ErrNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "Post not found")
			return
		}
		log.Printf("Failed to delete post{%v}: %v\n", id, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to delete post")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
