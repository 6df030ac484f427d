package main

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/ShounakM04/Blog-Microservices/auth"
	"github.com/ShounakM04/Blog-Microservices/httpapi"
	"golang.org/x/crypto/bcrypt"
)

type UserServer struct {
	repo   UserRepo
	config Config
	router *http.ServeMux
}

func NewUserServer(repo UserRepo, config Config) *UserServer {
	server := &UserServer{
		repo:   repo,
		config: config,
		router: http.NewServeMux(),
	}
	server.addRoutes()
	return server
}

func (s *UserServer) addRoutes() {
	s.router.HandleFunc("POST /register", s.handleRegister)
	s.router.HandleFunc("POST /login", s.handleLogin)
	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
}

func (s *UserServer) start() error {
	log.Printf("Starting users_service on %s:%s", s.config.ServerHost, s.config.ServerPort)
	httpServer := &http.Server{
		Addr:    net.JoinHostPort(s.config.ServerHost, s.config.ServerPort),
		Handler: s.router,
	}
	return httpServer.ListenAndServe()
}

func (s *UserServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	user := User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := check(user); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Failed to hash password: ", err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	user.Password = string(hashed)

	created, err := s.repo.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			httpapi.WriteError(w, http.StatusBadRequest, "User already exists")
			return
		}
		log.Printf("Failed to create user for email{%v}: %v", req.Email, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := auth.GenerateToken(s.config.JWTSecret, created.ID, s.config.TokenTTL)
	if err != nil {
		log.Println("Failed to sign token: ", err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, AuthResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Token: token,
	})
}

func (s *UserServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Unknown email and wrong password are indistinguishable on the wire.
	user, err := s.repo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			httpapi.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Failed to look up user for email{%v}: %v", req.Email, err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		httpapi.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := auth.GenerateToken(s.config.JWTSecret, user.ID, s.config.TokenTTL)
	if err != nil {
		log.Println("Failed to sign token: ", err.Error())
		httpapi.WriteError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}
