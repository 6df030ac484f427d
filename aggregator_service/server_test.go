package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
	"github.com/ShounakM04/Blog-Microservices/auth"
)

var testSecret = []byte("aggregator-test-secret-0123456789")

var testPost = models.Post{
	ID:        42,
	Title:     "First post",
	Content:   "hello",
	AuthorID:  7,
	Tags:      []string{"go"},
	CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
}

var testComments = []models.Comment{
	{ID: 2, PostID: 42, AuthorID: 9, Content: "second", CreatedAt: time.Date(2025, 6, 1, 12, 2, 0, 0, time.UTC)},
	{ID: 1, PostID: 42, AuthorID: 8, Content: "first", CreatedAt: time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)},
}

func healthyPostService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "42" {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Post not found"})
			return
		}
		json.NewEncoder(w).Encode(testPost)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func healthyCommentService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /comments/post/{postId}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(testComments)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// likedCalls counts hits on the liked endpoint so tests can assert the
// branch was skipped for anonymous callers.
func healthyLikeService(t *testing.T, likedCalls *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /likes/post/{id}/count", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"postId": 42, "count": 3})
	})
	mux.HandleFunc("GET /likes/post/{id}/liked", func(w http.ResponseWriter, r *http.Request) {
		if likedCalls != nil {
			atomic.AddInt64(likedCalls, 1)
		}
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"postId": 42, "liked": true})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestServer(postAddr, commentAddr, likeAddr string) *AggregatorServer {
	services := models.ServicesConfig{
		Post:    models.ServiceConfig{Addr: postAddr, TimeoutMs: 2000},
		Comment: models.ServiceConfig{Addr: commentAddr, TimeoutMs: 2000},
		Like:    models.ServiceConfig{Addr: likeAddr, TimeoutMs: 2000},
	}
	fanout := NewFanout(
		NewPostClient(postAddr),
		NewCommentClient(commentAddr),
		NewLikeClient(likeAddr),
		services,
	)
	config := models.AppConfig{Services: services, JWTSecret: testSecret}
	return NewAggregatorServer(fanout, nil, config)
}

func getPage(t *testing.T, server *AggregatorServer, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest("GET", path, nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	server.router.ServeHTTP(w, r)
	return w
}

func tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, userID, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	return token
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) models.PostPage {
	t.Helper()
	var page models.PostPage
	if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}

func TestPostPageAllServicesHealthy(t *testing.T) {
	posts := healthyPostService(t)
	comments := healthyCommentService(t)
	likes := healthyLikeService(t, nil)
	server := newTestServer(posts.URL, comments.URL, likes.URL)

	w := getPage(t, server, "/pages/post/42", tokenFor(t, 7))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	page := decodePage(t, w)
	if page.Post.ID != 42 || page.Post.Title != "First post" {
		t.Fatalf("unexpected post: %+v", page.Post)
	}
	if len(page.Comments) != 2 || page.Comments[0].ID != 2 {
		t.Fatalf("unexpected comments: %+v", page.Comments)
	}
	if page.LikeCount != 3 || !page.Liked {
		t.Fatalf("expected likeCount=3 liked=true, got %d / %v", page.LikeCount, page.Liked)
	}
}

func TestPostPageDegradesWhenOptionalServicesDown(t *testing.T) {
	posts := healthyPostService(t)
	// addresses nothing listens on
	server := newTestServer(posts.URL, "http://127.0.0.1:1", "http://127.0.0.1:1")

	w := getPage(t, server, "/pages/post/42", tokenFor(t, 7))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	page := decodePage(t, w)
	if page.Post.ID != 42 {
		t.Fatalf("unexpected post: %+v", page.Post)
	}
	if page.Comments == nil || len(page.Comments) != 0 {
		t.Fatalf("expected empty comments slice, got %+v", page.Comments)
	}
	if page.LikeCount != 0 || page.Liked {
		t.Fatalf("expected degraded likeCount=0 liked=false, got %d / %v", page.LikeCount, page.Liked)
	}
}

func TestPostPageNotFound(t *testing.T) {
	posts := healthyPostService(t)
	comments := healthyCommentService(t)
	likes := healthyLikeService(t, nil)
	server := newTestServer(posts.URL, comments.URL, likes.URL)

	w := getPage(t, server, "/pages/post/999", tokenFor(t, 7))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPostPagePostServiceDown(t *testing.T) {
	comments := healthyCommentService(t)
	likes := healthyLikeService(t, nil)
	server := newTestServer("http://127.0.0.1:1", comments.URL, likes.URL)

	w := getPage(t, server, "/pages/post/42", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestPostPageAnonymousSkipsLikedBranch(t *testing.T) {
	var likedCalls int64
	posts := healthyPostService(t)
	comments := healthyCommentService(t)
	likes := healthyLikeService(t, &likedCalls)
	server := newTestServer(posts.URL, comments.URL, likes.URL)

	w := getPage(t, server, "/pages/post/42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	page := decodePage(t, w)
	if page.Liked {
		t.Fatal("anonymous caller must see liked=false")
	}
	if n := atomic.LoadInt64(&likedCalls); n != 0 {
		t.Fatalf("liked endpoint called %d times for anonymous request", n)
	}
}

func TestPostPageInvalidTokenRejected(t *testing.T) {
	posts := healthyPostService(t)
	comments := healthyCommentService(t)
	likes := healthyLikeService(t, nil)
	server := newTestServer(posts.URL, comments.URL, likes.URL)

	w := getPage(t, server, "/pages/post/42", "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestPostPageSlowLikeServiceTimesOut(t *testing.T) {
	posts := healthyPostService(t)
	comments := healthyCommentService(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]interface{}{"postId": 42, "count": 3})
	})
	slowLikes := httptest.NewServer(mux)
	t.Cleanup(slowLikes.Close)

	services := models.ServicesConfig{
		Post:    models.ServiceConfig{Addr: posts.URL, TimeoutMs: 2000},
		Comment: models.ServiceConfig{Addr: comments.URL, TimeoutMs: 2000},
		Like:    models.ServiceConfig{Addr: slowLikes.URL, TimeoutMs: 50},
	}
	fanout := NewFanout(
		NewPostClient(posts.URL),
		NewCommentClient(comments.URL),
		NewLikeClient(slowLikes.URL),
		services,
	)
	server := NewAggregatorServer(fanout, nil, models.AppConfig{Services: services, JWTSecret: testSecret})

	start := time.Now()
	w := getPage(t, server, "/pages/post/42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("slow branch was not cut off, took %v", elapsed)
	}
	page := decodePage(t, w)
	if page.LikeCount != 0 {
		t.Fatalf("expected degraded likeCount=0, got %d", page.LikeCount)
	}
}

func TestPostPageCallerCancellation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	stuck := httptest.NewServer(mux)
	t.Cleanup(stuck.Close)
	server := newTestServer(stuck.URL, stuck.URL, stuck.URL)

	ctx, cancel := context.WithCancel(context.Background())
	r := httptest.NewRequest("GET", "/pages/post/42", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		server.router.ServeHTTP(w, r)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler did not return after caller cancellation")
	}
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestServiceTimeoutDefault(t *testing.T) {
	var c models.ServiceConfig
	if c.Timeout() != 5*time.Second {
		t.Fatalf("expected 5s default, got %v", c.Timeout())
	}
	c.TimeoutMs = 250
	if c.Timeout() != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", c.Timeout())
	}
}
