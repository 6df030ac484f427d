package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ShounakM04/Blog-Microservices/auth"
)

var testSecret = []byte("users-service-test-secret-000000")

// Mock UserRepo implementation for testing. The email uniqueness check
// happens under the same lock as the insert, mirroring the DB unique index.
type MockUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]User // keyed by email
}

func NewMockUserRepo() *MockUserRepo {
	return &MockUserRepo{users: make(map[string]User)}
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[user.Email]; exists {
		return User{}, ErrDuplicateEmail
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user
	return user, nil
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, exists := m.users[email]
	if !exists {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func newTestServer() (*UserServer, *MockUserRepo) {
	repo := NewMockUserRepo()
	server := NewUserServer(repo, Config{
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
	})
	return server, repo
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	server, _ := newTestServer()

	w := doJSON(t, server.router, "POST", "/register", RegisterRequest{
		Name: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var res AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	actx, err := auth.VerifyToken(res.Token, testSecret)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if actx.UserID != res.ID {
		t.Fatalf("token subject %d does not match user id %d", actx.UserID, res.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	server, repo := newTestServer()

	first := doJSON(t, server.router, "POST", "/register", RegisterRequest{
		Name: "alice", Email: "alice@example.com", Password: "s3cret",
	})
	if first.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", first.Code)
	}

	second := doJSON(t, server.router, "POST", "/register", RegisterRequest{
		Name: "impostor", Email: "alice@example.com", Password: "other",
	})
	if second.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", second.Code)
	}
	if len(repo.users) != 1 {
		t.Fatalf("duplicate register created a row: %d users", len(repo.users))
	}

	// The original credentials still log in.
	login := doJSON(t, server.router, "POST", "/login", LoginRequest{
		Email: "alice@example.com", Password: "s3cret",
	})
	if login.Code != http.StatusOK {
		t.Fatalf("login after duplicate attempt: expected 200, got %d", login.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	server, _ := newTestServer()

	doJSON(t, server.router, "POST", "/register", RegisterRequest{
		Name: "alice", Email: "alice@example.com", Password: "s3cret",
	})

	wrongPassword := doJSON(t, server.router, "POST", "/login", LoginRequest{
		Email: "alice@example.com", Password: "nope",
	})
	unknownEmail := doJSON(t, server.router, "POST", "/login", LoginRequest{
		Email: "bob@example.com", Password: "s3cret",
	})
	if wrongPassword.Code != http.StatusUnauthorized || unknownEmail.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	// Same body either way, nothing to enumerate accounts with.
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatalf("credential failures are distinguishable: %q vs %q",
			wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	server, _ := newTestServer()

	cases := []RegisterRequest{
		{Name: "", Email: "a@b.co", Password: "s3cret"},
		{Name: "alice", Email: "not-an-email", Password: "s3cret"},
		{Name: "alice", Email: "a@b.co", Password: "abc"},
	}
	for _, req := range cases {
		w := doJSON(t, server.router, "POST", "/register", req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("register %+v: expected 400, got %d", req, w.Code)
		}
	}
}
