package models

import "time"

type AppConfig struct {
	Server       ServerConfig       `yaml:"server"`
	Services     ServicesConfig     `yaml:"services"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	JWTSecret    []byte
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type ServicesConfig struct {
	Post    ServiceConfig `yaml:"post"`
	Comment ServiceConfig `yaml:"comment"`
	Like    ServiceConfig `yaml:"like"`
}

type ServiceConfig struct {
	Addr      string `yaml:"addr"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

func (s ServiceConfig) Timeout() time.Duration {
	if s.TimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

type RateLimitingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Limit    int    `yaml:"limit"`
	WindowMs int    `yaml:"window_ms"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

// Downstream views. Fields mirror the wire format of the owning services
// so decoding stays a straight json.Unmarshal.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  int64     `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostPage struct {
	Post      Post      `json:"post"`
	Comments  []Comment `json:"comments"`
	LikeCount int64     `json:"likeCount"`
	Liked     bool      `json:"liked"`
}
