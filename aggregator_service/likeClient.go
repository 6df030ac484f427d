package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type LikeClient struct {
	addr   string
	client *http.Client
}

func NewLikeClient(addr string) *LikeClient {
	return &LikeClient{
		addr:   addr,
		client: &http.Client{},
	}
}

func (lc *LikeClient) CountForPost(ctx context.Context, postID int64) (int64, error) {
	url := fmt.Sprintf("%v/likes/post/%v/count", lc.addr, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	res, err := lc.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("like service returned %v", res.StatusCode)
	}
	var body struct {
		PostID int64 `json:"postId"`
		Count  int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Count, nil
}

// HasLiked forwards the caller's bearer token untouched. The like
// service verifies it again on its side.
func (lc *LikeClient) HasLiked(ctx context.Context, token string, postID int64) (bool, error) {
	url := fmt.Sprintf("%v/likes/post/%v/liked", lc.addr, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	res, err := lc.client.Do(req)
	if err != nil {
		return false, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return false, fmt.Errorf("like service returned %v", res.StatusCode)
	}
	var body struct {
		PostID int64 `json:"postId"`
		Liked  bool  `json:"liked"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return false, err
	}
	return body.Liked, nil
}
