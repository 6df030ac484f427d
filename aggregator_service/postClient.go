package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostClient struct {
	addr   string
	client *http.Client
}

func NewPostClient(addr string) *PostClient {
	return &PostClient{
		addr:   addr,
		client: &http.Client{},
	}
}

func (pc *PostClient) GetPost(ctx context.Context, postID int64) (models.Post, error) {
	url := fmt.Sprintf("%v/posts/%v", pc.addr, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Post{}, err
	}
	res, err := pc.client.Do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return models.Post{}, ErrPostNotFound
	}
	if res.StatusCode != http.StatusOK {
		return models.Post{}, fmt.Errorf("post service returned %v", res.StatusCode)
	}
	var post models.Post
	if err := json.NewDecoder(res.Body).Decode(&post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}
