package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
)

type CommentClient struct {
	addr   string
	client *http.Client
}

func NewCommentClient(addr string) *CommentClient {
	return &CommentClient{
		addr:   addr,
		client: &http.Client{},
	}
}

func (cc *CommentClient) ListForPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	url := fmt.Sprintf("%v/comments/post/%v", cc.addr, postID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := cc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("comment service returned %v", res.StatusCode)
	}
	comments := make([]models.Comment, 0)
	if err := json.NewDecoder(res.Body).Decode(&comments); err != nil {
		return nil, err
	}
	return comments, nil
}
