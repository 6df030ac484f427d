package main

import (
	"context"
	"log"

	"github.com/ShounakM04/Blog-Microservices/aggregator_service/models"
)

type postResult struct {
	post models.Post
	err  error
}

type commentsResult struct {
	comments []models.Comment
	err      error
}

type countResult struct {
	count int64
	err   error
}

type likedResult struct {
	liked bool
	err   error
}

type Fanout struct {
	posts    *PostClient
	comments *CommentClient
	likes    *LikeClient
	config   models.ServicesConfig
}

func NewFanout(posts *PostClient, comments *CommentClient, likes *LikeClient, config models.ServicesConfig) *Fanout {
	return &Fanout{
		posts:    posts,
		comments: comments,
		likes:    likes,
		config:   config,
	}
}

// FetchPostPage gathers one page view from the owning services in
// parallel. The post fetch is mandatory and its failure fails the whole
// call. Comments, like count and liked status degrade to empty values
// when their service is slow or down. token may be empty for anonymous
// callers, in which case liked stays false and the like status branch
// is skipped.
func (f *Fanout) FetchPostPage(ctx context.Context, postID int64, token string) (models.PostPage, error) {
	postCh := make(chan postResult, 1)
	commentsCh := make(chan commentsResult, 1)
	countCh := make(chan countResult, 1)
	likedCh := make(chan likedResult, 1)

	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, f.config.Post.Timeout())
		defer cancel()
		post, err := f.posts.GetPost(fetchCtx, postID)
		postCh <- postResult{post: post, err: err}
	}()
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, f.config.Comment.Timeout())
		defer cancel()
		comments, err := f.comments.ListForPost(fetchCtx, postID)
		commentsCh <- commentsResult{comments: comments, err: err}
	}()
	go func() {
		fetchCtx, cancel := context.WithTimeout(ctx, f.config.Like.Timeout())
		defer cancel()
		count, err := f.likes.CountForPost(fetchCtx, postID)
		countCh <- countResult{count: count, err: err}
	}()
	if token != "" {
		go func() {
			fetchCtx, cancel := context.WithTimeout(ctx, f.config.Like.Timeout())
			defer cancel()
			liked, err := f.likes.HasLiked(fetchCtx, token, postID)
			likedCh <- likedResult{liked: liked, err: err}
		}()
	} else {
		likedCh <- likedResult{liked: false}
	}

	pr := <-postCh
	if pr.err != nil {
		return models.PostPage{}, pr.err
	}
	page := models.PostPage{
		Post:     pr.post,
		Comments: make([]models.Comment, 0),
	}

	cr := <-commentsCh
	if cr.err != nil {
		log.Println("Error in Fetching comments: ", cr.err.Error())
	} else {
		page.Comments = cr.comments
	}
	nr := <-countCh
	if nr.err != nil {
		log.Println("Error in Fetching like count: ", nr.err.Error())
	} else {
		page.LikeCount = nr.count
	}
	lr := <-likedCh
	if lr.err != nil {
		log.Println("Error in Fetching liked status: ", lr.err.Error())
	} else {
		page.Liked = lr.liked
	}
	return page, nil
}
