// Package events 投递文章、点赞与评论的动态事件
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

type Type string

const (
	ArticleCreated Type = "article.created"
	ArticleUpdated Type = "article.updated"
	ArticleDeleted Type = "article.deleted"
	LikeToggled    Type = "like.toggled"
	CommentCreated Type = "comment.created"
)

type Event struct {
	Type      Type      `json:"type"`
	ArticleID string    `json:"articleId"`
	UserID    string    `json:"userId"`
	Liked     *bool     `json:"liked,omitempty"` // 仅 like.toggled
	At        time.Time `json:"at"`
}

func (e *Event) encode() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event %s: %w", e.Type, err)
	}
	return body, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Noop 丢弃所有事件
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func (Noop) Close() error { return nil }
