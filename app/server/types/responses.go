package types

import (
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/google/uuid"
	"time"
)

type ErrorMessage struct {
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`    // 字段校验错误
	SignInURL *string           `json:"signInUrl,omitempty"` // 需要登录时前端跳转的地址
}

type ArticleSummary struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Content       string        `json:"content"`
	FeaturedImage *string       `json:"featuredImage"`
	CreatedAt     time.Time     `json:"createdAt"`
	Author        models.Author `json:"author"`
	Likes         *int64        `json:"likes,omitempty"` // 仅首页
}

type HomeResponse struct {
	Featured []ArticleSummary `json:"featured"`
}

type ArticleListResponse struct {
	Articles  []ArticleSummary `json:"articles"`
	Search    string           `json:"search"`
	Total     int64            `json:"total"`
	Page      int64            `json:"page"`
	PageMax   int64            `json:"pageMax"`
	Limit     int              `json:"limit"`
	HasPrev   bool             `json:"hasPrev"`
	HasNext   bool             `json:"hasNext"`
	NoResults bool             `json:"noResults"`
}

type ArticleDetail struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Category      string        `json:"category"`
	Content       string        `json:"content"`
	FeaturedImage *string       `json:"featuredImage"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	Author        models.Author `json:"author"`
}

type CommentInfo struct {
	ID        uuid.UUID     `json:"id"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"createdAt"`
	Author    models.Author `json:"author"`
}

type ArticleDetailResponse struct {
	Article  ArticleDetail `json:"article"`
	Comments []CommentInfo `json:"comments"`
	Likes    int64         `json:"likes"`
	IsLiked  bool          `json:"isLiked"`
}

type DashboardArticle struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
	CommentCount int64     `json:"commentCount"`
}

type DashboardResponse struct {
	Articles      []DashboardArticle `json:"articles"`
	TotalArticles int64              `json:"totalArticles"`
	TotalComments int64              `json:"totalComments"`
}

type LikeResponse struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}
