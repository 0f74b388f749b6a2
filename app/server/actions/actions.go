// Package actions 实现服务端的写操作：文章增删改、点赞切换、评论与用户同步。
// 身份与所有权检查统一在这里完成
package actions

import (
	"context"
	"errors"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/events"
	"github.com/RahulIB5/zblog/app/server/jwt"
	"github.com/RahulIB5/zblog/app/server/metrics"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/RahulIB5/zblog/app/server/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"strings"
	"time"
)

// ListingInvalidator 在文章变更后刷新列表缓存
type ListingInvalidator interface {
	Invalidate(ctx context.Context)
}

type Actions struct {
	l        *zap.Logger
	store    *store.Store
	listings ListingInvalidator
	events   events.Publisher
	m        *metrics.Metrics
	v        *Validator
}

func New(l *zap.Logger, s *store.Store, listings ListingInvalidator, p events.Publisher, m *metrics.Metrics, v *Validator) *Actions {
	return &Actions{
		l:        l,
		store:    s,
		listings: listings,
		events:   p,
		m:        m,
		v:        v,
	}
}

type ArticleInput struct {
	Title         string `json:"title" validate:"required,max=200"`
	Category      string `json:"category" validate:"required,max=50"`
	Content       string `json:"content" validate:"required"`
	FeaturedImage string `json:"featuredImage" validate:"omitempty,http_url"`
}

func (in *ArticleInput) trim() {
	in.Title = strings.TrimSpace(in.Title)
	in.Category = strings.TrimSpace(in.Category)
	in.Content = strings.TrimSpace(in.Content)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
}

func (in *ArticleInput) apply(article *models.Article) {
	article.Title = in.Title
	article.Category = in.Category
	article.Content = in.Content
	if in.FeaturedImage == "" {
		article.FeaturedImage = nil
	} else {
		image := in.FeaturedImage
		article.FeaturedImage = &image
	}
}

type CommentInput struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type LikeState struct {
	Liked bool  `json:"liked"`
	Likes int64 `json:"likes"`
}

// authorizeOwner 要求调用方已登录且是文章作者
func authorizeOwner(caller *models.User, article *models.Article) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if caller.ID != article.AuthorID {
		return ErrUnauthorized
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (a *Actions) record(action string, err error) {
	var ve *ValidationError
	switch {
	case err == nil:
		a.m.Action(action, metrics.ResultOK)
	case errors.As(err, &ve):
		a.m.Action(action, metrics.ResultInvalid)
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrUnauthorized):
		a.m.Action(action, metrics.ResultDenied)
	case errors.Is(err, ErrNotFound):
		a.m.Action(action, metrics.ResultMissing)
	default:
		a.m.Action(action, metrics.ResultError)
	}
}

// publish 在事务提交后调用，失败只记录日志
func (a *Actions) publish(ctx context.Context, event events.Event) {
	event.At = time.Now().UTC()
	if err := a.events.Publish(ctx, event); err != nil {
		a.l.Error("failed to publish event",
			zap.String("type", string(event.Type)),
			zap.String("articleId", event.ArticleID),
			zap.Error(err),
		)
	}
}

// EnsureUser 根据会话同步本地用户记录，可重复调用
func (a *Actions) EnsureUser(ctx context.Context, session *jwt.Session) (*models.User, error) {
	if session == nil || session.ExternalID == "" {
		return nil, ErrUnauthenticated
	}

	user, err := a.store.EnsureUser(ctx, &models.User{
		ExternalID: session.ExternalID,
		Name:       session.Name,
		Email:      session.Email,
		ImageURL:   session.ImageURL,
		Role:       models.RoleAuthor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return user, nil
}

func (a *Actions) findArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := a.store.FindArticle(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return article, nil
}

// ArticleForEdit 返回调用方自己的文章，用于编辑页
func (a *Actions) ArticleForEdit(ctx context.Context, caller *models.User, id uuid.UUID) (*models.Article, error) {
	if caller == nil {
		return nil, ErrUnauthenticated
	}

	article, err := a.findArticle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = authorizeOwner(caller, article); err != nil {
		return nil, err
	}
	return article, nil
}

func (a *Actions) CreateArticle(ctx context.Context, caller *models.User, input ArticleInput) (article *models.Article, err error) {
	defer func() { a.record("article.create", err) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}

	input.trim()
	if err = a.v.Validate(&input); err != nil {
		return nil, err
	}

	article = &models.Article{AuthorID: caller.ID}
	input.apply(article)
	if err = a.store.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	article.Author = *caller

	a.listings.Invalidate(ctx)
	a.publish(ctx, events.Event{
		Type:      events.ArticleCreated,
		ArticleID: article.ID.String(),
		UserID:    caller.ID.String(),
	})

	return article, nil
}

func (a *Actions) UpdateArticle(ctx context.Context, caller *models.User, id uuid.UUID, input ArticleInput) (article *models.Article, err error) {
	defer func() { a.record("article.update", err) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}

	// 先确认文章存在且属于调用者，再校验输入
	if article, err = a.findArticle(ctx, id); err != nil {
		return nil, err
	}
	if err = authorizeOwner(caller, article); err != nil {
		return nil, err
	}

	input.trim()
	if err = a.v.Validate(&input); err != nil {
		return nil, err
	}

	input.apply(article)
	if err = a.store.UpdateArticle(ctx, article); err != nil {
		return nil, err
	}

	a.listings.Invalidate(ctx)
	a.publish(ctx, events.Event{
		Type:      events.ArticleUpdated,
		ArticleID: article.ID.String(),
		UserID:    caller.ID.String(),
	})

	return article, nil
}

func (a *Actions) DeleteArticle(ctx context.Context, caller *models.User, id uuid.UUID) (err error) {
	defer func() { a.record("article.delete", err) }()

	if caller == nil {
		return ErrUnauthenticated
	}

	article, err := a.findArticle(ctx, id)
	if err != nil {
		return err
	}
	if err = authorizeOwner(caller, article); err != nil {
		return err
	}

	if err = a.store.DeleteArticle(ctx, id); err != nil {
		return notFound(err)
	}

	a.listings.Invalidate(ctx)
	a.publish(ctx, events.Event{
		Type:      events.ArticleDeleted,
		ArticleID: id.String(),
		UserID:    caller.ID.String(),
	})

	return nil
}

// ToggleLike 切换调用方对文章的点赞，返回新的状态与点赞数
func (a *Actions) ToggleLike(ctx context.Context, caller *models.User, articleID uuid.UUID) (state *LikeState, err error) {
	defer func() { a.record("like.toggle", err) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}

	if _, err = a.findArticle(ctx, articleID); err != nil {
		return nil, err
	}

	liked, err := a.store.ToggleLike(ctx, caller.ID, articleID)
	if err != nil {
		return nil, err
	}

	likes, err := a.store.CountLikes(ctx, articleID)
	if err != nil {
		return nil, err
	}

	a.publish(ctx, events.Event{
		Type:      events.LikeToggled,
		ArticleID: articleID.String(),
		UserID:    caller.ID.String(),
		Liked:     &liked,
	})

	return &LikeState{Liked: liked, Likes: likes}, nil
}

func (a *Actions) CreateComment(ctx context.Context, caller *models.User, articleID uuid.UUID, input CommentInput) (comment *models.Comment, err error) {
	defer func() { a.record("comment.create", err) }()

	if caller == nil {
		return nil, ErrUnauthenticated
	}

	if _, err = a.findArticle(ctx, articleID); err != nil {
		return nil, err
	}

	input.Body = strings.TrimSpace(input.Body)
	if err = a.v.Validate(&input); err != nil {
		return nil, err
	}

	comment = &models.Comment{
		Body:      input.Body,
		ArticleID: articleID,
		AuthorID:  caller.ID,
	}
	if err = a.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.Author = *caller

	a.publish(ctx, events.Event{
		Type:      events.CommentCreated,
		ArticleID: articleID.String(),
		UserID:    caller.ID.String(),
	})

	return comment, nil
}
