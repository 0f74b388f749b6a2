package store

import (
	"context"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/constants"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

const (
	likeCountSelect    = "(SELECT COUNT(*) FROM likes WHERE likes.article_id = articles.id) AS like_count"
	commentCountSelect = "(SELECT COUNT(*) FROM comments WHERE comments.article_id = articles.id) AS comment_count"
)

type ArticlePage struct {
	Articles []models.Article
	Total    int64 // 忽略分页的匹配总数
}

// LIKE 使用 ! 作为转义符，三种数据库的字符串字面量里都不需要再转义
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

func (s *Store) articleSearch(ctx context.Context, search string) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Article{})
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("articles.search_text LIKE ? ESCAPE '!'", likePattern(search))
	}
	return query
}

// FetchArticlesByQuery 返回按创建时间倒序的一页文章（附带作者信息）以及匹配总数
func (s *Store) FetchArticlesByQuery(ctx context.Context, search string, skip int, take int) (*ArticlePage, error) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = constants.DefaultPageSize
	}

	page := ArticlePage{
		Articles: []models.Article{},
	}

	if err := s.articleSearch(ctx, search).Count(&page.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	// 总数为零或已经越过末尾时就不必再查
	if page.Total == 0 || int64(skip) >= page.Total {
		return &page, nil
	}

	if err := s.articleSearch(ctx, search).
		Preload("Author").
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Offset(skip).
		Limit(take).
		Find(&page.Articles).Error; err != nil {
		return nil, fmt.Errorf("failed to find articles: %w", err)
	}

	return &page, nil
}

// TopArticles 按点赞数排序，相同时较新的在前
func (s *Store) TopArticles(ctx context.Context, limit int) ([]models.Article, error) {
	articles := []models.Article{}
	if err := s.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("articles.*, " + likeCountSelect).
		Preload("Author").
		Order("like_count DESC").
		Order("articles.created_at DESC").
		Limit(limit).
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to find top articles: %w", err)
	}
	return articles, nil
}

func (s *Store) FindArticle(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := s.db.WithContext(ctx).
		Preload("Author").
		First(&article, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find article %s: %w", id, err)
	}
	return &article, nil
}

func (s *Store) ListArticlesByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Article, error) {
	articles := []models.Article{}
	if err := s.db.WithContext(ctx).
		Model(&models.Article{}).
		Select("articles.*, "+commentCountSelect).
		Where("articles.author_id = ?", authorID).
		Order("articles.created_at DESC").
		Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("failed to list articles of author %s: %w", authorID, err)
	}
	return articles, nil
}

func (s *Store) CreateArticle(ctx context.Context, article *models.Article) error {
	if err := s.db.WithContext(ctx).Create(article).Error; err != nil {
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// UpdateArticle 只更新可编辑字段，作者不会被改写
func (s *Store) UpdateArticle(ctx context.Context, article *models.Article) error {
	article.RefreshSearchText()
	if err := s.db.WithContext(ctx).
		Model(article).
		Select("title", "category", "content", "featured_image", "search_text", "updated_at").
		Updates(article).Error; err != nil {
		return fmt.Errorf("failed to update article %s: %w", article.ID, err)
	}
	return nil
}

// DeleteArticle 在一个事务里删除文章及其点赞、评论
func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("failed to delete likes of article %s: %w", id, err)
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments of article %s: %w", id, err)
		}

		res := tx.Delete(&models.Article{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete article %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("failed to delete article %s: %w", id, gorm.ErrRecordNotFound)
		}
		return nil
	})
}
