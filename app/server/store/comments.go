package store

import (
	"context"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/google/uuid"
)

func (s *Store) ListComments(ctx context.Context, articleID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := s.db.WithContext(ctx).
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments of article %s: %w", articleID, err)
	}
	return comments, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// CountCommentsOnAuthorArticles 统计某个作者所有文章下的评论数
func (s *Store) CountCommentsOnAuthorArticles(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	authorArticles := s.db.Model(&models.Article{}).Select("id").Where("author_id = ?", authorID)
	if err := s.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("article_id IN (?)", authorArticles).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count comments of author %s: %w", authorID, err)
	}
	return count, nil
}
