package store

import (
	"context"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CountLikes(ctx context.Context, articleID uuid.UUID) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("article_id = ?", articleID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count likes of article %s: %w", articleID, err)
	}
	return count, nil
}

func (s *Store) HasLiked(ctx context.Context, userID uuid.UUID, articleID uuid.UUID) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check like of user %s on article %s: %w", userID, articleID, err)
	}
	return count > 0, nil
}

// ToggleLike 先尝试删除，没有删到才插入；唯一索引冲突时忽略插入。
// 返回切换后的状态
func (s *Store) ToggleLike(ctx context.Context, userID uuid.UUID, articleID uuid.UUID) (liked bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND article_id = ?", userID, articleID).Delete(&models.Like{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete like: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.Like{
			UserID:    userID,
			ArticleID: articleID,
		}).Error; err != nil {
			return fmt.Errorf("failed to create like: %w", err)
		}
		liked = true
		return nil
	})
	return liked, err
}
