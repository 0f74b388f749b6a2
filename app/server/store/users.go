package store

import (
	"context"
	"fmt"
	"github.com/RahulIB5/zblog/app/server/models"
	"gorm.io/gorm/clause"
)

// EnsureUser 按外部身份 ID 插入用户，已存在时保留原记录，返回库中的记录
func (s *Store) EnsureUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", user.ExternalID, err)
	}

	return s.FindUserByExternalID(ctx, user.ExternalID)
}

func (s *Store) FindUserByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "external_id = ?", externalID).Error; err != nil {
		return nil, fmt.Errorf("failed to find user by external id %s: %w", externalID, err)
	}
	return &user, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
