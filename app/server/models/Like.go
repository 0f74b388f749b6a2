package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Like 每个用户对每篇文章至多一条
type Like struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:char(36);not null;uniqueIndex:idx_like_user_article"`
	ArticleID uuid.UUID `gorm:"column:article_id;type:char(36);not null;uniqueIndex:idx_like_user_article;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
