package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// Model 与 gorm.Model 类似，但使用 UUID 主键且不做软删除
type Model struct {
	ID        uuid.UUID `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
}

func (m *Model) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
