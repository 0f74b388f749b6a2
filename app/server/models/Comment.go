package models

import "github.com/google/uuid"

type Comment struct {
	Model

	Body      string    `gorm:"column:body;type:text;not null" json:"body"`     // 评论内容
	ArticleID uuid.UUID `gorm:"column:article_id;type:char(36);index" json:"-"` // 所属文章
	AuthorID  uuid.UUID `gorm:"column:author_id;type:char(36);index" json:"-"`  // 评论者

	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
