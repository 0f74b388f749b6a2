package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

type Article struct {
	Model

	Title         string    `gorm:"column:title;size:200;not null" json:"title"`      // 标题
	Category      string    `gorm:"column:category;size:50;not null" json:"category"` // 分类
	Content       string    `gorm:"column:content;type:text;not null" json:"content"` // 富文本正文（ HTML ）
	FeaturedImage *string   `gorm:"column:featured_image" json:"featuredImage"`       // 题图地址， NULL 表示没有
	AuthorID      uuid.UUID `gorm:"column:author_id;type:char(36);index" json:"-"`    // 作者

	// 标题、分类、正文的小写副本，供搜索使用
	SearchText string `gorm:"column:search_text;type:text" json:"-"`

	// 连接模型时使用
	Author User `gorm:"foreignKey:AuthorID" json:"-"`

	// 查询时计算，不落库
	LikeCount    int64 `gorm:"column:like_count;->;-:migration" json:"-"`
	CommentCount int64 `gorm:"column:comment_count;->;-:migration" json:"-"`
}

// RefreshSearchText 按当前字段重新生成搜索文本
// 在 Go 里做大小写转换，数据库自带的 LOWER 在 sqlite 上只处理 ASCII
func (a *Article) RefreshSearchText() {
	a.SearchText = strings.ToLower(a.Title + "\n" + a.Category + "\n" + a.Content)
}

func (a *Article) BeforeSave(*gorm.DB) error {
	a.RefreshSearchText()
	return nil
}
