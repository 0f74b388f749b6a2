package models

const (
	RoleAuthor = "author"
	RoleAdmin  = "admin"
)

type User struct {
	Model

	// 来自外部身份提供方的信息
	ExternalID string `gorm:"column:external_id;size:191;uniqueIndex;not null" json:"externalId"` // 外部身份 ID ，全局唯一
	Name       string `gorm:"column:name" json:"name"`                                            // 显示名称
	Email      string `gorm:"column:email" json:"email"`                                          // 邮箱
	ImageURL   string `gorm:"column:image_url" json:"imageUrl"`                                   // 头像地址

	Role string `gorm:"column:role;size:16;default:author" json:"role"` // 角色
}

// Author 是文章和评论上展示的作者公开信息
type Author struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl"`
}

func (u *User) Public() Author {
	return Author{
		Name:     u.Name,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
}
