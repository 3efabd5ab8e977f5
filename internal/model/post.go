package model

// PostStatus 文章状态
type PostStatus string

const (
	PostDraft     PostStatus = "Draft"     // 草稿
	PostPublished PostStatus = "Published" // 已发布
	PostDeleted   PostStatus = "Deleted"   // 已删除（对非管理员隐藏）
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostDraft, PostPublished, PostDeleted:
		return true
	}
	return false
}

type Post struct {
	Model
	UserID  uint       `gorm:"not null;index" json:"user_id"`
	Title   string     `gorm:"type:varchar(255);not null" json:"title"`
	Content string     `gorm:"type:text;not null" json:"content"`
	Status  PostStatus `gorm:"type:varchar(20);default:'Draft';not null;index" json:"status"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
