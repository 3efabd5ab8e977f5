package model

type Notification struct {
	Model
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Content string `gorm:"type:text;not null" json:"content"`
	IsRead  bool   `gorm:"default:false;not null" json:"is_read"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
