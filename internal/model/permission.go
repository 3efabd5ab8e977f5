package model

// PermissionType 授权类型
type PermissionType string

const (
	PermissionRead   PermissionType = "Read"
	PermissionWrite  PermissionType = "Write"
	PermissionDelete PermissionType = "Delete"
)

func (t PermissionType) Valid() bool {
	switch t {
	case PermissionRead, PermissionWrite, PermissionDelete:
		return true
	}
	return false
}

// Permission 细粒度授权记录
type Permission struct {
	Model
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	PostID         *uint          `json:"post_id"`
	PermissionType PermissionType `gorm:"type:varchar(20);not null" json:"permission_type"`
	GrantedByID    *uint          `json:"granted_by"`

	User      User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Post      *Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	GrantedBy *User `gorm:"foreignKey:GrantedByID;constraint:OnDelete:SET NULL" json:"-"`
}
