package model

import "time"

// Role 用户角色，封闭枚举，避免散落的字符串比较
type Role string

const (
	RoleMember  Role = "MEMBER"  // 普通团员
	RoleOfficer Role = "OFFICER" // 团干部
	RoleAdmin   Role = "ADMIN"   // 管理员
)

// Rank 返回角色等级，用于最低权限判断
func (r Role) Rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleOfficer:
		return 1
	default:
		return 0
	}
}

// Valid 判断是否为合法角色
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// IsPrivileged 管理员或团干部
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleOfficer
}

type User struct {
	Model
	Username    string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"`
	FullName    string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Role        Role       `gorm:"type:varchar(20);default:'MEMBER';not null" json:"role"`
	PhoneNumber string     `gorm:"type:varchar(15)" json:"phone_number"`
	Address     string     `gorm:"type:varchar(255)" json:"address"`
	IsActive    bool       `gorm:"default:true;not null" json:"is_active"`
	StudentID   string     `gorm:"type:varchar(20)" json:"student_id"`
	Department  string     `gorm:"type:varchar(100)" json:"department"`
	Position    string     `gorm:"type:varchar(100)" json:"position"`
	MemberSince *time.Time `json:"member_since"`
	Avatar      string     `gorm:"type:varchar(255)" json:"avatar"`
}
