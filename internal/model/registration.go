package model

import "time"

// RegistrationStatus 报名状态，封闭枚举
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "Pending"   // 待审核
	RegistrationApproved  RegistrationStatus = "Approved"  // 已通过
	RegistrationRejected  RegistrationStatus = "Rejected"  // 已拒绝
	RegistrationAttended  RegistrationStatus = "Attended"  // 已参加
	RegistrationCancelled RegistrationStatus = "Cancelled" // 已取消
)

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationPending, RegistrationApproved, RegistrationRejected,
		RegistrationAttended, RegistrationCancelled:
		return true
	}
	return false
}

// Cancellable 仅待审核和已通过的报名可以取消
func (s RegistrationStatus) Cancellable() bool {
	return s == RegistrationPending || s == RegistrationApproved
}

// CountsTowardCapacity 只有已通过和已参加占用活动名额
func (s RegistrationStatus) CountsTowardCapacity() bool {
	return s == RegistrationApproved || s == RegistrationAttended
}

// Registration 一名用户对一个活动的报名记录，(user, activity) 唯一
type Registration struct {
	Model
	UserID     uint               `gorm:"not null;uniqueIndex:idx_user_activity" json:"user_id"`
	ActivityID uint               `gorm:"not null;uniqueIndex:idx_user_activity" json:"activity_id"`
	Status     RegistrationStatus `gorm:"type:varchar(20);default:'Pending';not null;index" json:"status"`

	Reason              string     `gorm:"type:text" json:"reason"`
	PhoneNumber         string     `gorm:"type:varchar(15)" json:"phone_number"`
	EmergencyContact    string     `gorm:"type:varchar(100)" json:"emergency_contact"`
	DietaryRequirements string     `gorm:"type:text" json:"dietary_requirements"`
	AdditionalInfo      string     `gorm:"type:text" json:"additional_info"`
	Notes               string     `gorm:"type:text" json:"notes"`
	AttendanceDate      *time.Time `json:"attendance_date"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"activity,omitempty"`
}
