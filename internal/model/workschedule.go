package model

import "time"

// ScheduleStatus 工作安排状态
type ScheduleStatus string

const (
	SchedulePending   ScheduleStatus = "Pending"   // 待处理
	ScheduleCompleted ScheduleStatus = "Completed" // 已完成
)

func (s ScheduleStatus) Valid() bool {
	return s == SchedulePending || s == ScheduleCompleted
}

type WorkSchedule struct {
	Model
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	ScheduleDate time.Time      `gorm:"not null;index" json:"schedule_date"`
	Status       ScheduleStatus `gorm:"type:varchar(20);default:'Pending';not null" json:"status"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}
