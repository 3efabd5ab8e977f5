package model

import "time"

// ActivityStatus 活动状态，不落库，由时间窗口实时推导
type ActivityStatus string

const (
	ActivityUpcoming  ActivityStatus = "Upcoming"  // 未开始
	ActivityOngoing   ActivityStatus = "Ongoing"   // 进行中
	ActivityCompleted ActivityStatus = "Completed" // 已结束
)

// ActivityType 活动分类
type ActivityType string

const (
	ActivityTypeStudy     ActivityType = "Study"     // 学习
	ActivityTypeVolunteer ActivityType = "Volunteer" // 志愿服务
	ActivityTypeCulture   ActivityType = "Culture"   // 文化
	ActivityTypeSports    ActivityType = "Sports"    // 体育
	ActivityTypeOther     ActivityType = "Other"     // 其他
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeStudy, ActivityTypeVolunteer, ActivityTypeCulture, ActivityTypeSports, ActivityTypeOther:
		return true
	}
	return false
}

type Activity struct {
	Model
	Title                string       `gorm:"type:varchar(255);not null" json:"title"`
	Description          string       `gorm:"type:text" json:"description"`
	StartDate            time.Time    `gorm:"not null;index" json:"start_date"`
	EndDate              time.Time    `gorm:"not null" json:"end_date"`
	OwnerID              uint         `gorm:"not null;index" json:"owner_id"`
	Location             string       `gorm:"type:varchar(255)" json:"location"`
	Type                 ActivityType `gorm:"type:varchar(50);default:'Other';not null" json:"type"`
	MaxParticipants      int          `gorm:"default:0" json:"max_participants"` // 0 表示不限制
	RegistrationDeadline *time.Time   `json:"registration_deadline"`
	Image                string       `gorm:"type:varchar(255)" json:"image"`

	Owner User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

// StatusAt 按时间窗口推导活动状态
func (a *Activity) StatusAt(now time.Time) ActivityStatus {
	switch {
	case now.Before(a.StartDate):
		return ActivityUpcoming
	case now.After(a.EndDate):
		return ActivityCompleted
	default:
		return ActivityOngoing
	}
}
