package model

import "time"

// MemberAchievement 团员荣誉记录
type MemberAchievement struct {
	Model
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// UnionFeeStatus 团费缴纳记录，(user, year, quarter) 唯一
type UnionFeeStatus struct {
	Model
	UserID   uint       `gorm:"not null;uniqueIndex:idx_user_year_quarter" json:"user_id"`
	Year     int        `gorm:"not null;uniqueIndex:idx_user_year_quarter" json:"year"`
	Quarter  int        `gorm:"not null;uniqueIndex:idx_user_year_quarter" json:"quarter"` // 1-4 季度
	Paid     bool       `gorm:"default:false;not null" json:"paid"`
	DatePaid *time.Time `json:"date_paid"`
	Amount   float64    `gorm:"type:decimal(10,2);default:15000.00" json:"amount"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// MemberActivity 团员参与活动的积分记录
type MemberActivity struct {
	Model
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ActivityID uint      `gorm:"not null;index" json:"activity_id"`
	Date       time.Time `gorm:"not null" json:"date"`
	Type       string    `gorm:"type:varchar(100)" json:"type"`
	Status     string    `gorm:"type:varchar(100)" json:"status"`
	Points     int       `gorm:"default:0" json:"points"`

	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"activity,omitempty"`
}

// MemberStatistics 团员统计汇总，每次读取现算，不落库缓存陈旧值
type MemberStatistics struct {
	TotalActivities int    `json:"total_activities"`
	TotalPoints     int    `json:"total_points"`
	AttendanceRate  int    `json:"attendance_rate"`
	Rank            string `json:"rank"`
}
