package activity

import (
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

// Stats 活动总体统计
func Stats(c *gin.Context) {
	db := database.DB
	now := time.Now()

	var total int64
	if err := db.Model(&model.Activity{}).Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var upcoming, ongoing, completed int64
	if err := db.Model(&model.Activity{}).Where("start_date > ?", now).Count(&upcoming).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Activity{}).
		Where("start_date <= ? AND end_date >= ?", now, now).Count(&ongoing).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Activity{}).Where("end_date < ?", now).Count(&completed).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var participants int64
	if err := db.Model(&model.Registration{}).
		Where("status IN ?", []model.RegistrationStatus{
			model.RegistrationApproved, model.RegistrationAttended,
		}).Count(&participants).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 按类型分布
	type typeCount struct {
		Type  model.ActivityType `json:"type"`
		Count int64              `json:"count"`
	}
	var byType []typeCount
	if err := db.Model(&model.Activity{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&byType).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	avgParticipation := float64(0)
	if total > 0 {
		avgParticipation = float64(participants) / float64(total)
	}

	response.Success(c, gin.H{
		"total_activities":      total,
		"upcoming":              upcoming,
		"ongoing":               ongoing,
		"completed":             completed,
		"total_participants":    participants,
		"average_participation": avgParticipation,
		"by_type":               byType,
	})
}
