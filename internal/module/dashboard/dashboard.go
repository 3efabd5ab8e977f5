package dashboard

import (
	"encoding/json"
	"time"
	"union-activity-system/internal/global/cache"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const statsCacheKey = "dashboard:stats"
const statsCacheTTL = 60 * time.Second

// Stats 仪表盘总览，聚合结果缓存约一分钟
func Stats(c *gin.Context) {
	ctx := c.Request.Context()
	if cached := cache.GetJSON(ctx, statsCacheKey); cached != "" {
		var data map[string]any
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			response.Success(c, data)
			return
		}
	}

	data, err := collectStats(database.DB)
	if err != nil {
		log.Error("聚合仪表盘数据失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if raw, err := json.Marshal(data); err == nil {
		cache.SetJSON(ctx, statsCacheKey, string(raw), statsCacheTTL)
	}
	response.Success(c, data)
}

func collectStats(db *gorm.DB) (gin.H, error) {
	now := time.Now()

	var totalUsers, totalActivities, totalPosts, totalRegistrations int64
	if err := db.Model(&model.User{}).Count(&totalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Activity{}).Count(&totalActivities).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Post{}).Where("status <> ?", model.PostDeleted).
		Count(&totalPosts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Registration{}).Count(&totalRegistrations).Error; err != nil {
		return nil, err
	}

	var upcoming, ongoing, completed int64
	if err := db.Model(&model.Activity{}).Where("start_date > ?", now).
		Count(&upcoming).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Activity{}).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Count(&ongoing).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Activity{}).Where("end_date < ?", now).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	var participants int64
	if err := db.Model(&model.Registration{}).
		Where("status IN ?", []model.RegistrationStatus{
			model.RegistrationApproved, model.RegistrationAttended,
		}).Count(&participants).Error; err != nil {
		return nil, err
	}
	avgParticipation := float64(0)
	if totalActivities > 0 {
		avgParticipation = float64(participants) / float64(totalActivities)
	}

	type typeCount struct {
		Type  model.ActivityType `json:"type"`
		Count int64              `json:"count"`
	}
	var byType []typeCount
	if err := db.Model(&model.Activity{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}

	var recent []model.Activity
	if err := db.Order("start_date DESC").Limit(5).Find(&recent).Error; err != nil {
		return nil, err
	}

	var upcomingDeadlines []model.Activity
	if err := db.Where("registration_deadline IS NOT NULL AND registration_deadline > ?", now).
		Order("registration_deadline ASC").Limit(5).
		Find(&upcomingDeadlines).Error; err != nil {
		return nil, err
	}

	return gin.H{
		"total_users":         totalUsers,
		"total_activities":    totalActivities,
		"total_posts":         totalPosts,
		"total_registrations": totalRegistrations,
		"activity_status": gin.H{
			"upcoming":  upcoming,
			"ongoing":   ongoing,
			"completed": completed,
		},
		"total_participants":    participants,
		"average_participation": avgParticipation,
		"by_type":               byType,
		"recent_activities":     recent,
		"upcoming_deadlines":    upcomingDeadlines,
	}, nil
}

// MemberStats 成员维度统计
func MemberStats(c *gin.Context) {
	db := database.DB

	var total, active int64
	if err := db.Model(&model.User{}).Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.User{}).Where("is_active = ?", true).
		Count(&active).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	var newThisMonth int64
	if err := db.Model(&model.User{}).Where("created_at >= ?", monthStart).
		Count(&newThisMonth).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	type roleCount struct {
		Role  model.Role `json:"role"`
		Count int64      `json:"count"`
	}
	var byRole []roleCount
	if err := db.Model(&model.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&byRole).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	type deptCount struct {
		Department string `json:"department"`
		Count      int64  `json:"count"`
	}
	var byDept []deptCount
	if err := db.Model(&model.User{}).
		Select("department, COUNT(*) as count").
		Where("department <> ''").
		Group("department").
		Scan(&byDept).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"total_members":  total,
		"active_members": active,
		"new_this_month": newThisMonth,
		"by_role":        byRole,
		"by_department":  byDept,
	})
}
