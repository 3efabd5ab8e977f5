package report

import (
	"strconv"
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dashboard 汇总报表
func Dashboard(c *gin.Context) {
	db := database.DB

	var totalUsers, totalActivities, totalRegistrations, totalPosts int64
	if err := db.Model(&model.User{}).Count(&totalUsers).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Activity{}).Count(&totalActivities).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Registration{}).Count(&totalRegistrations).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Post{}).Where("status <> ?", model.PostDeleted).
		Count(&totalPosts).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"total_users":         totalUsers,
		"total_activities":    totalActivities,
		"total_registrations": totalRegistrations,
		"total_posts":         totalPosts,
	})
}

// Activities 活动报表，按类型和推导状态分组
func Activities(c *gin.Context) {
	db := database.DB
	now := time.Now()

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

	var upcoming, ongoing, completed int64
	if err := db.Model(&model.Activity{}).Where("start_date > ?", now).
		Count(&upcoming).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Activity{}).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Count(&ongoing).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := db.Model(&model.Activity{}).Where("end_date < ?", now).
		Count(&completed).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"by_type": byType,
		"by_status": gin.H{
			"upcoming":  upcoming,
			"ongoing":   ongoing,
			"completed": completed,
		},
	})
}

// Members 成员报表，按角色和院系分组
func Members(c *gin.Context) {
	db := database.DB

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

	var active int64
	if err := db.Model(&model.User{}).Where("is_active = ?", true).
		Count(&active).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"by_role":        byRole,
		"by_department":  byDept,
		"active_members": active,
	})
}

// reportYear 解析 year 参数，默认当年
func reportYear(c *gin.Context) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("无效的年份"))
		return 0, false
	}
	return year, true
}

// MonthlyCounts 固定12个月份槽位的统计，缺数据的月份补零
func MonthlyCounts(db *gorm.DB, year int, modelValue any, dateColumn string, extraScope func(*gorm.DB) *gorm.DB) ([12]int64, error) {
	var counts [12]int64
	for m := 0; m < 12; m++ {
		monthStart := time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.Local)
		monthEnd := monthStart.AddDate(0, 1, 0)

		query := db.Model(modelValue).
			Where(dateColumn+" >= ? AND "+dateColumn+" < ?", monthStart, monthEnd)
		if extraScope != nil {
			query = extraScope(query)
		}
		if err := query.Count(&counts[m]).Error; err != nil {
			return counts, err
		}
	}
	return counts, nil
}

// ActivitiesByMonth 按月统计活动数，固定12个槽位
func ActivitiesByMonth(c *gin.Context) {
	year, ok := reportYear(c)
	if !ok {
		return
	}
	counts, err := MonthlyCounts(database.DB, year, &model.Activity{}, "start_date", nil)
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"year": year, "months": counts})
}

// ParticipationByMonth 按月统计报名人次，取消的不算
func ParticipationByMonth(c *gin.Context) {
	year, ok := reportYear(c)
	if !ok {
		return
	}
	counts, err := MonthlyCounts(database.DB, year, &model.Registration{}, "created_at",
		func(q *gorm.DB) *gorm.DB {
			return q.Where("status <> ?", model.RegistrationCancelled)
		})
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"year": year, "months": counts})
}
