package dashboard

import (
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

// ParticipationChart 参与趋势图，按日或按月分桶
// week 为最近7天，month 为最近30天，year 为当年12个月的固定槽位
func ParticipationChart(c *gin.Context) {
	timeRange := c.DefaultQuery("time_range", "week")

	now := time.Now()
	var labels []string
	var counts []int64

	switch timeRange {
	case "week", "month":
		days := 7
		if timeRange == "month" {
			days = 30
		}
		labels = make([]string, 0, days)
		counts = make([]int64, 0, days)
		for i := days - 1; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
			dayEnd := dayStart.AddDate(0, 0, 1)

			var count int64
			if err := database.DB.Model(&model.Registration{}).
				Where("created_at >= ? AND created_at < ? AND status <> ?",
					dayStart, dayEnd, model.RegistrationCancelled).
				Count(&count).Error; err != nil {
				response.Fail(c, response.ErrDatabase.WithOrigin(err))
				return
			}
			labels = append(labels, dayStart.Format("01-02"))
			counts = append(counts, count)
		}
	case "year":
		// 当年12个固定月份槽位，没有数据的月份补零
		labels = make([]string, 12)
		counts = make([]int64, 12)
		for m := 0; m < 12; m++ {
			monthStart := time.Date(now.Year(), time.Month(m+1), 1, 0, 0, 0, 0, now.Location())
			monthEnd := monthStart.AddDate(0, 1, 0)

			var count int64
			if err := database.DB.Model(&model.Registration{}).
				Where("created_at >= ? AND created_at < ? AND status <> ?",
					monthStart, monthEnd, model.RegistrationCancelled).
				Count(&count).Error; err != nil {
				response.Fail(c, response.ErrDatabase.WithOrigin(err))
				return
			}
			labels[m] = monthStart.Format("2006-01")
			counts[m] = count
		}
	default:
		response.Fail(c, response.ErrInvalidRequest.WithTips("time_range 只支持 week/month/year"))
		return
	}

	response.Success(c, gin.H{
		"labels": labels,
		"datasets": []gin.H{
			{"label": "报名人次", "data": counts},
		},
	})
}

// ActivityTypeChart 活动类型分布图
func ActivityTypeChart(c *gin.Context) {
	type typeCount struct {
		Type  model.ActivityType
		Count int64
	}
	var byType []typeCount
	if err := database.DB.Model(&model.Activity{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&byType).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	labels := make([]string, 0, len(byType))
	counts := make([]int64, 0, len(byType))
	for _, t := range byType {
		labels = append(labels, string(t.Type))
		counts = append(counts, t.Count)
	}

	response.Success(c, gin.H{
		"labels": labels,
		"datasets": []gin.H{
			{"label": "活动数量", "data": counts},
		},
	})
}
