package memberbook

import (
	"sort"
	"strconv"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// resolveTarget 确定查询对象，普通成员只能查自己，user_id 参数仅对管理员团干部生效
func resolveTarget(c *gin.Context, payload *jwt.Claims) (uint, bool) {
	targetID := payload.UserID
	if raw := c.Query("user_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的用户ID"))
			return 0, false
		}
		if uint(id) != payload.UserID && !payload.Role.IsPrivileged() {
			response.Fail(c, response.ErrForbidden)
			return 0, false
		}
		targetID = uint(id)
	}
	return targetID, true
}

// computeStatistics 即时计算团员统计，不落库
// 积分超过50为优秀，超过30为良好，其余为合格
func computeStatistics(db *gorm.DB, userID uint) (model.MemberStatistics, error) {
	var stats model.MemberStatistics

	var activities []model.MemberActivity
	if err := db.Where("user_id = ?", userID).Find(&activities).Error; err != nil {
		return stats, err
	}
	stats.TotalActivities = len(activities)
	for _, a := range activities {
		stats.TotalPoints += a.Points
	}

	// 出席率从报名记录现算
	var registered, attended int64
	if err := db.Model(&model.Registration{}).
		Where("user_id = ? AND status <> ?", userID, model.RegistrationCancelled).
		Count(&registered).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Registration{}).
		Where("user_id = ? AND status = ?", userID, model.RegistrationAttended).
		Count(&attended).Error; err != nil {
		return stats, err
	}
	if registered > 0 {
		stats.AttendanceRate = int(attended * 100 / registered)
	}

	switch {
	case stats.TotalPoints > 50:
		stats.Rank = "优秀"
	case stats.TotalPoints > 30:
		stats.Rank = "良好"
	default:
		stats.Rank = "合格"
	}
	return stats, nil
}

// feesByYear 团费记录按年份分组，年份倒序，季度正序
func feesByYear(fees []model.UnionFeeStatus) []gin.H {
	byYear := make(map[int][]model.UnionFeeStatus)
	for _, f := range fees {
		byYear[f.Year] = append(byYear[f.Year], f)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	grouped := make([]gin.H, 0, len(years))
	for _, y := range years {
		quarters := byYear[y]
		sort.Slice(quarters, func(i, j int) bool {
			return quarters[i].Quarter < quarters[j].Quarter
		})
		grouped = append(grouped, gin.H{"year": y, "quarters": quarters})
	}
	return grouped
}

// GetMemberBook 团员手册，汇总个人信息、统计、荣誉与团费
func GetMemberBook(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	targetID, ok := resolveTarget(c, payload)
	if !ok {
		return
	}

	var user model.User
	err := database.DB.First(&user, targetID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	stats, err := computeStatistics(database.DB, targetID)
	if err != nil {
		log.Error("计算团员统计失败", "error", err, "user_id", targetID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var achievements []model.MemberAchievement
	if err := database.DB.Where("user_id = ?", targetID).
		Order("date DESC").Find(&achievements).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var fees []model.UnionFeeStatus
	if err := database.DB.Where("user_id = ?", targetID).Find(&fees).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var memberActivities []model.MemberActivity
	if err := database.DB.Where("user_id = ?", targetID).
		Order("date DESC").Find(&memberActivities).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"user":         user,
		"statistics":   stats,
		"achievements": achievements,
		"fees":         feesByYear(fees),
		"activities":   memberActivities,
	})
}

// ListMemberActivities 团员活动积分记录
func ListMemberActivities(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	targetID, ok := resolveTarget(c, payload)
	if !ok {
		return
	}

	var activities []model.MemberActivity
	if err := database.DB.Where("user_id = ?", targetID).
		Order("date DESC").Find(&activities).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, activities)
}
