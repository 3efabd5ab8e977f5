package memberbook

import (
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AchievementReq 荣誉记录请求
type AchievementReq struct {
	UserID      uint      `json:"user_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
}

// CreateAchievement 录入荣誉记录，管理员团干部操作
func CreateAchievement(c *gin.Context) {
	var req AchievementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	achievement := model.MemberAchievement{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := database.DB.Create(&achievement).Error; err != nil {
		log.Error("录入荣誉失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, achievement)
}

// UpdateAchievementReq 荣誉记录更新请求
type UpdateAchievementReq struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
}

// UpdateAchievement 更新荣誉记录
func UpdateAchievement(c *gin.Context) {
	var achievement model.MemberAchievement
	err := database.DB.First(&achievement, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("荣誉记录不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var req UpdateAchievementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Title != nil {
		achievement.Title = *req.Title
	}
	if req.Description != nil {
		achievement.Description = *req.Description
	}
	if req.Date != nil {
		achievement.Date = *req.Date
	}

	if err := database.DB.Save(&achievement).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, achievement)
}

// DeleteAchievement 删除荣誉记录
func DeleteAchievement(c *gin.Context) {
	var achievement model.MemberAchievement
	err := database.DB.First(&achievement, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("荣誉记录不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := database.DB.Delete(&achievement).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
