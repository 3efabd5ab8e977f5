package registration

import (
	"fmt"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/internal/module/notification"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListReq 报名记录查询参数
type ListReq struct {
	ActivityID uint                     `form:"activity_id"`
	Status     model.RegistrationStatus `form:"status"`
	Page       int                      `form:"page"`
	PageSize   int                      `form:"page_size"`
}

// List 全部报名记录，管理员团干部可见
func List(c *gin.Context) {
	var req ListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	query := database.DB.Model(&model.Registration{})
	if req.ActivityID != 0 {
		query = query.Where("activity_id = ?", req.ActivityID)
	}
	if req.Status != "" {
		if !req.Status.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的报名状态"))
			return
		}
		query = query.Where("status = ?", req.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var registrations []model.Registration
	if err := query.Preload("User").Preload("Activity").
		Order("created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&registrations).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"total":         total,
		"page":          req.Page,
		"page_size":     req.PageSize,
		"registrations": registrations,
	})
}

// MyRegistrations 当前用户的报名记录
func MyRegistrations(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var registrations []model.Registration
	if err := database.DB.Preload("Activity").
		Where("user_id = ?", payload.UserID).
		Order("created_at DESC").
		Find(&registrations).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, registrations)
}

// ReviewReq 审核请求，approve 或 reject
type ReviewReq struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// Review 审核报名，只有待审核的报名可以被审核，结果通知报名人
func Review(c *gin.Context) {
	var req ReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var registration model.Registration
	err := database.DB.Preload("Activity").First(&registration, c.Param("id")).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotFound.WithTips("报名记录不存在"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if registration.Status != model.RegistrationPending {
		response.FailData(c, response.ErrInvalidState.WithTips("只有待审核的报名可以被审核"),
			gin.H{"status": registration.Status})
		return
	}

	newStatus := model.RegistrationApproved
	content := fmt.Sprintf("你报名的活动「%s」已通过审核。", registration.Activity.Title)
	if req.Action == "reject" {
		newStatus = model.RegistrationRejected
		content = fmt.Sprintf("很遗憾，你报名的活动「%s」未通过审核。", registration.Activity.Title)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&registration).Update("status", newStatus).Error; err != nil {
			return err
		}
		return notification.FanOut(tx, []uint{registration.UserID}, content)
	})
	if err != nil {
		log.Error("审核报名失败", "error", err, "registration_id", registration.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	registration.Status = newStatus
	log.Info("报名审核完成",
		"registration_id", registration.ID,
		"action", req.Action)
	response.Success(c, registration)
}
