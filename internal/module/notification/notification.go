package notification

import (
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListNotificationsReq 通知列表查询参数
type ListNotificationsReq struct {
	Unread   bool `form:"unread"` // 只看未读
	Page     int  `form:"page"`
	PageSize int  `form:"page_size"`
}

// ListNotifications 当前用户的通知列表，倒序
func ListNotifications(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ListNotificationsReq
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

	query := database.DB.Model(&model.Notification{}).Where("user_id = ?", payload.UserID)
	if req.Unread {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&notifications).Error; err != nil {
		log.Error("查询通知列表失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"total":         total,
		"page":          req.Page,
		"page_size":     req.PageSize,
		"notifications": notifications,
	})
}

// UnreadCount 当前用户未读通知数
func UnreadCount(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var count int64
	if err := database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", payload.UserID, false).
		Count(&count).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"count": count})
}

// MarkRead 将一条自己的通知标记为已读
func MarkRead(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var notification model.Notification
	err := database.DB.Where("id = ? AND user_id = ?", c.Param("id"), payload.UserID).
		First(&notification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("通知不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, notification)
}

// MarkAllRead 全部标记为已读
func MarkAllRead(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	if err := database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", payload.UserID, false).
		Update("is_read", true).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}

// BroadcastReq 人工广播请求
type BroadcastReq struct {
	Content string `json:"content" binding:"required"`
	UserIDs []uint `json:"user_ids"` // 为空则广播给全部启用用户
}

// Broadcast 管理员/团干部向指定用户或全员发送通知
func Broadcast(c *gin.Context) {
	var req BroadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if len(req.UserIDs) > 0 {
			return FanOut(tx, req.UserIDs, req.Content)
		}
		return BroadcastActive(tx, req.Content)
	})
	if err != nil {
		log.Error("广播通知失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
