package schedule

import (
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreateScheduleReq 创建工作安排请求
type CreateScheduleReq struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description"`
	ScheduleDate time.Time `json:"schedule_date" binding:"required"`
	UserID       uint      `json:"user_id"` // 管理员团干部可以给别人排
}

// CreateSchedule 创建工作安排
func CreateSchedule(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	targetID := payload.UserID
	if req.UserID != 0 && req.UserID != payload.UserID {
		if !payload.Role.IsPrivileged() {
			response.Fail(c, response.ErrForbidden.WithTips("无权给其他用户安排工作"))
			return
		}
		targetID = req.UserID
	}

	item := model.WorkSchedule{
		UserID:       targetID,
		Title:        req.Title,
		Description:  req.Description,
		ScheduleDate: req.ScheduleDate,
		Status:       model.SchedulePending,
	}
	if err := database.DB.Create(&item).Error; err != nil {
		log.Error("创建工作安排失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, item)
}

// ListSchedules 工作安排列表，普通成员只能看自己的
func ListSchedules(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	query := database.DB.Model(&model.WorkSchedule{})
	if !payload.Role.IsPrivileged() {
		query = query.Where("user_id = ?", payload.UserID)
	} else if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status := c.Query("status"); status != "" {
		s := model.ScheduleStatus(status)
		if !s.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的安排状态"))
			return
		}
		query = query.Where("status = ?", s)
	}

	var schedules []model.WorkSchedule
	if err := query.Order("schedule_date ASC").Find(&schedules).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, schedules)
}

// findSchedule 取工作安排并校验归属
func findSchedule(c *gin.Context, payload *jwt.Claims) (*model.WorkSchedule, bool) {
	var item model.WorkSchedule
	err := database.DB.First(&item, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("工作安排不存在"))
			return nil, false
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	if item.UserID != payload.UserID && !payload.Role.IsPrivileged() {
		response.Fail(c, response.ErrForbidden)
		return nil, false
	}
	return &item, true
}

// GetSchedule 工作安排详情
func GetSchedule(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	item, ok := findSchedule(c, payload)
	if !ok {
		return
	}
	response.Success(c, item)
}

// UpdateScheduleReq 更新工作安排请求
type UpdateScheduleReq struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	ScheduleDate *time.Time            `json:"schedule_date"`
	Status       *model.ScheduleStatus `json:"status"`
}

// UpdateSchedule 更新工作安排
func UpdateSchedule(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	item, ok := findSchedule(c, payload)
	if !ok {
		return
	}

	var req UpdateScheduleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.ScheduleDate != nil {
		item.ScheduleDate = *req.ScheduleDate
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的安排状态"))
			return
		}
		item.Status = *req.Status
	}

	if err := database.DB.Save(item).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, item)
}

// DeleteSchedule 删除工作安排
func DeleteSchedule(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	item, ok := findSchedule(c, payload)
	if !ok {
		return
	}
	if err := database.DB.Delete(item).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
