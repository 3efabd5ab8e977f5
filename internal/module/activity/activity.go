package activity

import (
	"fmt"
	"strconv"
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/internal/module/notification"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ActivityView 活动的响应视图，附带推导字段
type ActivityView struct {
	model.Activity
	Status            model.ActivityStatus `json:"status"`
	ParticipantsCount int64                `json:"participants_count"`
}

// toView 组装活动视图，状态按当前时间推导，参与人数实时统计
func toView(db *gorm.DB, activity model.Activity, now time.Time) (ActivityView, error) {
	var count int64
	err := db.Model(&model.Registration{}).
		Where("activity_id = ? AND status IN ?", activity.ID,
			[]model.RegistrationStatus{model.RegistrationApproved, model.RegistrationAttended}).
		Count(&count).Error
	if err != nil {
		return ActivityView{}, err
	}
	return ActivityView{
		Activity:          activity,
		Status:            activity.StatusAt(now),
		ParticipantsCount: count,
	}, nil
}

// CreateActivityReq 创建活动请求
type CreateActivityReq struct {
	Title                string             `json:"title" binding:"required"`
	Description          string             `json:"description"`
	StartDate            time.Time          `json:"start_date" binding:"required"`
	EndDate              time.Time          `json:"end_date" binding:"required"`
	Location             string             `json:"location"`
	Type                 model.ActivityType `json:"type"`
	MaxParticipants      int                `json:"max_participants"`
	RegistrationDeadline *time.Time         `json:"registration_deadline"`
	Image                string             `json:"image"`
	SendNotification     bool               `json:"send_notification"`
}

// CreateActivity 创建活动，可选向全员广播通知
func CreateActivity(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.EndDate.Before(req.StartDate) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("结束时间不能早于开始时间"))
		return
	}
	if req.Type == "" {
		req.Type = model.ActivityTypeOther
	}
	if !req.Type.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("无效的活动类型"))
		return
	}
	if req.MaxParticipants < 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("人数上限不能为负数"))
		return
	}

	activity := model.Activity{
		Title:                req.Title,
		Description:          req.Description,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		OwnerID:              payload.UserID,
		Location:             req.Location,
		Type:                 req.Type,
		MaxParticipants:      req.MaxParticipants,
		RegistrationDeadline: req.RegistrationDeadline,
		Image:                req.Image,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}
		if req.SendNotification {
			content := fmt.Sprintf("新活动发布：%s，开始时间 %s，欢迎报名参加！",
				activity.Title, activity.StartDate.Format("2006-01-02 15:04"))
			return notification.BroadcastActive(tx, content)
		}
		return nil
	})
	if err != nil {
		log.Error("创建活动失败", "error", err, "title", req.Title)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("活动创建成功", "activity_id", activity.ID, "owner_id", payload.UserID)
	view, err := toView(database.DB, activity, time.Now())
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, view)
}

// ListActivitiesReq 活动列表查询参数
type ListActivitiesReq struct {
	Status   model.ActivityStatus `form:"status"` // 按推导状态过滤
	Type     model.ActivityType   `form:"type"`
	Search   string               `form:"search"`
	Page     int                  `form:"page"`
	PageSize int                  `form:"page_size"`
}

// ListActivities 活动列表，状态过滤转换为时间窗口条件
func ListActivities(c *gin.Context) {
	var req ListActivitiesReq
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

	now := time.Now()
	query := database.DB.Model(&model.Activity{})

	switch req.Status {
	case "":
	case model.ActivityUpcoming:
		query = query.Where("start_date > ?", now)
	case model.ActivityOngoing:
		query = query.Where("start_date <= ? AND end_date >= ?", now, now)
	case model.ActivityCompleted:
		query = query.Where("end_date < ?", now)
	default:
		response.Fail(c, response.ErrInvalidRequest.WithTips("无效的活动状态"))
		return
	}
	if req.Type != "" {
		if !req.Type.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的活动类型"))
			return
		}
		query = query.Where("type = ?", req.Type)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ? OR location LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var activities []model.Activity
	if err := query.Order("start_date DESC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&activities).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		view, err := toView(database.DB, a, now)
		if err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		views = append(views, view)
	}

	response.Success(c, gin.H{
		"total":      total,
		"page":       req.Page,
		"page_size":  req.PageSize,
		"activities": views,
	})
}

// findActivity 按路径参数取活动
func findActivity(c *gin.Context) (*model.Activity, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("无效的活动ID"))
		return nil, false
	}
	var activity model.Activity
	err = database.DB.First(&activity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return nil, false
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	return &activity, true
}

// GetActivity 活动详情
func GetActivity(c *gin.Context) {
	activity, ok := findActivity(c)
	if !ok {
		return
	}
	view, err := toView(database.DB, *activity, time.Now())
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, view)
}

// UpdateActivityReq 更新活动请求，指针字段表示未提交则不修改
type UpdateActivityReq struct {
	Title                *string             `json:"title"`
	Description          *string             `json:"description"`
	StartDate            *time.Time          `json:"start_date"`
	EndDate              *time.Time          `json:"end_date"`
	Location             *string             `json:"location"`
	Type                 *model.ActivityType `json:"type"`
	MaxParticipants      *int                `json:"max_participants"`
	RegistrationDeadline *time.Time          `json:"registration_deadline"`
	Image                *string             `json:"image"`
	SendNotification     bool                `json:"send_notification"`
}

// UpdateActivity 更新活动，仅创建者或管理员可操作
func UpdateActivity(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activity, ok := findActivity(c)
	if !ok {
		return
	}
	if activity.OwnerID != payload.UserID && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrForbidden.WithTips("只有创建者或管理员可以修改活动"))
		return
	}

	var req UpdateActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.StartDate != nil {
		activity.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		activity.EndDate = *req.EndDate
	}
	if activity.EndDate.Before(activity.StartDate) {
		response.Fail(c, response.ErrInvalidRequest.WithTips("结束时间不能早于开始时间"))
		return
	}
	if req.Location != nil {
		activity.Location = *req.Location
	}
	if req.Type != nil {
		if !req.Type.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的活动类型"))
			return
		}
		activity.Type = *req.Type
	}
	if req.MaxParticipants != nil {
		if *req.MaxParticipants < 0 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("人数上限不能为负数"))
			return
		}
		activity.MaxParticipants = *req.MaxParticipants
	}
	if req.RegistrationDeadline != nil {
		activity.RegistrationDeadline = req.RegistrationDeadline
	}
	if req.Image != nil {
		activity.Image = *req.Image
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(activity).Error; err != nil {
			return err
		}
		if req.SendNotification {
			content := fmt.Sprintf("活动更新：%s 的信息发生变更，请注意查看。", activity.Title)
			return notification.BroadcastActive(tx, content)
		}
		return nil
	})
	if err != nil {
		log.Error("更新活动失败", "error", err, "activity_id", activity.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	view, err := toView(database.DB, *activity, time.Now())
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, view)
}

// DeleteActivity 删除活动，仅创建者或管理员可操作
func DeleteActivity(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activity, ok := findActivity(c)
	if !ok {
		return
	}
	if activity.OwnerID != payload.UserID && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrForbidden.WithTips("只有创建者或管理员可以删除活动"))
		return
	}

	if err := database.DB.Delete(activity).Error; err != nil {
		log.Error("删除活动失败", "error", err, "activity_id", activity.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	log.Info("活动已删除", "activity_id", activity.ID, "operator", payload.UserID)
	response.Success(c)
}

// MyActivities 当前用户创建的活动
func MyActivities(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var activities []model.Activity
	if err := database.DB.Where("owner_id = ?", payload.UserID).
		Order("start_date DESC").Find(&activities).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	now := time.Now()
	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		view, err := toView(database.DB, a, now)
		if err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		views = append(views, view)
	}
	response.Success(c, views)
}
