package activity

import (
	"fmt"
	"strings"
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/internal/module/notification"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterReq 报名请求的附加信息
type RegisterReq struct {
	Reason              string `json:"reason"`
	PhoneNumber         string `json:"phone_number"`
	EmergencyContact    string `json:"emergency_contact"`
	DietaryRequirements string `json:"dietary_requirements"`
	AdditionalInfo      string `json:"additional_info"`
}

// buildNotes 把报名附加信息拼成带标签的备注，空字段跳过
func buildNotes(req RegisterReq) string {
	var lines []string
	if req.Reason != "" {
		lines = append(lines, "报名原因: "+req.Reason)
	}
	if req.PhoneNumber != "" {
		lines = append(lines, "联系电话: "+req.PhoneNumber)
	}
	if req.EmergencyContact != "" {
		lines = append(lines, "紧急联系人: "+req.EmergencyContact)
	}
	if req.DietaryRequirements != "" {
		lines = append(lines, "饮食要求: "+req.DietaryRequirements)
	}
	if req.AdditionalInfo != "" {
		lines = append(lines, "补充信息: "+req.AdditionalInfo)
	}
	return strings.Join(lines, "\n")
}

// lockActivity 给活动行加排他锁
// sqlite 不支持 FOR UPDATE，事务本身已经串行化写入
func lockActivity(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// conflictData 重复报名时返回的冲突信息
func conflictData(reg *model.Registration) gin.H {
	return gin.H{
		"status":          reg.Status,
		"registration_id": reg.ID,
	}
}

// Register 报名活动
// 整个流程跑在一个事务里，先对活动行加排他锁，保证并发下名额判断准确
func Register(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activity, ok := findActivity(c)
	if !ok {
		return
	}

	// 请求体允许为空，报名附加信息都是可选的
	var req RegisterReq
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
			return
		}
	}

	var registration model.Registration
	var conflict *model.Registration

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 锁活动行，序列化同一活动的并发报名
		var locked model.Activity
		if err := lockActivity(tx).First(&locked, activity.ID).Error; err != nil {
			return err
		}

		// 已有报名记录的处理
		var existing model.Registration
		err := tx.Where("user_id = ? AND activity_id = ?", payload.UserID, locked.ID).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.Status != model.RegistrationCancelled {
				conflict = &existing
				return response.ErrAlreadyRegistered
			}
			// 已取消的报名复用原记录，重新进入待审核
			existing.Status = model.RegistrationPending
			existing.Reason = req.Reason
			existing.PhoneNumber = req.PhoneNumber
			existing.EmergencyContact = req.EmergencyContact
			existing.DietaryRequirements = req.DietaryRequirements
			existing.AdditionalInfo = req.AdditionalInfo
			existing.Notes = buildNotes(req)
			existing.AttendanceDate = nil
			if err := checkRegistrationOpen(tx, &locked); err != nil {
				return err
			}
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if req.PhoneNumber != "" {
				if err := tx.Model(&model.User{}).
					Where("id = ? AND phone_number <> ?", payload.UserID, req.PhoneNumber).
					Update("phone_number", req.PhoneNumber).Error; err != nil {
					return err
				}
			}
			registration = existing
			return notifyRegistered(tx, payload, &locked)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := checkRegistrationOpen(tx, &locked); err != nil {
			return err
		}

		registration = model.Registration{
			UserID:              payload.UserID,
			ActivityID:          locked.ID,
			Status:              model.RegistrationPending,
			Reason:              req.Reason,
			PhoneNumber:         req.PhoneNumber,
			EmergencyContact:    req.EmergencyContact,
			DietaryRequirements: req.DietaryRequirements,
			AdditionalInfo:      req.AdditionalInfo,
			Notes:               buildNotes(req),
		}
		if err := tx.Create(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return response.ErrAlreadyRegistered
			}
			return err
		}

		// 电话变更时回写用户资料
		if req.PhoneNumber != "" {
			if err := tx.Model(&model.User{}).
				Where("id = ? AND phone_number <> ?", payload.UserID, req.PhoneNumber).
				Update("phone_number", req.PhoneNumber).Error; err != nil {
				return err
			}
		}

		return notifyRegistered(tx, payload, &locked)
	})

	if err != nil {
		switch {
		case errors.Is(err, response.ErrAlreadyRegistered):
			if conflict != nil {
				response.FailData(c, response.ErrAlreadyRegistered, conflictData(conflict))
			} else {
				response.Fail(c, response.ErrAlreadyRegistered)
			}
		case errors.Is(err, response.ErrDeadlineExpired),
			errors.Is(err, response.ErrActivityFull):
			response.Fail(c, err)
		default:
			log.Error("报名失败", "error", err,
				"user_id", payload.UserID, "activity_id", activity.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
		}
		return
	}

	log.Info("报名成功",
		"user_id", payload.UserID,
		"activity_id", activity.ID,
		"registration_id", registration.ID)
	response.Created(c, registration)
}

// checkRegistrationOpen 截止时间和名额校验，必须在持有活动行锁时调用
func checkRegistrationOpen(tx *gorm.DB, activity *model.Activity) error {
	if activity.RegistrationDeadline != nil && time.Now().After(*activity.RegistrationDeadline) {
		return response.ErrDeadlineExpired
	}
	if activity.MaxParticipants > 0 {
		var count int64
		if err := tx.Model(&model.Registration{}).
			Where("activity_id = ? AND status IN ?", activity.ID,
				[]model.RegistrationStatus{model.RegistrationApproved, model.RegistrationAttended}).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(activity.MaxParticipants) {
			return response.ErrActivityFull
		}
	}
	return nil
}

// notifyRegistered 报名成功后的站内通知，管理员团干部各一条加本人一条
func notifyRegistered(tx *gorm.DB, payload *jwt.Claims, activity *model.Activity) error {
	adminContent := fmt.Sprintf("用户 %s 报名了活动「%s」，等待审核。",
		payload.Username, activity.Title)
	if err := notification.NotifyPrivileged(tx, adminContent); err != nil {
		return err
	}
	selfContent := fmt.Sprintf("你已成功报名活动「%s」，请等待审核结果。", activity.Title)
	return notification.FanOut(tx, []uint{payload.UserID}, selfContent)
}

// CancelRegistration 取消报名，只有待审核和已通过可以取消
func CancelRegistration(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activity, ok := findActivity(c)
	if !ok {
		return
	}

	var registration model.Registration
	err := database.DB.Where("user_id = ? AND activity_id = ?", payload.UserID, activity.ID).
		First(&registration).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotRegistered)
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if registration.Status == model.RegistrationCancelled {
		response.Fail(c, response.ErrAlreadyCancelled)
		return
	}
	if !registration.Status.Cancellable() {
		response.FailData(c, response.ErrInvalidState.WithTips("当前状态不允许取消"),
			gin.H{"status": registration.Status})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&registration).Update("status", model.RegistrationCancelled).Error; err != nil {
			return err
		}
		adminContent := fmt.Sprintf("用户 %s 取消了活动「%s」的报名。",
			payload.Username, activity.Title)
		if err := notification.NotifyPrivileged(tx, adminContent); err != nil {
			return err
		}
		selfContent := fmt.Sprintf("你已取消活动「%s」的报名。", activity.Title)
		return notification.FanOut(tx, []uint{payload.UserID}, selfContent)
	})
	if err != nil {
		log.Error("取消报名失败", "error", err,
			"user_id", payload.UserID, "activity_id", activity.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("取消报名成功", "user_id", payload.UserID, "activity_id", activity.ID)
	response.Success(c, registration)
}

// MarkAttendanceReq 签到标记请求
type MarkAttendanceReq struct {
	UserID   uint  `json:"user_id" binding:"required"`
	Attended *bool `json:"attended" binding:"required"`
}

// MarkAttendance 管理员团干部标记出席
// attended=true 记为已参加并盖时间戳；attended=false 不做任何变更
func MarkAttendance(c *gin.Context) {
	activity, ok := findActivity(c)
	if !ok {
		return
	}

	var req MarkAttendanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var registration model.Registration
	err := database.DB.Where("user_id = ? AND activity_id = ?", req.UserID, activity.ID).
		First(&registration).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Fail(c, response.ErrNotRegistered.WithTips("该用户未报名此活动"))
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !*req.Attended {
		response.Success(c, registration)
		return
	}

	now := time.Now()
	if err := database.DB.Model(&registration).Updates(map[string]any{
		"status":          model.RegistrationAttended,
		"attendance_date": now,
	}).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	registration.Status = model.RegistrationAttended
	registration.AttendanceDate = &now

	log.Info("标记出席成功", "user_id", req.UserID, "activity_id", activity.ID)
	response.Success(c, registration)
}

// RegistrationStatus 查询当前用户在某活动下的报名状态
func RegistrationStatus(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	activity, ok := findActivity(c)
	if !ok {
		return
	}

	var registration model.Registration
	err := database.DB.Where("user_id = ? AND activity_id = ?", payload.UserID, activity.ID).
		First(&registration).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Success(c, gin.H{"registered": false})
		return
	case err != nil:
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"registered":        true,
		"registration_id":   registration.ID,
		"status":            registration.Status,
		"registration_date": registration.CreatedAt,
		"attendance_date":   registration.AttendanceDate,
		"notes":             registration.Notes,
	})
}

// ListRegistrationsReq 活动报名列表查询参数
type ListRegistrationsReq struct {
	Status   model.RegistrationStatus `form:"status"`
	Page     int                      `form:"page"`
	PageSize int                      `form:"page_size"`
}

// ListActivityRegistrations 某活动的报名记录，管理员团干部可见
func ListActivityRegistrations(c *gin.Context) {
	activity, ok := findActivity(c)
	if !ok {
		return
	}

	var req ListRegistrationsReq
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

	query := database.DB.Model(&model.Registration{}).Where("activity_id = ?", activity.ID)
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
	if err := query.Preload("User").Order("created_at DESC").
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

// Participants 已通过和已参加的报名用户列表
func Participants(c *gin.Context) {
	activity, ok := findActivity(c)
	if !ok {
		return
	}

	var registrations []model.Registration
	err := database.DB.Preload("User").
		Where("activity_id = ? AND status IN ?", activity.ID,
			[]model.RegistrationStatus{model.RegistrationApproved, model.RegistrationAttended}).
		Order("created_at ASC").
		Find(&registrations).Error
	if err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	participants := make([]gin.H, 0, len(registrations))
	for _, r := range registrations {
		participants = append(participants, gin.H{
			"user_id":         r.UserID,
			"username":        r.User.Username,
			"full_name":       r.User.FullName,
			"status":          r.Status,
			"attendance_date": r.AttendanceDate,
		})
	}
	response.Success(c, participants)
}
