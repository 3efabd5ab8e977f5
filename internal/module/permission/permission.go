package permission

import (
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GrantReq 授权请求
type GrantReq struct {
	UserID         uint                 `json:"user_id" binding:"required"`
	PostID         *uint                `json:"post_id"`
	PermissionType model.PermissionType `json:"permission_type" binding:"required"`
}

// Grant 管理员授予权限，记录授权人
func Grant(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req GrantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if !req.PermissionType.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("无效的授权类型"))
		return
	}

	var user model.User
	if err := database.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	grantedBy := payload.UserID
	perm := model.Permission{
		UserID:         req.UserID,
		PostID:         req.PostID,
		PermissionType: req.PermissionType,
		GrantedByID:    &grantedBy,
	}
	if err := database.DB.Create(&perm).Error; err != nil {
		log.Error("授权失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("授权成功",
		"permission_id", perm.ID,
		"user_id", req.UserID,
		"granted_by", payload.UserID)
	response.Created(c, perm)
}

// ListPermissions 授权记录列表，可按用户过滤
func ListPermissions(c *gin.Context) {
	query := database.DB.Model(&model.Permission{})
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var permissions []model.Permission
	if err := query.Preload("User").Order("created_at DESC").
		Find(&permissions).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, permissions)
}

// GetPermission 授权详情
func GetPermission(c *gin.Context) {
	var perm model.Permission
	err := database.DB.Preload("User").First(&perm, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("授权记录不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, perm)
}

// Revoke 撤销授权
func Revoke(c *gin.Context) {
	var perm model.Permission
	err := database.DB.First(&perm, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("授权记录不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := database.DB.Delete(&perm).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
