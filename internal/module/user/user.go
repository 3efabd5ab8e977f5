package user

import (
	"strings"
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"
	"union-activity-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// LoginReq 定义登录请求的结构体
type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求，签发访问令牌
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 查询用户是否存在
	var user model.User
	err := database.DB.Where("username = ?", req.Username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "username", req.Username)
		response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !user.IsActive {
		log.Warn("账号已停用", "username", req.Username)
		response.Fail(c, response.ErrForbidden.WithTips("账号已停用"))
		return
	}

	// 验证密码
	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "username", req.Username)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role)

	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		}),
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Refresh 用仍然有效的令牌换取新令牌
func Refresh(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	response.Success(c, map[string]interface{}{
		"token": jwt.CreateToken(jwt.Payload{
			UserID:   payload.UserID,
			Username: payload.Username,
			Role:     payload.Role,
		}),
	})
}

// validatePasswordStrength 验证密码强度
func validatePasswordStrength(password string) error {
	if password == "" {
		return errors.New("密码不能为空")
	}
	if len(password) < 8 {
		return errors.New("密码长度必须至少8字符")
	}

	hasLetter := false
	hasDigit := false

	for _, char := range password {
		switch {
		case strings.ContainsRune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ", char):
			hasLetter = true
		case strings.ContainsRune("0123456789", char):
			hasDigit = true
		}
	}

	if !hasLetter {
		return errors.New("密码必须包含至少一个字母")
	}
	if !hasDigit {
		return errors.New("密码必须包含至少一个数字")
	}

	return nil
}

// CreateUserReq 管理员/团干部创建账号的请求结构体
type CreateUserReq struct {
	Username    string     `json:"username" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required"`
	FullName    string     `json:"full_name" binding:"required"`
	Role        model.Role `json:"role"`
	PhoneNumber string     `json:"phone_number"`
	Address     string     `json:"address"`
	StudentID   string     `json:"student_id"`
	Department  string     `json:"department"`
	Position    string     `json:"position"`
	MemberSince *time.Time `json:"member_since"`
	Avatar      string     `json:"avatar"`
}

// CreateUser 创建账号，仅管理员和团干部可用
func CreateUser(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定创建用户请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.Password); err != nil {
		log.Warn("密码强度验证失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	role := req.Role
	if role == "" {
		role = model.RoleMember
	}
	if !role.Valid() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("角色不合法"))
		return
	}
	// 只有管理员能创建管理员账号
	if role == model.RoleAdmin && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrForbidden)
		return
	}

	// 检查用户名或邮箱是否已存在
	var existing model.User
	err := database.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		log.Warn("用户已存在", "username", req.Username, "email", req.Email)
		response.Fail(c, response.ErrAlreadyExists.WithTips("用户名或邮箱已被使用"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	user := model.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    tools.PasswordEncrypt(req.Password),
		FullName:    req.FullName,
		Role:        role,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		IsActive:    true,
		StudentID:   req.StudentID,
		Department:  req.Department,
		Position:    req.Position,
		MemberSince: req.MemberSince,
		Avatar:      req.Avatar,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "username", req.Username)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户创建成功",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role,
		"created_by", payload.UserID)

	response.Created(c, user)
}

// GetMe 返回当前登录用户信息
func GetMe(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var user model.User
	if err := database.DB.First(&user, payload.UserID).Error; err != nil {
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// UpdateUserReq 更新资料请求，指针字段支持部分更新
type UpdateUserReq struct {
	Email       *string     `json:"email"`
	FullName    *string     `json:"full_name"`
	PhoneNumber *string     `json:"phone_number"`
	Address     *string     `json:"address"`
	StudentID   *string     `json:"student_id"`
	Department  *string     `json:"department"`
	Position    *string     `json:"position"`
	MemberSince *time.Time  `json:"member_since"`
	Avatar      *string     `json:"avatar"`
	Role        *model.Role `json:"role"`      // 仅管理员可改
	IsActive    *bool       `json:"is_active"` // 仅管理员和团干部可改
}

func applyUserUpdate(user *model.User, req *UpdateUserReq) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.PhoneNumber != nil {
		updates["phone_number"] = *req.PhoneNumber
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.StudentID != nil {
		updates["student_id"] = *req.StudentID
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.MemberSince != nil {
		updates["member_since"] = *req.MemberSince
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	return updates
}

// UpdateMe 当前用户更新自己的资料，不允许改角色和启用状态
func UpdateMe(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	if err := database.DB.First(&user, payload.UserID).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updates := applyUserUpdate(&user, &req)
	if len(updates) == 0 {
		response.Success(c, user)
		return
	}
	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		log.Error("更新用户资料失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, user)
}

// ChangePasswordReq 定义修改密码请求的结构体
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword 验证旧密码后更新新密码
func ChangePassword(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定修改密码请求失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if err := validatePasswordStrength(req.NewPassword); err != nil {
		log.Warn("新密码强度验证失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidRequest.WithTips(err.Error()))
		return
	}

	var user model.User
	if err := database.DB.First(&user, payload.UserID).Error; err != nil {
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.OldPassword, user.Password) {
		log.Warn("旧密码错误", "user_id", payload.UserID)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	if err := database.DB.Model(&user).Update("password", tools.PasswordEncrypt(req.NewPassword)).Error; err != nil {
		log.Error("更新密码失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户修改密码成功", "user_id", user.ID, "username", user.Username)
	response.Success(c)
}

// ListUsersReq 用户列表查询参数
type ListUsersReq struct {
	Search   string `form:"search"`
	Role     string `form:"role"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListUsers 用户列表，支持搜索和角色筛选，仅管理员和团干部可用
func ListUsers(c *gin.Context) {
	var req ListUsersReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 10
	}

	query := database.DB.Model(&model.User{})
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where(
			"username LIKE ? OR email LIKE ? OR full_name LIKE ? OR phone_number LIKE ?",
			like, like, like, like,
		)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Error("获取用户总数失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var users []model.User
	if err := query.Order("id ASC").
		Offset((req.Page - 1) * req.PageSize).
		Limit(req.PageSize).
		Find(&users).Error; err != nil {
		log.Error("查询用户列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, gin.H{
		"total":     total,
		"page":      req.Page,
		"page_size": req.PageSize,
		"users":     users,
	})
}

// GetUser 查询单个用户，本人或管理员/团干部可见
func GetUser(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if user.ID != payload.UserID && !payload.Role.IsPrivileged() {
		response.Fail(c, response.ErrForbidden)
		return
	}
	response.Success(c, user)
}

// UpdateUser 管理员/团干部更新任意用户资料
func UpdateUser(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	updates := applyUserUpdate(&user, &req)
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Role != nil {
		// 角色变更只有管理员可以执行
		if payload.Role != model.RoleAdmin {
			response.Fail(c, response.ErrForbidden)
			return
		}
		if !req.Role.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("角色不合法"))
			return
		}
		updates["role"] = *req.Role
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			log.Error("更新用户失败", "error", err, "user_id", user.ID)
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
	}

	log.Info("用户资料更新成功", "user_id", user.ID, "updated_by", payload.UserID)
	response.Success(c, user)
}

// DeleteUser 停用并软删除用户，仅管理员
func DeleteUser(c *gin.Context) {
	var user model.User
	if err := database.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		log.Error("删除用户失败", "error", err, "user_id", user.ID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
