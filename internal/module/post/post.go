package post

import (
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CreatePostReq 创建帖子请求
type CreatePostReq struct {
	Title   string           `json:"title" binding:"required"`
	Content string           `json:"content"`
	Status  model.PostStatus `json:"status"`
}

// CreatePost 创建帖子，默认草稿
func CreatePost(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Status == "" {
		req.Status = model.PostDraft
	}
	if !req.Status.Valid() || req.Status == model.PostDeleted {
		response.Fail(c, response.ErrInvalidRequest.WithTips("无效的帖子状态"))
		return
	}

	post := model.Post{
		UserID:  payload.UserID,
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		log.Error("创建帖子失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, post)
}

// ListPosts 帖子列表
// 已删除状态的帖子只有管理员可见
func ListPosts(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	query := database.DB.Model(&model.Post{})
	if payload.Role != model.RoleAdmin {
		query = query.Where("status <> ?", model.PostDeleted)
	}
	if status := c.Query("status"); status != "" {
		s := model.PostStatus(status)
		if !s.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的帖子状态"))
			return
		}
		if s == model.PostDeleted && payload.Role != model.RoleAdmin {
			response.Fail(c, response.ErrForbidden)
			return
		}
		query = query.Where("status = ?", s)
	}

	var posts []model.Post
	if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, posts)
}

// MyPosts 当前用户的帖子
func MyPosts(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	var posts []model.Post
	if err := database.DB.Where("user_id = ?", payload.UserID).
		Order("created_at DESC").Find(&posts).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, posts)
}

// findPost 取帖子并做可见性校验
func findPost(c *gin.Context, payload *jwt.Claims) (*model.Post, bool) {
	var post model.Post
	err := database.DB.First(&post, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("帖子不存在"))
			return nil, false
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return nil, false
	}
	if post.Status == model.PostDeleted && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrNotFound.WithTips("帖子不存在"))
		return nil, false
	}
	return &post, true
}

// GetPost 帖子详情
func GetPost(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	post, ok := findPost(c, payload)
	if !ok {
		return
	}
	response.Success(c, post)
}

// UpdatePostReq 更新帖子请求
type UpdatePostReq struct {
	Title   *string           `json:"title"`
	Content *string           `json:"content"`
	Status  *model.PostStatus `json:"status"`
}

// UpdatePost 更新帖子，仅作者或管理员可操作
func UpdatePost(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	post, ok := findPost(c, payload)
	if !ok {
		return
	}
	if post.UserID != payload.UserID && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrForbidden.WithTips("只有作者或管理员可以修改帖子"))
		return
	}

	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			response.Fail(c, response.ErrInvalidRequest.WithTips("无效的帖子状态"))
			return
		}
		post.Status = *req.Status
	}

	if err := database.DB.Save(post).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, post)
}

// DeletePost 逻辑删除，状态置为已删除
func DeletePost(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	post, ok := findPost(c, payload)
	if !ok {
		return
	}
	if post.UserID != payload.UserID && payload.Role != model.RoleAdmin {
		response.Fail(c, response.ErrForbidden.WithTips("只有作者或管理员可以删除帖子"))
		return
	}

	if err := database.DB.Model(post).Update("status", model.PostDeleted).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
