package user

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	userGroup := r.Group("/user")

	// 公开端点
	userGroup.POST("/login", Login)

	authGroup := userGroup.Group("").Use(middleware.Auth(model.RoleMember))
	{
		authGroup.POST("/refresh", Refresh)
		authGroup.GET("/me", GetMe)
		authGroup.PUT("/me", UpdateMe)
		authGroup.POST("/change-password", ChangePassword)
		// 对象级权限在 handler 内校验
		authGroup.GET("/:id", GetUser)
	}

	officerGroup := userGroup.Group("").Use(middleware.Auth(model.RoleOfficer))
	{
		officerGroup.POST("/register", CreateUser)
		officerGroup.GET("/list", ListUsers)
		officerGroup.PUT("/:id", UpdateUser)
	}

	userGroup.DELETE("/:id", middleware.Auth(model.RoleAdmin), DeleteUser)
}
