package post

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (p *ModulePost) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/posts").Use(middleware.Auth(model.RoleMember))
	{
		group.POST("", CreatePost)
		group.GET("", ListPosts)
		group.GET("/my_posts", MyPosts)
		group.GET("/:id", GetPost)
		group.PUT("/:id", UpdatePost)
		group.DELETE("/:id", DeletePost)
	}
}
