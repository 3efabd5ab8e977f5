package permission

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (p *ModulePermission) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/permissions").Use(middleware.Auth(model.RoleAdmin))
	{
		group.POST("", Grant)
		group.GET("", ListPermissions)
		group.GET("/:id", GetPermission)
		group.DELETE("/:id", Revoke)
	}
}
