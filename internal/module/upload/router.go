package upload

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUpload) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/upload").Use(middleware.Auth(model.RoleOfficer))
	{
		group.POST("/presign", Presign)
		group.POST("/local", LocalUpload)
	}
}
