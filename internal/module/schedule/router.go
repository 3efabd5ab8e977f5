package schedule

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (s *ModuleSchedule) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/work-schedules").Use(middleware.Auth(model.RoleMember))
	{
		group.POST("", CreateSchedule)
		group.GET("", ListSchedules)
		group.GET("/:id", GetSchedule)
		group.PUT("/:id", UpdateSchedule)
		group.DELETE("/:id", DeleteSchedule)
	}
}
