package dashboard

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (d *ModuleDashboard) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/dashboard").Use(middleware.Auth(model.RoleMember))
	{
		group.GET("/stats", Stats)
		group.GET("/participation-chart", ParticipationChart)
		group.GET("/activity-type-chart", ActivityTypeChart)
		group.GET("/member-stats", MemberStats)
	}
}
