package report

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (r *ModuleReport) InitRouter(router *gin.RouterGroup) {
	group := router.Group("/reports").Use(middleware.Auth(model.RoleOfficer))
	{
		group.GET("/dashboard", Dashboard)
		group.GET("/activities", Activities)
		group.GET("/members", Members)
		group.GET("/activities-by-month", ActivitiesByMonth)
		group.GET("/participation-by-month", ParticipationByMonth)
		group.GET("/download", Download)
	}
}
