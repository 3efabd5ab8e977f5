package activity

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (a *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/activities")

	memberGroup := group.Group("").Use(middleware.Auth(model.RoleMember))
	{
		memberGroup.GET("", ListActivities)
		memberGroup.GET("/my_activities", MyActivities)
		memberGroup.GET("/stats", Stats)
		memberGroup.GET("/:id", GetActivity)
		memberGroup.POST("/:id/register", Register)
		memberGroup.POST("/:id/cancel_registration", CancelRegistration)
		memberGroup.GET("/:id/registration-status", RegistrationStatus)
		memberGroup.GET("/:id/participants", Participants)
	}

	officerGroup := group.Group("").Use(middleware.Auth(model.RoleOfficer))
	{
		officerGroup.POST("", CreateActivity)
		officerGroup.PUT("/:id", UpdateActivity)
		officerGroup.DELETE("/:id", DeleteActivity)
		officerGroup.POST("/:id/mark_attendance", MarkAttendance)
		officerGroup.GET("/:id/registrations", ListActivityRegistrations)
	}
}
