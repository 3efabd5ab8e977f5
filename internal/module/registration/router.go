package registration

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleRegistration) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/registrations")

	group.GET("/my_registrations", middleware.Auth(model.RoleMember), MyRegistrations)

	officerGroup := group.Group("").Use(middleware.Auth(model.RoleOfficer))
	{
		officerGroup.GET("", List)
		officerGroup.POST("/:id/review", Review)
	}
}
