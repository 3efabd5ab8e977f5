package memberbook

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (m *ModuleMemberBook) InitRouter(r *gin.RouterGroup) {
	memberGroup := r.Group("").Use(middleware.Auth(model.RoleMember))
	{
		memberGroup.GET("/member-book", GetMemberBook)
		memberGroup.GET("/member-activities", ListMemberActivities)
		memberGroup.GET("/union-fee-status", ListFees)
	}

	officerGroup := r.Group("").Use(middleware.Auth(model.RoleOfficer))
	{
		officerGroup.POST("/member-achievements", CreateAchievement)
		officerGroup.PUT("/member-achievements/:id", UpdateAchievement)
		officerGroup.DELETE("/member-achievements/:id", DeleteAchievement)
		officerGroup.POST("/union-fee-status", CreateFee)
		officerGroup.PUT("/union-fee-status/:id", UpdateFee)
		officerGroup.DELETE("/union-fee-status/:id", DeleteFee)
	}
}
