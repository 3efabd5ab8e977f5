package notification

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (n *ModuleNotification) InitRouter(r *gin.RouterGroup) {
	group := r.Group("/notification").Use(middleware.Auth(model.RoleMember))
	{
		group.GET("/list", ListNotifications)
		group.GET("/unread-count", UnreadCount)
		group.POST("/:id/read", MarkRead)
		group.POST("/read-all", MarkAllRead)
	}

	r.POST("/notification/broadcast", middleware.Auth(model.RoleOfficer), Broadcast)
}
