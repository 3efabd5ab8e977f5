package chatbot

import (
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

func (cb *ModuleChatbot) InitRouter(r *gin.RouterGroup) {
	r.POST("/chatbot/query", middleware.Auth(model.RoleMember), Query)
}
