package ping

import (
	"context"
	"time"
	"union-activity-system/internal/global/cache"
	"union-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
)

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		result := map[string]interface{}{
			"message": "pong",
			"version": "1.0.0",
			"cache":   cache.Healthy(ctx),
		}
		response.Success(c, result)
	})
}
