package middleware

import (
	"strings"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer 令牌并要求最低角色等级
func Auth(minRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取 Authorization 头
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrUnauthorized)
			c.Abort()
			return
		}

		// 检查 Bearer 前缀并提取 token
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		// 解析 token
		if payload, valid := jwt.ParseToken(token); !valid {
			response.Fail(c, response.ErrTokenInvalid)
			c.Abort()
			return
		} else if payload.Role.Rank() < minRole.Rank() {
			response.Fail(c, response.ErrForbidden)
			c.Abort()
			return
		} else {
			c.Set("payload", payload)
		}
		c.Next()
	}
}
