package response

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"union-activity-system/config"
	"union-activity-system/internal/global/logger"

	"github.com/gin-gonic/gin"
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// Success 返回成功响应，data 可省略
func Success(c *gin.Context, data ...any) {
	body := ResponseBody{Code: 200, Msg: "success"}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.JSON(http.StatusOK, body)
}

// Created 返回创建成功响应
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, ResponseBody{Code: 201, Msg: "created", Data: data})
}

// Fail 返回错误响应，HTTP 状态码由错误码推导
func Fail(c *gin.Context, err error) {
	FailData(c, err, nil)
}

// FailData 返回携带附加数据的错误响应，用于冲突类错误回传当前状态
func FailData(c *gin.Context, err error, data any) {
	e, ok := err.(*Error)
	if !ok {
		e = ErrInternal.WithOrigin(err)
	}

	body := ResponseBody{Code: e.Code, Msg: e.Message, Data: data}
	// 原始错误仅在 debug 模式下回传给前端
	if config.Get().Mode == config.ModeDebug && e.Origin != "" {
		body.Msg = fmt.Sprintf("%s (%s)", e.Message, e.Origin)
	}

	c.Set(ErrorContextKey, e)
	c.JSON(httpStatus(e.Code), body)
}

// httpStatus 错误码前三位即 HTTP 状态码
func httpStatus(code int32) int {
	status := int(code / 100)
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// Recovery 捕获 handler panic，记录堆栈并返回统一错误
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		logger.New("Recovery").Error("panic recovered",
			"panic", fmt.Sprintf("%v", r),
			"path", c.Request.URL.Path,
			"stack", string(debug.Stack()),
		)
		c.Abort()
		Fail(c, ErrInternal)
	}
}
