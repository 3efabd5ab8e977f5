package chatbot

import (
	"union-activity-system/config"
	"union-activity-system/internal/global/httpclient"
	"union-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
)

// fallbackAnswer 上游服务不可用时的兜底回复
const fallbackAnswer = "智能助手暂时不可用，请稍后再试，或直接联系团委工作人员。"

// QueryReq 提问请求
type QueryReq struct {
	Question string `json:"question" binding:"required"`
}

type upstreamAnswer struct {
	Answer string `json:"answer"`
}

// Query 把问题转发给外部问答服务，失败时返回兜底回复
func Query(c *gin.Context) {
	var req QueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	baseURL := config.Get().Chatbot.BaseURL
	if baseURL == "" {
		response.Success(c, gin.H{"answer": fallbackAnswer, "fallback": true})
		return
	}

	var result upstreamAnswer
	resp, err := httpclient.Client.R().
		SetContext(c.Request.Context()).
		SetBody(gin.H{"question": req.Question}).
		SetResult(&result).
		Post(baseURL + "/api/query")
	if err != nil || resp.IsError() || result.Answer == "" {
		log.Warn("问答服务请求失败，使用兜底回复",
			"error", err,
			"question", req.Question)
		response.Success(c, gin.H{"answer": fallbackAnswer, "fallback": true})
		return
	}

	response.Success(c, gin.H{"answer": result.Answer, "fallback": false})
}
