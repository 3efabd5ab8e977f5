package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type requestConfig struct {
	method  string
	query   string
	body    any
	params  gin.Params
	payload *jwt.Claims
}

type RequestOption func(*requestConfig)

// WithMethod 指定请求方法，默认 POST
func WithMethod(method string) RequestOption {
	return func(cfg *requestConfig) { cfg.method = method }
}

// WithQuery 附加查询串，例如 "page=1&page_size=10"
func WithQuery(query string) RequestOption {
	return func(cfg *requestConfig) { cfg.query = query }
}

// WithBody 设置 JSON 请求体
func WithBody(body any) RequestOption {
	return func(cfg *requestConfig) { cfg.body = body }
}

// WithParam 设置路径参数
func WithParam(key, value string) RequestOption {
	return func(cfg *requestConfig) {
		cfg.params = append(cfg.params, gin.Param{Key: key, Value: value})
	}
}

// WithPayload 模拟鉴权中间件注入的用户身份
func WithPayload(payload *jwt.Claims) RequestOption {
	return func(cfg *requestConfig) { cfg.payload = payload }
}

// DoRequest 直接调用 handler 并解出统一响应体
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, opts ...RequestOption) (resp response.ResponseBody) {
	cfg := requestConfig{method: http.MethodPost}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	url := "/test"
	if cfg.query != "" {
		url += "?" + cfg.query
	}

	var reader *bytes.Reader
	if cfg.body != nil {
		requestBytes, err := json.Marshal(cfg.body)
		require.NoError(t, err)
		reader = bytes.NewReader(requestBytes)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(cfg.method, url, reader)
	c.Request.Header.Set("Content-Type", "application/json")

	c.Params = cfg.params
	if cfg.payload != nil {
		c.Set("payload", cfg.payload)
	}

	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// DecodeData 把响应里的 data 字段转成目标结构
func DecodeData(t *testing.T, resp response.ResponseBody, out any) {
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}
