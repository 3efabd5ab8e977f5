package upload

import (
	"union-activity-system/internal/global/imagestore"
	"union-activity-system/internal/global/response"

	"github.com/gin-gonic/gin"
)

// PresignReq 预签名上传请求
type PresignReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	ExpiresIn   int64  `json:"expires_in"` // 秒，默认 15 分钟
}

// Presign 生成 S3 预签名上传地址，未配置对象存储时返回不可用
func Presign(c *gin.Context) {
	var req PresignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if !store.S3Enabled() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("未配置对象存储，请使用本地上传"))
		return
	}

	result, err := store.GeneratePresignedUploadURL(c.Request.Context(), imagestore.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		ExpiresIn:   req.ExpiresIn,
	})
	if err != nil {
		log.Error("生成预签名上传地址失败", "error", err, "filename", req.Filename)
		response.Fail(c, response.ErrUpstream.WithOrigin(err))
		return
	}
	response.Success(c, result)
}

// LocalUpload 本地图片上传，S3 未配置时的退路
func LocalUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少上传文件"))
		return
	}

	url, err := store.SaveImage(fileHeader)
	if err != nil {
		log.Error("保存上传文件失败", "error", err, "filename", fileHeader.Filename)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}
	response.Success(c, gin.H{"url": url})
}
