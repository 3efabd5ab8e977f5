package memberbook

import (
	"time"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/jwt"
	"union-activity-system/internal/global/response"
	"union-activity-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FeeReq 团费记录请求
type FeeReq struct {
	UserID  uint    `json:"user_id" binding:"required"`
	Year    int     `json:"year" binding:"required"`
	Quarter int     `json:"quarter" binding:"required,min=1,max=4"`
	Paid    bool    `json:"paid"`
	Amount  float64 `json:"amount"`
}

// CreateFee 录入团费记录，(user, year, quarter) 唯一
func CreateFee(c *gin.Context) {
	var req FeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	fee := model.UnionFeeStatus{
		UserID:  req.UserID,
		Year:    req.Year,
		Quarter: req.Quarter,
		Paid:    req.Paid,
		Amount:  req.Amount,
	}
	if req.Paid {
		now := time.Now()
		fee.DatePaid = &now
	}
	if err := database.DB.Create(&fee).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			response.Fail(c, response.ErrAlreadyExists.WithTips("该季度的团费记录已存在"))
			return
		}
		log.Error("录入团费记录失败", "error", err, "user_id", req.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Created(c, fee)
}

// UpdateFeeReq 团费记录更新请求
type UpdateFeeReq struct {
	Paid   *bool    `json:"paid"`
	Amount *float64 `json:"amount"`
}

// UpdateFee 更新缴费状态，标记已缴时盖时间戳
func UpdateFee(c *gin.Context) {
	var fee model.UnionFeeStatus
	err := database.DB.First(&fee, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("团费记录不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	var req UpdateFeeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if req.Paid != nil {
		fee.Paid = *req.Paid
		if *req.Paid {
			now := time.Now()
			fee.DatePaid = &now
		} else {
			fee.DatePaid = nil
		}
	}
	if req.Amount != nil {
		fee.Amount = *req.Amount
	}

	if err := database.DB.Save(&fee).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, fee)
}

// ListFees 团费记录，按年份分组
func ListFees(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}
	targetID, ok := resolveTarget(c, payload)
	if !ok {
		return
	}

	var fees []model.UnionFeeStatus
	if err := database.DB.Where("user_id = ?", targetID).Find(&fees).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, feesByYear(fees))
}

// DeleteFee 删除团费记录
func DeleteFee(c *gin.Context) {
	var fee model.UnionFeeStatus
	err := database.DB.First(&fee, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("团费记录不存在"))
			return
		}
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if err := database.DB.Delete(&fee).Error; err != nil {
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c)
}
