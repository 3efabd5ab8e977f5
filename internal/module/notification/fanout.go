package notification

import (
	"union-activity-system/internal/model"

	"gorm.io/gorm"
)

// FanOut 给一组用户各创建一条通知，批量插入
// 与主写操作共用同一个事务，保证通知与业务变更一致落库
func FanOut(tx *gorm.DB, userIDs []uint, content string) error {
	if len(userIDs) == 0 {
		return nil
	}
	notifications := make([]model.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		notifications = append(notifications, model.Notification{
			UserID:  id,
			Content: content,
		})
	}
	return tx.Create(&notifications).Error
}

// NotifyPrivileged 通知所有管理员和团干部
func NotifyPrivileged(tx *gorm.DB, content string) error {
	var ids []uint
	if err := tx.Model(&model.User{}).
		Where("role IN ?", []model.Role{model.RoleAdmin, model.RoleOfficer}).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	return FanOut(tx, ids, content)
}

// BroadcastActive 通知所有启用状态的用户，用于新活动广播
func BroadcastActive(tx *gorm.DB, content string) error {
	var ids []uint
	if err := tx.Model(&model.User{}).
		Where("is_active = ?", true).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	return FanOut(tx, ids, content)
}
