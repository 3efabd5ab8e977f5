package database

import (
	"fmt"
	"union-activity-system/config"
	"union-activity-system/internal/model"
	"union-activity-system/tools"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.Activity{},
	&model.Registration{},
	&model.Notification{},
	&model.Post{},
	&model.WorkSchedule{},
	&model.Permission{},
	&model.MemberAchievement{},
	&model.UnionFeeStatus{},
	&model.MemberActivity{},
	// 在这里添加其他模型
}

func Init() {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Get().Mysql.Username,
		config.Get().Mysql.Password,
		config.Get().Mysql.Host,
		config.Get().Mysql.Port,
		config.Get().Mysql.DBName,
	)
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
		TranslateError: true,                                       // 唯一键冲突翻译为 gorm.ErrDuplicatedKey
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	tools.PanicOnErr(Migrate(DB))
}

// Migrate 执行自动迁移，测试环境用 sqlite 复用同一份模型列表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(autoMigrateModels...)
}
