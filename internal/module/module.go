package module

import (
	"union-activity-system/internal/module/activity"
	"union-activity-system/internal/module/chatbot"
	"union-activity-system/internal/module/dashboard"
	"union-activity-system/internal/module/memberbook"
	"union-activity-system/internal/module/notification"
	"union-activity-system/internal/module/permission"
	"union-activity-system/internal/module/ping"
	"union-activity-system/internal/module/post"
	"union-activity-system/internal/module/registration"
	"union-activity-system/internal/module/report"
	"union-activity-system/internal/module/schedule"
	"union-activity-system/internal/module/upload"
	"union-activity-system/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&activity.ModuleActivity{},
		&registration.ModuleRegistration{},
		&notification.ModuleNotification{},
		&post.ModulePost{},
		&schedule.ModuleSchedule{},
		&permission.ModulePermission{},
		&memberbook.ModuleMemberBook{},
		&dashboard.ModuleDashboard{},
		&report.ModuleReport{},
		&upload.ModuleUpload{},
		&chatbot.ModuleChatbot{},
	})
}
