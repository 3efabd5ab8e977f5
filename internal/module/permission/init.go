package permission

import (
	"log/slog"
	"union-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModulePermission struct{}

func (p *ModulePermission) GetName() string {
	return "Permission"
}

func (p *ModulePermission) Init() {
	log = logger.New("Permission")
}
