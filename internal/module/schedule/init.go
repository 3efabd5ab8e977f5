package schedule

import (
	"log/slog"
	"union-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleSchedule struct{}

func (s *ModuleSchedule) GetName() string {
	return "Schedule"
}

func (s *ModuleSchedule) Init() {
	log = logger.New("Schedule")
}
