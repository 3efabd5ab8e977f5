package memberbook

import (
	"log/slog"
	"union-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleMemberBook struct{}

func (m *ModuleMemberBook) GetName() string {
	return "MemberBook"
}

func (m *ModuleMemberBook) Init() {
	log = logger.New("MemberBook")
}
