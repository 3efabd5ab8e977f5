package chatbot

import (
	"log/slog"
	"union-activity-system/internal/global/logger"
)

var log *slog.Logger

type ModuleChatbot struct{}

func (cb *ModuleChatbot) GetName() string {
	return "Chatbot"
}

func (cb *ModuleChatbot) Init() {
	log = logger.New("Chatbot")
}
