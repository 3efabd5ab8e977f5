package upload

import (
	"log/slog"
	"union-activity-system/internal/global/imagestore"
	"union-activity-system/internal/global/logger"
)

var (
	log   *slog.Logger
	store *imagestore.ImageStore
)

type ModuleUpload struct{}

func (u *ModuleUpload) GetName() string {
	return "Upload"
}

func (u *ModuleUpload) Init() {
	log = logger.New("Upload")
	store = imagestore.New("./uploads", "/uploads")
}
