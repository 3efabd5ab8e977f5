package server

import (
	"fmt"
	"log/slog"
	"time"
	"union-activity-system/config"
	"union-activity-system/internal/global/cache"
	"union-activity-system/internal/global/database"
	"union-activity-system/internal/global/httpclient"
	"union-activity-system/internal/global/logger"
	"union-activity-system/internal/global/middleware"
	"union-activity-system/internal/global/sentry"
	"union-activity-system/internal/module"
	"union-activity-system/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Warn("Sentry 初始化失败", "error", err)
	}

	database.Init()
	cache.Init()
	httpclient.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())
	r.Use(sentry.Middleware())

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}

	defer sentry.Flush(2 * time.Second)
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
