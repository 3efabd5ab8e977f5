package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读取 config.yaml，再用环境变量覆盖
func Init() {
	once.Do(func() {
		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		// 默认值
		v.SetDefault("Host", "0.0.0.0")
		v.SetDefault("Port", "8080")
		v.SetDefault("Prefix", "api")
		v.SetDefault("Mode", string(ModeDebug))
		v.SetDefault("JWT.AccessExpire", 7200)
		v.SetDefault("Log.Level", "info")
		v.SetDefault("Log.MaxSize", 100)
		v.SetDefault("Log.MaxBackups", 10)
		v.SetDefault("Log.MaxAge", 30)

		if err := v.ReadInConfig(); err != nil {
			// 配置文件不存在时仅依赖环境变量和默认值
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				panic(fmt.Errorf("读取配置文件失败: %w", err))
			}
		}

		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			panic(fmt.Errorf("解析配置失败: %w", err))
		}
		if err := envconfig.Process("UNION", cfg); err != nil {
			panic(fmt.Errorf("读取环境变量配置失败: %w", err))
		}
		instance = cfg
	})
}

// Get 获取全局配置，必须先调用 Init
func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}
