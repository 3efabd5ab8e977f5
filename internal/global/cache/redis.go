package cache

import (
	"context"
	"time"
	"union-activity-system/config"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

// Init 连接 Redis，用于仪表盘聚合结果的短期缓存
func Init() {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return // 未配置则不启用缓存
	}
	Client = redis.NewClient(&redis.Options{
		Addr:         cfg.Host + ":" + cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
}

// Healthy 检查 Redis 连通性
func Healthy(ctx context.Context) bool {
	if Client == nil {
		return false
	}
	return Client.Ping(ctx).Err() == nil
}

// GetJSON 读取缓存的 JSON 字符串，未启用或未命中返回空串
func GetJSON(ctx context.Context, key string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(ctx, key).Result()
	if err != nil {
		return ""
	}
	return val
}

// SetJSON 写入缓存，失败时静默忽略，缓存只是加速手段
func SetJSON(ctx context.Context, key, val string, ttl time.Duration) {
	if Client == nil {
		return
	}
	Client.Set(ctx, key, val, ttl)
}
