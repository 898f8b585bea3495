package redis

import (
	radix "github.com/mediocregopher/radix/v3"

	"github.com/example/gomall/internal/config"
)

// Init 建立 Redis 连接池。Addr 为空表示未启用，返回 nil 客户端。
func Init(cfg *config.RedisConfig) (radix.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	return radix.NewPool("tcp", cfg.Addr, 10)
}
