package mq

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/example/gomall/internal/config"
)

// Init 建立 RabbitMQ 连接。URL 为空表示未启用，返回 nil 连接。
func Init(cfg *config.RabbitMQConfig) (*amqp.Connection, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	return amqp.Dial(cfg.URL)
}
