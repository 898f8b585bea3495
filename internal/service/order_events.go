package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/gomall/internal/datamodels/order"
)

const orderEventQueue = "order.events"

// 订单事件类型
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent 投递到 MQ 的订单事件
type OrderEvent struct {
	EventID     string    `json:"event_id"`
	Type        string    `json:"type"`
	OrderID     int64     `json:"order_id"`
	UserID      int64     `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderEventPublisher 订单事件发布接口
type OrderEventPublisher interface {
	Publish(ctx context.Context, ev *OrderEvent) error
}

type mqEventPublisher struct {
	conn *amqp.Connection
}

// NewMQEventPublisher 基于 RabbitMQ 的事件发布器
func NewMQEventPublisher(conn *amqp.Connection) OrderEventPublisher {
	return &mqEventPublisher{conn: conn}
}

func (p *mqEventPublisher) Publish(ctx context.Context, ev *OrderEvent) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(orderEventQueue, true, false, false, false, nil); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return ch.PublishWithContext(
		ctx,
		"",
		orderEventQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// publish 尽力而为投递事件，失败只记日志，不影响主流程
func (s *OrderService) publish(ctx context.Context, typ string, o *order.Order) {
	if s.events == nil {
		return
	}
	ev := &OrderEvent{
		EventID:     uuid.NewString(),
		Type:        typ,
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		OccurredAt:  time.Now(),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		zap.L().Warn("publish order event failed",
			zap.String("type", typ),
			zap.Int64("order_id", o.ID),
			zap.Error(err))
	}
}
