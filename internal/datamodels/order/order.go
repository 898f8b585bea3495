package order

import (
	"context"
	"time"
)

// 订单状态。文档约定取值为以下四种，状态更新接口不做流转校验，
// 调用方给什么就存什么。
const (
	StatusPlaced    = "PLACED"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCancelled = "CANCELLED"
)

// Order 订单模型。user_id 创建后不可变，只有 status 允许更新。
type Order struct {
	ID          int64       `gorm:"column:order_id;primaryKey" json:"order_id"`
	UserID      int64       `gorm:"index;not null" json:"user_id"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	Status      string      `gorm:"size:16;index;not null" json:"status"`
	OrderDate   time.Time   `gorm:"autoCreateTime" json:"order_date"`
	Items       []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// OrderItem 订单行项目，归属于某一订单
type OrderItem struct {
	ID        int64   `gorm:"primaryKey" json:"id"`
	OrderID   int64   `gorm:"index;not null" json:"order_id"`
	ProductID int64   `gorm:"index" json:"product_id"`
	Quantity  int64   `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// Repository 订单仓储接口
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	GetByIDWithItems(ctx context.Context, id int64) (*Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
	Update(ctx context.Context, o *Order) error
}
