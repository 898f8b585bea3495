package cart

import (
	"context"
	"time"
)

// Cart 购物车条目，按 user_id 聚合。结算时整体清空，不与订单金额对账。
type Cart struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	ProductID int64     `gorm:"index;not null" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository 购物车仓储接口
type Repository interface {
	ListByUser(ctx context.Context, userID int64) ([]*Cart, error)
	Upsert(ctx context.Context, c *Cart) error
	DeleteItem(ctx context.Context, userID, productID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}
