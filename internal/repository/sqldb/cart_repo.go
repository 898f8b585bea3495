package sqldb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/gomall/internal/datamodels/cart"
)

type cartRepo struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListByUser(ctx context.Context, userID int64) ([]*cart.Cart, error) {
	var list []*cart.Cart
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Upsert 同一商品重复加入时叠加数量
func (r *cartRepo) Upsert(ctx context.Context, c *cart.Cart) error {
	var existing cart.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", c.UserID, c.ProductID).
		First(&existing).Error
	if err == nil {
		existing.Quantity += c.Quantity
		return r.db.WithContext(ctx).Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cartRepo) DeleteItem(ctx context.Context, userID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&cart.Cart{}).Error
}

func (r *cartRepo) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&cart.Cart{}).Error
}
