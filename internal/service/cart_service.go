package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/example/gomall/internal/datamodels/cart"
	"github.com/example/gomall/internal/datamodels/product"
)

// CartService 购物车暂存区。批量清空只发生在结算时，由订单服务触发。
type CartService struct {
	cartRepo    cart.Repository
	productRepo product.Repository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo cart.Repository, productRepo product.Repository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// List 查询当前用户的购物车
func (s *CartService) List(ctx context.Context, userID int64) ([]*cart.Cart, error) {
	return s.cartRepo.ListByUser(ctx, userID)
}

// Add 加入购物车，同一商品叠加数量
func (s *CartService) Add(ctx context.Context, userID, productID, quantity int64) (*cart.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	c := &cart.Cart{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Remove 从购物车移除某个商品
func (s *CartService) Remove(ctx context.Context, userID, productID int64) error {
	return s.cartRepo.DeleteItem(ctx, userID, productID)
}
