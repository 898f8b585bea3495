package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/gomall/internal/auth"
	"github.com/example/gomall/internal/datamodels/cart"
	"github.com/example/gomall/internal/datamodels/order"
)

// OrderService 订单核心操作：结算、历史、详情、状态更新
type OrderService struct {
	orderRepo order.Repository
	cartRepo  cart.Repository
	events    OrderEventPublisher
}

// NewOrderService 创建订单服务，events 为 nil 时不投递事件
func NewOrderService(orderRepo order.Repository, cartRepo cart.Repository, events OrderEventPublisher) *OrderService {
	return &OrderService{orderRepo: orderRepo, cartRepo: cartRepo, events: events}
}

// Checkout 创建订单并清空该用户的购物车。
// 金额校验在任何写入之前完成；订单落库成功后购物车清理是尽力而为，
// 清理失败只记日志，结算仍按成功返回。
func (s *OrderService) Checkout(ctx context.Context, p auth.Principal, total float64) (*order.Order, error) {
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return nil, ErrInvalidTotal
	}

	o := &order.Order{
		UserID:      p.UserID,
		TotalAmount: total,
		Status:      order.StatusPlaced,
	}
	if err := s.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	if err := s.cartRepo.DeleteByUser(ctx, p.UserID); err != nil {
		zap.L().Warn("clear cart after checkout failed",
			zap.Int64("user_id", p.UserID),
			zap.Int64("order_id", o.ID),
			zap.Error(err))
	}

	s.publish(ctx, EventOrderPlaced, o)
	return o, nil
}

// History 查询当前用户的全部订单，最新的在前
func (s *OrderService) History(ctx context.Context, p auth.Principal) ([]*order.Order, error) {
	return s.orderRepo.ListByUser(ctx, p.UserID)
}

// Detail 查询订单详情（含行项目）。非管理员只能查看自己的订单。
func (s *OrderService) Detail(ctx context.Context, p auth.Principal, id int64) (*order.Order, error) {
	o, err := s.orderRepo.GetByIDWithItems(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if o.UserID != p.UserID && !p.IsAdmin() {
		return nil, ErrForbidden
	}
	return o, nil
}

// UpdateStatus 覆盖订单状态并保存。不校验枚举与流转合法性，
// 调用边界（角色中间件）已保证只有管理员能走到这里。
func (s *OrderService) UpdateStatus(ctx context.Context, p auth.Principal, id int64, status string) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	o.Status = status
	if err := s.orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, EventOrderStatusChanged, o)
	return o, nil
}
