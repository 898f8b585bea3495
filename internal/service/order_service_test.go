package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"gorm.io/gorm"

	"github.com/example/gomall/internal/auth"
	"github.com/example/gomall/internal/config"
	"github.com/example/gomall/internal/datamodels/cart"
	"github.com/example/gomall/internal/datamodels/order"
	"github.com/example/gomall/internal/repository/sqldb"
)

// newTestDB 每个测试用例一个独立的内存 sqlite 库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqldb.Open(&config.DatabaseConfig{Dialect: "sqlite", Storage: dsn})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

type captureEvents struct {
	events []*OrderEvent
}

func (c *captureEvents) Publish(ctx context.Context, ev *OrderEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func newOrderService(t *testing.T) (*OrderService, *gorm.DB, *captureEvents) {
	t.Helper()
	db := newTestDB(t)
	events := &captureEvents{}
	svc := NewOrderService(sqldb.NewOrderRepository(db), sqldb.NewCartRepository(db), events)
	return svc, db, events
}

func TestCheckoutRejectsInvalidTotal(t *testing.T) {
	svc, db, events := newOrderService(t)
	ctx := context.Background()
	p := auth.Principal{UserID: 7, Role: auth.RoleUser}

	for _, total := range []float64{0, -5, -0.01, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := svc.Checkout(ctx, p, total); !errors.Is(err, ErrInvalidTotal) {
			t.Fatalf("total %v: expected ErrInvalidTotal, got %v", total, err)
		}
	}

	var count int64
	if err := db.Model(&order.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no orders after rejected checkouts, got %d", count)
	}
	if len(events.events) != 0 {
		t.Fatalf("expected no events, got %d", len(events.events))
	}
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	svc, db, events := newOrderService(t)
	ctx := context.Background()
	p := auth.Principal{UserID: 7, Role: auth.RoleUser}

	// 用户 7 与用户 9 的购物车各有一条记录
	for _, c := range []*cart.Cart{
		{UserID: 7, ProductID: 1, Quantity: 2},
		{UserID: 9, ProductID: 1, Quantity: 1},
	} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed cart: %v", err)
		}
	}

	o, err := svc.Checkout(ctx, p, 49.99)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if o.ID == 0 {
		t.Fatal("expected store-assigned order id")
	}
	if o.UserID != 7 || o.TotalAmount != 49.99 || o.Status != order.StatusPlaced {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.OrderDate.IsZero() {
		t.Fatal("expected store-assigned order date")
	}

	var mine, theirs int64
	db.Model(&cart.Cart{}).Where("user_id = ?", 7).Count(&mine)
	db.Model(&cart.Cart{}).Where("user_id = ?", 9).Count(&theirs)
	if mine != 0 {
		t.Fatalf("expected user 7 cart cleared, %d rows left", mine)
	}
	if theirs != 1 {
		t.Fatalf("expected user 9 cart untouched, got %d rows", theirs)
	}

	if len(events.events) != 1 || events.events[0].Type != EventOrderPlaced {
		t.Fatalf("expected one %s event, got %+v", EventOrderPlaced, events.events)
	}
	if events.events[0].OrderID != o.ID || events.events[0].EventID == "" {
		t.Fatalf("unexpected event payload: %+v", events.events[0])
	}
}

func TestHistoryReturnsOnlyOwnOrders(t *testing.T) {
	svc, _, _ := newOrderService(t)
	ctx := context.Background()
	p7 := auth.Principal{UserID: 7, Role: auth.RoleUser}
	p9 := auth.Principal{UserID: 9, Role: auth.RoleUser}

	first, err := svc.Checkout(ctx, p7, 10)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	second, err := svc.Checkout(ctx, p7, 20)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := svc.Checkout(ctx, p9, 30); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	list, err := svc.History(ctx, p7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(list))
	}
	for _, o := range list {
		if o.UserID != 7 {
			t.Fatalf("history leaked order of user %d", o.UserID)
		}
	}
	// 最新的在前
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %d then %d", list[0].ID, list[1].ID)
	}
}

func TestDetailOwnershipAndItems(t *testing.T) {
	svc, db, _ := newOrderService(t)
	ctx := context.Background()
	owner := auth.Principal{UserID: 9, Role: auth.RoleUser}
	stranger := auth.Principal{UserID: 7, Role: auth.RoleUser}
	admin := auth.Principal{UserID: 1, Role: auth.RoleAdmin}

	o, err := svc.Checkout(ctx, owner, 15.5)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if err := db.Create(&order.OrderItem{OrderID: o.ID, ProductID: 3, Quantity: 2, Price: 7.75}).Error; err != nil {
		t.Fatalf("seed order item: %v", err)
	}

	if _, err := svc.Detail(ctx, stranger, o.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}

	got, err := svc.Detail(ctx, owner, o.ID)
	if err != nil {
		t.Fatalf("detail as owner: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != 3 {
		t.Fatalf("expected eager-loaded items, got %+v", got.Items)
	}

	if _, err := svc.Detail(ctx, admin, o.ID); err != nil {
		t.Fatalf("detail as admin: %v", err)
	}

	if _, err := svc.Detail(ctx, admin, 99999); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestUpdateStatusPersistsVerbatim(t *testing.T) {
	svc, db, events := newOrderService(t)
	ctx := context.Background()
	owner := auth.Principal{UserID: 7, Role: auth.RoleUser}
	admin := auth.Principal{UserID: 1, Role: auth.RoleAdmin}

	o, err := svc.Checkout(ctx, owner, 42)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, admin, o.ID, order.StatusShipped)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != order.StatusShipped {
		t.Fatalf("expected SHIPPED, got %q", updated.Status)
	}

	// 重新读取确认已落库
	repo := sqldb.NewOrderRepository(db)
	reread, err := repo.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("reread: %v", err)
	}
	if reread.Status != order.StatusShipped {
		t.Fatalf("expected persisted SHIPPED, got %q", reread.Status)
	}
	if reread.UserID != 7 || reread.TotalAmount != 42 {
		t.Fatalf("status update must not touch other fields: %+v", reread)
	}

	// 不做枚举校验，任意字符串原样保存
	if _, err := svc.UpdateStatus(ctx, admin, o.ID, "ON_HOLD"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	reread, _ = repo.GetByID(ctx, o.ID)
	if reread.Status != "ON_HOLD" {
		t.Fatalf("expected verbatim status, got %q", reread.Status)
	}

	if _, err := svc.UpdateStatus(ctx, admin, 99999, order.StatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	var statusEvents int
	for _, ev := range events.events {
		if ev.Type == EventOrderStatusChanged {
			statusEvents++
		}
	}
	if statusEvents != 2 {
		t.Fatalf("expected 2 status events, got %d", statusEvents)
	}
}
