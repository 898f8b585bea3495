package sqldb

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/example/gomall/internal/config"
	"github.com/example/gomall/internal/datamodels/cart"
	"github.com/example/gomall/internal/datamodels/order"
	"github.com/example/gomall/internal/datamodels/product"
	"github.com/example/gomall/internal/datamodels/user"
)

// Open 按配置方言建立数据库连接并自动迁移表结构。
// 返回的 *gorm.DB 由调用方注入到各仓储，不持有包级单例。
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "sqlite", "":
		storage := cfg.Storage
		if storage == "" {
			storage = "database.sqlite"
		}
		dialector = sqlite.Open(storage)
	default:
		return nil, fmt.Errorf("unsupported db dialect: %q", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Dialect, err)
	}

	if err := db.AutoMigrate(
		&user.User{},
		&product.Product{},
		&order.Order{},
		&order.OrderItem{},
		&cart.Cart{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
