package main

import (
	"context"
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/gomall/internal/config"
	"github.com/example/gomall/internal/infra/mq"
	"github.com/example/gomall/internal/infra/redis"
	"github.com/example/gomall/internal/logger"
	"github.com/example/gomall/internal/repository/sqldb"
	"github.com/example/gomall/internal/server"
	"github.com/example/gomall/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init()
	defer func() { _ = zap.L().Sync() }()

	db, err := sqldb.Open(&cfg.Database)
	if err != nil {
		zap.L().Fatal("open database", zap.Error(err))
	}

	redisClient, err := redis.Init(&cfg.Redis)
	if err != nil {
		zap.L().Fatal("connect redis", zap.Error(err))
	}
	if redisClient == nil {
		zap.L().Info("redis disabled, token cache off")
	}

	mqConn, err := mq.Init(&cfg.RabbitMQ)
	if err != nil {
		zap.L().Fatal("connect rabbitmq", zap.Error(err))
	}
	if mqConn == nil {
		zap.L().Info("rabbitmq disabled, order events off")
	}

	// 保证管理员账号存在，状态更新等后台操作依赖该角色
	userSvc := service.NewUserService(sqldb.NewUserRepository(db), &cfg.JWT)
	if err := userSvc.EnsureAdmin(context.Background(), cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		zap.L().Fatal("ensure admin user", zap.Error(err))
	}

	app := iris.New()
	server.RegisterRoutes(app, cfg, db, redisClient, mqConn)

	addr := cfg.Server.Addr()
	zap.L().Info("server listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithOptimizations,
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("app run failed", zap.Error(err))
	}
}
