package server

import (
	"errors"
	"time"

	"github.com/kataras/iris/v12"
	radix "github.com/mediocregopher/radix/v3"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"

	"github.com/example/gomall/internal/auth"
	"github.com/example/gomall/internal/config"
	"github.com/example/gomall/internal/datamodels/cart"
	"github.com/example/gomall/internal/datamodels/order"
	"github.com/example/gomall/internal/datamodels/product"
	"github.com/example/gomall/internal/middleware"
	"github.com/example/gomall/internal/repository/sqldb"
	"github.com/example/gomall/internal/service"
)

// RegisterRoutes 注册所有 HTTP 路由。
// db 必须已就绪；redisClient / mqConn 为 nil 时对应能力（令牌缓存、事件投递）关闭。
func RegisterRoutes(app *iris.Application, cfg *config.Config, db *gorm.DB, redisClient radix.Client, mqConn *amqp.Connection) {
	// 仓储与服务
	userRepo := sqldb.NewUserRepository(db)
	productRepo := sqldb.NewProductRepository(db)
	orderRepo := sqldb.NewOrderRepository(db)
	cartRepo := sqldb.NewCartRepository(db)

	var events service.OrderEventPublisher
	if mqConn != nil {
		events = service.NewMQEventPublisher(mqConn)
	}

	userSvc := service.NewUserService(userRepo, &cfg.JWT)
	productSvc := service.NewProductService(productRepo)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, events)

	var tokenCache *auth.TokenCache
	if redisClient != nil {
		tokenCache = auth.NewTokenCache(redisClient, time.Duration(cfg.Auth.TokenCacheTTLSeconds)*time.Second)
	}

	app.UseRouter(middleware.CORS(cfg.CORS.Origin))

	api := app.Party("/api")

	// 健康检查
	api.Get("/health", func(ctx iris.Context) {
		_ = ctx.JSON(iris.Map{"status": "ok"})
	})

	// 用户注册/登录
	api.Post("/register", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid request body"})
			return
		}
		u, err := userSvc.Register(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUsernameTaken):
				ctx.StopWithJSON(iris.StatusConflict, iris.Map{"message": "Username already exists"})
			case errors.Is(err, service.ErrInvalidCredentials):
				ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Username and password are required"})
			default:
				ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error registering user", "error": err.Error()})
			}
			return
		}
		ctx.StatusCode(iris.StatusCreated)
		_ = ctx.JSON(iris.Map{"message": "User registered successfully", "user_id": u.ID})
	})

	api.Post("/login", func(ctx iris.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid request body"})
			return
		}
		token, err := userSvc.Login(ctx.Request().Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				ctx.StopWithJSON(iris.StatusUnauthorized, iris.Map{"message": "Invalid username or password"})
				return
			}
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error logging in", "error": err.Error()})
			return
		}
		_ = ctx.JSON(iris.Map{"token": token})
	})

	// 需要登录的接口
	authAPI := api.Party("/", middleware.JWTAuth(&cfg.JWT, tokenCache))

	// ---------- 商品 ----------

	authAPI.Get("/products", func(ctx iris.Context) {
		category := ctx.URLParam("category")
		list, err := productSvc.List(ctx.Request().Context(), category)
		if err != nil {
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error fetching products", "error": err.Error()})
			return
		}
		if list == nil {
			list = []*product.Product{}
		}
		_ = ctx.JSON(list)
	})

	authAPI.Get("/products/{id:int64}", func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"message": "Product not found"})
				return
			}
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error fetching product", "error": err.Error()})
			return
		}
		_ = ctx.JSON(p)
	})

	authAPI.Post("/products", middleware.RequireRoles(auth.RoleAdmin), func(ctx iris.Context) {
		var p product.Product
		if err := ctx.ReadJSON(&p); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid request body"})
			return
		}
		if err := productSvc.Create(ctx.Request().Context(), &p); err != nil {
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error creating product", "error": err.Error()})
			return
		}
		ctx.StatusCode(iris.StatusCreated)
		_ = ctx.JSON(&p)
	})

	authAPI.Put("/products/{id:int64}", middleware.RequireRoles(auth.RoleAdmin), func(ctx iris.Context) {
		id, _ := ctx.Params().GetInt64("id")
		p, err := productSvc.GetByID(ctx.Request().Context(), id)
		if err != nil {
			if errors.Is(err, service.ErrProductNotFound) {
				ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"message": "Product not found"})
				return
			}
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error fetching product", "error": err.Error()})
			return
		}
		var req product.Product
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid request body"})
			return
		}
		req.ID = p.ID
		if err := productSvc.Update(ctx.Request().Context(), &req); err != nil {
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error updating product", "error": err.Error()})
			return
		}
		_ = ctx.JSON(&req)
	})

	// ---------- 购物车 ----------

	authAPI.Get("/cart", func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		list, err := cartSvc.List(ctx.Request().Context(), p.UserID)
		if err != nil {
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error fetching cart", "error": err.Error()})
			return
		}
		if list == nil {
			list = []*cart.Cart{}
		}
		_ = ctx.JSON(list)
	})

	authAPI.Post("/cart", func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		var req struct {
			ProductID int64 `json:"product_id"`
			Quantity  int64 `json:"quantity"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid request body"})
			return
		}
		if _, err := cartSvc.Add(ctx.Request().Context(), p.UserID, req.ProductID, req.Quantity); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidQuantity):
				ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Quantity must be positive"})
			case errors.Is(err, service.ErrProductNotFound):
				ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"message": "Product not found"})
			default:
				ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error adding to cart", "error": err.Error()})
			}
			return
		}
		ctx.StatusCode(iris.StatusCreated)
		_ = ctx.JSON(iris.Map{"message": "Added to cart"})
	})

	authAPI.Delete("/cart/{product_id:int64}", func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		productID, _ := ctx.Params().GetInt64("product_id")
		if err := cartSvc.Remove(ctx.Request().Context(), p.UserID, productID); err != nil {
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error removing from cart", "error": err.Error()})
			return
		}
		_ = ctx.JSON(iris.Map{"message": "Removed from cart"})
	})

	// ---------- 订单 ----------

	// 结算：创建订单并清空购物车
	authAPI.Post("/orders/checkout", middleware.CheckoutRateLimit(), func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		var req struct {
			Total *float64 `json:"total"`
		}
		// 缺失、非数字、非正数统一按无效金额拒绝，任何写入都发生在校验之后
		if err := ctx.ReadJSON(&req); err != nil || req.Total == nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid total amount"})
			return
		}
		o, err := orderSvc.Checkout(ctx.Request().Context(), p, *req.Total)
		if err != nil {
			if errors.Is(err, service.ErrInvalidTotal) {
				ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid total amount"})
				return
			}
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error processing checkout", "error": err.Error()})
			return
		}
		ctx.StatusCode(iris.StatusCreated)
		_ = ctx.JSON(iris.Map{
			"message":      "Order placed successfully",
			"order_id":     o.ID,
			"total_amount": o.TotalAmount,
			"status":       o.Status,
			"order_date":   o.OrderDate,
		})
	})

	// 订单历史
	authAPI.Get("/orders", func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		list, err := orderSvc.History(ctx.Request().Context(), p)
		if err != nil {
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error fetching order history", "error": err.Error()})
			return
		}
		if list == nil {
			list = []*order.Order{}
		}
		_ = ctx.JSON(list)
	})

	// 订单详情（含行项目）
	authAPI.Get("/orders/{id:int64}", func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		id, _ := ctx.Params().GetInt64("id")
		o, err := orderSvc.Detail(ctx.Request().Context(), p, id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrOrderNotFound):
				ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"message": "Order not found"})
			case errors.Is(err, service.ErrForbidden):
				ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"message": "Forbidden"})
			default:
				ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error fetching order details", "error": err.Error()})
			}
			return
		}
		_ = ctx.JSON(o)
	})

	// 订单状态更新（仅管理员）
	authAPI.Put("/orders/{id:int64}/status", middleware.RequireRoles(auth.RoleAdmin), func(ctx iris.Context) {
		p := middleware.PrincipalFrom(ctx)
		id, _ := ctx.Params().GetInt64("id")
		var req struct {
			Status string `json:"status"`
		}
		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"message": "Invalid request body"})
			return
		}
		o, err := orderSvc.UpdateStatus(ctx.Request().Context(), p, id, req.Status)
		if err != nil {
			if errors.Is(err, service.ErrOrderNotFound) {
				ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"message": "Order not found"})
				return
			}
			ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"message": "Error updating order status", "error": err.Error()})
			return
		}
		_ = ctx.JSON(o)
	})
}
