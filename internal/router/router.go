package router

import (
	"fmt"
	"strings"

	"github.com/freshgo-shop/internal/cache"
	"github.com/freshgo-shop/internal/config"
	publichandlers "github.com/freshgo-shop/internal/http/handlers/public"
	"github.com/freshgo-shop/internal/logger"
	"github.com/freshgo-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fg"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（商品图片）
	r.Static("/images", "./images")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开目录接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/captcha/image", publicHandler.GetCaptchaImage)
			public.GET("/captcha/scenes", publicHandler.GetCaptchaScenes)
		}

		// 用户认证接口（演示桩）
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.UserLogin)
		}

		// 购物车与结账接口（匿名会话）
		cart := apiV1.Group("")
		cart.Use(CartSessionMiddleware(cfg.Cart.SessionTTLDays))
		{
			cart.GET("/cart", publicHandler.GetCart)
			cart.POST("/cart/items", publicHandler.AddCartItem)
			cart.PATCH("/cart/items/:product_id", publicHandler.ChangeCartItemQuantity)
			cart.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			cart.DELETE("/cart", publicHandler.ClearCart)
			cart.GET("/checkout", publicHandler.GetCheckoutState)
			cart.POST("/checkout/submit", publicHandler.SubmitCheckout)
			cart.POST("/checkout/reset", publicHandler.ResetCheckout)
		}
	}

	return r
}
