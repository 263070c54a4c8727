package provider

import (
	"time"

	"github.com/freshgo-shop/internal/cache"
	"github.com/freshgo-shop/internal/config"
	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/logger"
	"github.com/freshgo-shop/internal/models"
	"github.com/freshgo-shop/internal/queue"
	"github.com/freshgo-shop/internal/repository"
	"github.com/freshgo-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	CartStore    repository.CartStore

	// Services
	CatalogService  *service.CatalogService
	PricingService  *service.PricingService
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	AuthService     *service.AuthService
	CaptchaService  *service.CaptchaService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.CartStore = c.buildCartStore()
}

// buildCartStore 按配置选择购物车存储后端，redis 不可用时回退数据库
func (c *Container) buildCartStore() repository.CartStore {
	if c.Config.Cart.Store == constants.CartStoreDriverRedis {
		if cache.Enabled() {
			ttl := time.Duration(c.Config.Cart.SessionTTLDays) * 24 * time.Hour
			return repository.NewRedisCartStore(cache.Client(), cache.Prefix(), ttl)
		}
		logger.Warnw("provider_cart_store_fallback",
			"configured", constants.CartStoreDriverRedis,
			"fallback", constants.CartStoreDriverDB,
		)
	}
	return repository.NewGormCartStore(models.DB)
}

func (c *Container) initServices() {
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo)
	c.PricingService = service.NewPricingService(c.Config.Cart)
	c.CartService = service.NewCartService(c.CartStore, c.ProductRepo, c.PricingService)
	c.CheckoutService = service.NewCheckoutService(c.CartStore, c.CartService, c.QueueClient)
	c.AuthService = service.NewAuthService(c.Config.UserJWT, c.Config.Auth)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
}
