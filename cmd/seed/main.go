package main

import (
	"github.com/freshgo-shop/internal/config"
	"github.com/freshgo-shop/internal/logger"
	"github.com/freshgo-shop/internal/models"

	"github.com/shopspring/decimal"
)

// 额外的演示商品，在默认目录之外填充门店数据
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 基础目录（分类 + 固定商品）
	if err := models.InitDefaultCatalog(); err != nil {
		stdLog.Fatalf("Failed to seed default catalog: %v", err)
	}

	categoryIDs := map[string]uint{}
	var categories []models.Category
	if err := models.DB.Find(&categories).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categories {
		categoryIDs[cat.Slug] = cat.ID
	}

	extras := []models.Product{
		{
			Name:        "Rye Boule",
			CategoryID:  categoryIDs["bread"],
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1100)),
			Image:       "https://images.unsplash.com/photo-1586444248902-2f64eddc13df?auto=format&fit=crop&w=600&q=80",
			Description: "Dense rye boule with caraway seeds.",
			IsActive:    true,
			SortOrder:   7,
		},
		{
			Name:        "Almond Croissant",
			CategoryID:  categoryIDs["pastries"],
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(520)),
			Image:       "https://images.unsplash.com/photo-1549903072-7e6e0bedb7fb?auto=format&fit=crop&w=600&q=80",
			Description: "Twice-baked croissant filled with almond cream.",
			IsActive:    true,
			SortOrder:   8,
		},
		{
			Name:        "Lemon Drizzle Slice",
			CategoryID:  categoryIDs["cakes"],
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(580)),
			Image:       "https://images.unsplash.com/photo-1519869325930-281384150729?auto=format&fit=crop&w=600&q=80",
			Description: "Zesty lemon sponge soaked in citrus syrup.",
			IsActive:    true,
			SortOrder:   9,
		},
		{
			Name:        "Granola Pot",
			CategoryID:  categoryIDs["breakfast"],
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(420)),
			Image:       "https://images.unsplash.com/photo-1517093157656-b9eccef91cb1?auto=format&fit=crop&w=600&q=80",
			Description: "House granola with yogurt and honey.",
			IsActive:    true,
			SortOrder:   10,
		},
	}

	for _, product := range extras {
		var count int64
		models.DB.Model(&models.Product{}).Where("name = ?", product.Name).Count(&count)
		if count > 0 {
			stdLog.Printf("Product already exists: %s", product.Name)
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Name)
	}

	stdLog.Printf("Seed completed")
}
