package models

import (
	"github.com/freshgo-shop/internal/logger"

	"github.com/shopspring/decimal"
)

// InitDefaultCatalog 初始化默认商品目录
// 幂等：按 slug / 商品名判重，已存在则跳过。
func InitDefaultCatalog() error {
	categories := []Category{
		{Slug: "bread", Name: "Bread", SortOrder: 1},
		{Slug: "pastries", Name: "Pastries", SortOrder: 2},
		{Slug: "cakes", Name: "Cakes", SortOrder: 3},
		{Slug: "breakfast", Name: "Breakfast", SortOrder: 4},
	}
	for i := range categories {
		var existing Category
		if err := DB.Where("slug = ?", categories[i].Slug).First(&existing).Error; err == nil {
			categories[i].ID = existing.ID
			continue
		}
		if err := DB.Create(&categories[i]).Error; err != nil {
			return err
		}
		logger.Infow("catalog_category_created", "slug", categories[i].Slug)
	}

	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []Product{
		{
			Name:        "Sourdough Loaf",
			CategoryID:  categoryIDs["bread"],
			PriceAmount: NewMoneyFromDecimal(decimal.NewFromInt(1200)),
			Image:       "https://images.unsplash.com/photo-1542838132-92c53300491e?auto=format&fit=crop&w=600&q=80",
			Description: "Slow-fermented sourdough with a crisp crust and airy crumb.",
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Name:        "Butter Croissant",
			CategoryID:  categoryIDs["pastries"],
			PriceAmount: NewMoneyFromDecimal(decimal.NewFromInt(450)),
			Image:       "https://images.unsplash.com/photo-1555507036-ab1f4038808a?auto=format&fit=crop&w=600&q=80",
			Description: "Classic flaky croissant made with French butter.",
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Name:        "Chocolate Cake Slice",
			CategoryID:  categoryIDs["cakes"],
			PriceAmount: NewMoneyFromDecimal(decimal.NewFromInt(650)),
			Image:       "https://images.unsplash.com/photo-1578985545062-69928b1d9587?auto=format&fit=crop&w=600&q=80",
			Description: "Rich dark chocolate sponge layered with ganache.",
			IsActive:    true,
			SortOrder:   3,
		},
		{
			Name:        "Cinnamon Roll",
			CategoryID:  categoryIDs["pastries"],
			PriceAmount: NewMoneyFromDecimal(decimal.NewFromInt(380)),
			Image:       "https://images.unsplash.com/photo-1509365465985-25d11c17e812?auto=format&fit=crop&w=600&q=80",
			Description: "Soft roll swirled with cinnamon sugar and topped with glaze.",
			IsActive:    true,
			SortOrder:   4,
		},
		{
			Name:        "Seeded Multigrain",
			CategoryID:  categoryIDs["bread"],
			PriceAmount: NewMoneyFromDecimal(decimal.NewFromInt(1350)),
			Image:       "https://images.unsplash.com/photo-1533417457911-0cb37e52f8f9?auto=format&fit=crop&w=600&q=80",
			Description: "Hearty multigrain loaf packed with seeds and fiber.",
			IsActive:    true,
			SortOrder:   5,
		},
		{
			Name:        "Berry Muffin",
			CategoryID:  categoryIDs["breakfast"],
			PriceAmount: NewMoneyFromDecimal(decimal.NewFromInt(320)),
			Image:       "https://images.unsplash.com/photo-1558303420-f814d1b534b8?auto=format&fit=crop&w=600&q=80",
			Description: "Moist muffin bursting with seasonal berries.",
			IsActive:    true,
			SortOrder:   6,
		},
	}

	for _, product := range products {
		var count int64
		DB.Model(&Product{}).Where("name = ?", product.Name).Count(&count)
		if count > 0 {
			continue
		}
		if err := DB.Create(&product).Error; err != nil {
			return err
		}
		logger.Infow("catalog_product_created", "name", product.Name)
	}

	return nil
}
