package service

import (
	"context"
	"testing"

	"github.com/freshgo-shop/internal/models"
)

type stubCategoryRepo struct {
	categories []models.Category
}

func (r *stubCategoryRepo) List() ([]models.Category, error) {
	return r.categories, nil
}

func (r *stubCategoryRepo) GetBySlug(slug string) (*models.Category, error) {
	for i := range r.categories {
		if r.categories[i].Slug == slug {
			return &r.categories[i], nil
		}
	}
	return nil, nil
}

func setupCatalogServiceTest(t *testing.T) *CatalogService {
	t.Helper()
	bread := models.Category{ID: 1, Slug: "bread", Name: "Bread"}
	productRepo := &stubProductRepo{products: map[uint]*models.Product{
		1: bakeryProduct(1, "Sourdough Loaf", 1200),
		2: bakeryProduct(2, "Day-old Loaf", 900),
	}}
	productRepo.products[1].Category = bread
	productRepo.products[2].IsActive = false
	categoryRepo := &stubCategoryRepo{categories: []models.Category{bread}}
	return NewCatalogService(productRepo, categoryRepo)
}

func TestCatalogGetProduct(t *testing.T) {
	svc := setupCatalogServiceTest(t)
	ctx := context.Background()

	product, err := svc.GetProduct(ctx, 1)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product.Name != "Sourdough Loaf" {
		t.Fatalf("name want Sourdough Loaf got %s", product.Name)
	}
	if product.Category != "bread" {
		t.Fatalf("category slug want bread got %s", product.Category)
	}
	if got := product.Price.String(); got != "1200.00" {
		t.Fatalf("price want 1200 got %s", got)
	}
}

func TestCatalogGetProductUnavailable(t *testing.T) {
	svc := setupCatalogServiceTest(t)
	ctx := context.Background()

	if _, err := svc.GetProduct(ctx, 2); err != ErrProductNotAvailable {
		t.Fatalf("inactive product want ErrProductNotAvailable got %v", err)
	}
	if _, err := svc.GetProduct(ctx, 99); err != ErrProductNotAvailable {
		t.Fatalf("unknown product want ErrProductNotAvailable got %v", err)
	}
}

func TestCatalogListCategories(t *testing.T) {
	svc := setupCatalogServiceTest(t)

	categories, err := svc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(categories) != 1 || categories[0].Slug != "bread" {
		t.Fatalf("categories want [bread] got %+v", categories)
	}
}
