package service

import (
	"context"
	"strings"

	"github.com/freshgo-shop/internal/models"
	"github.com/freshgo-shop/internal/repository"
)

// ProductView 商品视图
type ProductView struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Image       string       `json:"img"`
	Category    string       `json:"category"`
	CategoryID  uint         `json:"category_id"`
}

// CategoryView 分类视图
type CategoryView struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// CatalogQuery 商品列表查询条件
type CatalogQuery struct {
	Category string
	Search   string
}

// CatalogService 商品目录服务
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// ListProducts 查询在售商品，支持分类与关键字过滤
func (s *CatalogService) ListProducts(ctx context.Context, query CatalogQuery) ([]ProductView, error) {
	products, err := s.productRepo.List(repository.ProductListFilter{
		CategorySlug: strings.TrimSpace(query.Category),
		Search:       strings.TrimSpace(query.Search),
		OnlyActive:   true,
		WithCategory: true,
	})
	if err != nil {
		return nil, err
	}

	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, newProductView(product))
	}
	return views, nil
}

// GetProduct 按 ID 查询单个在售商品
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	view := newProductView(*product)
	return &view, nil
}

// ListCategories 查询全部分类
func (s *CatalogService) ListCategories(ctx context.Context) ([]CategoryView, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	views := make([]CategoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, CategoryView{ID: category.ID, Slug: category.Slug, Name: category.Name})
	}
	return views, nil
}

func newProductView(product models.Product) ProductView {
	view := ProductView{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.PriceAmount,
		Image:       product.Image,
		CategoryID:  product.CategoryID,
	}
	if product.Category.ID != 0 {
		view.Category = product.Category.Slug
	}
	return view
}
