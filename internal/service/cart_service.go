package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/logger"
	"github.com/freshgo-shop/internal/models"
	"github.com/freshgo-shop/internal/repository"
)

// LineItem 购物车行项目
// 序列化布局与前端历史格式保持一致（id/name/price/quantity/img）。
type LineItem struct {
	ProductID uint         `json:"id"`
	Name      string       `json:"name"`
	UnitPrice models.Money `json:"price"`
	Quantity  int          `json:"quantity"`
	Image     string       `json:"img"`
}

// CartView 购物车视图（行项目 + 金额汇总）
type CartView struct {
	Items  []LineItem `json:"items"`
	Totals Totals     `json:"totals"`
}

// CartService 购物车服务
// 所有变更操作都是完整的读-改-写：经由 CartStore 读取当前集合、
// 应用变换后整体覆盖写回，并返回变更后的购物车视图。
type CartService struct {
	store       repository.CartStore
	productRepo repository.ProductRepository
	pricing     *PricingService
}

// NewCartService 创建购物车服务
func NewCartService(store repository.CartStore, productRepo repository.ProductRepository, pricing *PricingService) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
		pricing:     pricing,
	}
}

// Get 获取当前购物车视图
func (s *CartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(items), nil
}

// AddItem 添加商品或累加数量
// 商品名称、单价、图片一律以目录为准，不信任客户端提交值。
// 已有同商品行则数量 +1，否则按加入顺序追加数量为 1 的新行。
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID uint) (*CartView, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.PriceAmount,
			Quantity:  1,
			Image:     product.Image,
		})
	}

	if err := s.saveItems(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return s.view(items), nil
}

// RemoveItem 删除商品行
// 目标不存在时静默幂等返回，不算错误。
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID uint) (*CartView, error) {
	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}

	if err := s.saveItems(ctx, sessionID, next); err != nil {
		return nil, err
	}
	return s.view(next), nil
}

// ChangeQuantity 调整商品行数量
// 结果下限钳制为 1：把数量降到 0 的唯一途径是 RemoveItem。
// 目标不存在时静默幂等返回。
func (s *CartService) ChangeQuantity(ctx context.Context, sessionID string, productID uint, delta int) (*CartView, error) {
	items, err := s.loadItems(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ProductID == productID {
			quantity := items[i].Quantity + delta
			if quantity < 1 {
				quantity = 1
			}
			items[i].Quantity = quantity
			break
		}
	}

	if err := s.saveItems(ctx, sessionID, items); err != nil {
		return nil, err
	}
	return s.view(items), nil
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.saveItems(ctx, sessionID, nil)
}

// loadItems 读取并整理持久化的行项目
// 载荷缺失、无法解析或结构不是数组时降级为空购物车，绝不向上层抛错；
// 损坏的持久化状态等价于"没有购物车"。
func (s *CartService) loadItems(ctx context.Context, sessionID string) ([]LineItem, error) {
	payload, err := s.store.Load(ctx, cartStorageKey(sessionID))
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var items []LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		logger.Warnw("cart_payload_malformed", "session_id", sessionID, "error", err)
		return nil, nil
	}
	return sanitizeItems(items), nil
}

// saveItems 过滤非法行后整体覆盖写回
func (s *CartService) saveItems(ctx context.Context, sessionID string, items []LineItem) error {
	items = sanitizeItems(items)
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, cartStorageKey(sessionID), payload)
}

func (s *CartService) view(items []LineItem) *CartView {
	if items == nil {
		items = []LineItem{}
	}
	return &CartView{
		Items:  items,
		Totals: s.pricing.ComputeTotals(items),
	}
}

// sanitizeItems 维护集合不变量：
// 数量 ≤ 0 的行被过滤（防御性，常规路径不会产生）；
// 同一商品 id 至多一行，重复行并入首次出现的位置，保持插入顺序。
func sanitizeItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return []LineItem{}
	}
	result := make([]LineItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if at, seen := index[item.ProductID]; seen {
			result[at].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(result)
		result = append(result, item)
	}
	return result
}

func cartStorageKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", constants.CartStorageKeyPrefix, sessionID)
}
