package service

import (
	"github.com/freshgo-shop/internal/config"
	"github.com/freshgo-shop/internal/models"

	"github.com/shopspring/decimal"
)

// Totals 订单金额汇总（派生值，只计算不存储）
type Totals struct {
	Subtotal    models.Money `json:"subtotal"`
	ServiceFee  models.Money `json:"service_fee"`
	DeliveryFee models.Money `json:"delivery_fee"`
	Total       models.Money `json:"total"`
}

// PricingService 金额计算服务
type PricingService struct {
	serviceFeeRate decimal.Decimal
	deliveryFee    decimal.Decimal
}

// NewPricingService 创建金额计算服务
func NewPricingService(cfg config.CartConfig) *PricingService {
	rate := decimal.NewFromFloat(cfg.ServiceFeeRate)
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	fee := decimal.NewFromInt(cfg.DeliveryFee)
	if fee.IsNegative() {
		fee = decimal.Zero
	}
	return &PricingService{
		serviceFeeRate: rate,
		deliveryFee:    fee,
	}
}

// ComputeTotals 计算购物车金额汇总
// 纯函数：subtotal = Σ(unit_price × quantity)；
// service_fee 按费率取整到整数货币单位（四舍五入，decimal.Round 对正数即 round-half-up）；
// delivery_fee 为阶跃值，空车免收；total 为三者之和。
func (s *PricingService) ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	serviceFee := subtotal.Mul(s.serviceFeeRate).Round(0)
	deliveryFee := decimal.Zero
	if subtotal.IsPositive() {
		deliveryFee = s.deliveryFee
	}
	total := subtotal.Add(serviceFee).Add(deliveryFee)

	return Totals{
		Subtotal:    models.NewMoneyFromDecimal(subtotal),
		ServiceFee:  models.NewMoneyFromDecimal(serviceFee),
		DeliveryFee: models.NewMoneyFromDecimal(deliveryFee),
		Total:       models.NewMoneyFromDecimal(total),
	}
}
