package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/logger"
	"github.com/freshgo-shop/internal/queue"
	"github.com/freshgo-shop/internal/repository"

	"github.com/google/uuid"
)

// CheckoutForm 结账表单
type CheckoutForm struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	DeliveryTime  string `json:"delivery_time"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

// Confirmation 结账确认信息
type Confirmation struct {
	OrderRef    string    `json:"order_ref"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	ItemCount   int       `json:"item_count"`
	Totals      Totals    `json:"totals"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

// CheckoutView 结账视图
// Reviewing 状态携带当前购物车；Confirmed 状态携带确认信息。
type CheckoutView struct {
	State        string        `json:"state"`
	Cart         *CartView     `json:"cart,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

// CheckoutService 结账流程服务
// 每个会话的状态机只有两个状态：reviewing 与 confirmed。
// reviewing → confirmed 仅在提交时购物车非空才发生；确认时清空购物车。
// confirmed → reviewing 是手动导航（Reset），只清确认标记，不恢复购物车。
type CheckoutService struct {
	store       repository.CartStore
	cartService *CartService
	queueClient *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(store repository.CartStore, cartService *CartService, queueClient *queue.Client) *CheckoutService {
	return &CheckoutService{
		store:       store,
		cartService: cartService,
		queueClient: queueClient,
	}
}

// State 获取当前结账视图
func (s *CheckoutService) State(ctx context.Context, sessionID string) (*CheckoutView, error) {
	confirmation, err := s.loadConfirmation(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if confirmation != nil {
		return &CheckoutView{
			State:        constants.CheckoutStateConfirmed,
			Confirmation: confirmation,
		}, nil
	}

	cart, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &CheckoutView{
		State: constants.CheckoutStateReviewing,
		Cart:  cart,
	}, nil
}

// Submit 提交结账
// 空购物车提交是空操作：停留在 reviewing，不清空也不确认。
// 非空购物车：校验表单、清空购物车、落确认标记并尽力推送确认通知。
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, form CheckoutForm) (*CheckoutView, error) {
	if err := validateCheckoutForm(form); err != nil {
		return nil, err
	}

	cart, err := s.cartService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	itemCount := 0
	for _, item := range cart.Items {
		itemCount += item.Quantity
	}

	confirmation := &Confirmation{
		OrderRef:    uuid.NewString(),
		Email:       strings.TrimSpace(form.Email),
		FullName:    strings.TrimSpace(form.FullName),
		ItemCount:   itemCount,
		Totals:      cart.Totals,
		ConfirmedAt: time.Now(),
	}

	if err := s.cartService.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	if err := s.saveConfirmation(ctx, sessionID, confirmation); err != nil {
		return nil, err
	}

	// 确认通知走异步队列，失败只记日志不影响结账结果
	if err := s.queueClient.EnqueueCheckoutConfirmation(queue.CheckoutConfirmationPayload{
		OrderRef:    confirmation.OrderRef,
		SessionID:   sessionID,
		Email:       confirmation.Email,
		FullName:    confirmation.FullName,
		TotalAmount: confirmation.Totals.Total.String(),
		ItemCount:   confirmation.ItemCount,
	}); err != nil {
		logger.Warnw("checkout_confirmation_enqueue_failed", "order_ref", confirmation.OrderRef, "error", err)
	}

	logger.Infow("checkout_confirmed",
		"order_ref", confirmation.OrderRef,
		"session_id", sessionID,
		"item_count", confirmation.ItemCount,
		"total", confirmation.Totals.Total.String(),
	)

	return &CheckoutView{
		State:        constants.CheckoutStateConfirmed,
		Confirmation: confirmation,
	}, nil
}

// Reset 返回 reviewing 状态
// 只清确认标记，已清空的购物车保持为空。
func (s *CheckoutService) Reset(ctx context.Context, sessionID string) (*CheckoutView, error) {
	if err := s.store.Delete(ctx, checkoutStorageKey(sessionID)); err != nil {
		return nil, err
	}
	return s.State(ctx, sessionID)
}

// loadConfirmation 读取确认标记，缺失或损坏按 reviewing 处理
func (s *CheckoutService) loadConfirmation(ctx context.Context, sessionID string) (*Confirmation, error) {
	payload, err := s.store.Load(ctx, checkoutStorageKey(sessionID))
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, nil
	}
	var confirmation Confirmation
	if err := json.Unmarshal(payload, &confirmation); err != nil {
		logger.Warnw("checkout_state_malformed", "session_id", sessionID, "error", err)
		return nil, nil
	}
	if confirmation.OrderRef == "" {
		return nil, nil
	}
	return &confirmation, nil
}

func (s *CheckoutService) saveConfirmation(ctx context.Context, sessionID string, confirmation *Confirmation) error {
	payload, err := json.Marshal(confirmation)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, checkoutStorageKey(sessionID), payload)
}

func validateCheckoutForm(form CheckoutForm) error {
	if strings.TrimSpace(form.FullName) == "" {
		return NewValidationError("full_name", "error.field_required")
	}
	if strings.TrimSpace(form.Phone) == "" {
		return NewValidationError("phone", "error.field_required")
	}
	email := strings.TrimSpace(form.Email)
	if email == "" {
		return NewValidationError("email", "error.field_required")
	}
	if !emailPattern.MatchString(email) {
		return NewValidationError("email", "error.email_invalid")
	}
	if strings.TrimSpace(form.Address) == "" {
		return NewValidationError("address", "error.field_required")
	}
	switch strings.TrimSpace(form.PaymentMethod) {
	case "", constants.PaymentMethodCashOnDelivery, constants.PaymentMethodCard:
	default:
		return ErrPaymentMethodInvalid
	}
	return nil
}

func checkoutStorageKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", constants.CheckoutStorageKeyPrefix, sessionID)
}
