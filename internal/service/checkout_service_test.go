package service

import (
	"context"
	"testing"

	"github.com/freshgo-shop/internal/config"
	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/models"
)

func setupCheckoutServiceTest(t *testing.T) (*CheckoutService, *CartService, *memoryCartStore) {
	t.Helper()
	store := newMemoryCartStore()
	repo := &stubProductRepo{products: map[uint]*models.Product{
		1: bakeryProduct(1, "Sourdough Loaf", 1200),
		2: bakeryProduct(2, "Butter Croissant", 450),
	}}
	pricing := NewPricingService(config.CartConfig{ServiceFeeRate: 0.05, DeliveryFee: 300})
	cartService := NewCartService(store, repo, pricing)
	checkoutService := NewCheckoutService(store, cartService, nil)
	return checkoutService, cartService, store
}

func validCheckoutForm() CheckoutForm {
	return CheckoutForm{
		FullName:      "Ada Baker",
		Phone:         "555-0101",
		Email:         "ada@example.com",
		Address:       "1 Flour St",
		PaymentMethod: constants.PaymentMethodCashOnDelivery,
	}
}

func TestCheckoutStateDefaultsToReviewing(t *testing.T) {
	checkout, _, _ := setupCheckoutServiceTest(t)

	view, err := checkout.State(context.Background(), "sess")
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if view.State != constants.CheckoutStateReviewing {
		t.Fatalf("fresh session state want reviewing got %s", view.State)
	}
	if view.Cart == nil || len(view.Cart.Items) != 0 {
		t.Fatalf("reviewing view should carry empty cart, got %+v", view.Cart)
	}
	if view.Confirmation != nil {
		t.Fatalf("reviewing view must not carry confirmation")
	}
}

func TestCheckoutSubmitEmptyCartIsNoop(t *testing.T) {
	checkout, _, _ := setupCheckoutServiceTest(t)
	ctx := context.Background()

	if _, err := checkout.Submit(ctx, "sess", validCheckoutForm()); err != ErrCartEmpty {
		t.Fatalf("empty cart submit want ErrCartEmpty got %v", err)
	}

	view, err := checkout.State(ctx, "sess")
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if view.State != constants.CheckoutStateReviewing {
		t.Fatalf("state must stay reviewing after empty submit, got %s", view.State)
	}
}

func TestCheckoutSubmitConfirmsAndClearsCart(t *testing.T) {
	checkout, cart, _ := setupCheckoutServiceTest(t)
	ctx := context.Background()

	if _, err := cart.AddItem(ctx, "sess", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cart.AddItem(ctx, "sess", 2); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	view, err := checkout.Submit(ctx, "sess", validCheckoutForm())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if view.State != constants.CheckoutStateConfirmed {
		t.Fatalf("state want confirmed got %s", view.State)
	}
	if view.Confirmation == nil || view.Confirmation.OrderRef == "" {
		t.Fatalf("confirmation must carry order ref, got %+v", view.Confirmation)
	}
	if view.Confirmation.ItemCount != 2 {
		t.Fatalf("item count want 2 got %d", view.Confirmation.ItemCount)
	}
	// 1650 + round(82.5) + 300 = 2033
	if got := view.Confirmation.Totals.Total.String(); got != "2033.00" {
		t.Fatalf("confirmation total want 2033 got %s", got)
	}

	after, err := cart.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(after.Items) != 0 {
		t.Fatalf("cart must be cleared after confirm, got %+v", after.Items)
	}

	// 确认状态跨请求持久
	state, err := checkout.State(ctx, "sess")
	if err != nil {
		t.Fatalf("state failed: %v", err)
	}
	if state.State != constants.CheckoutStateConfirmed {
		t.Fatalf("persisted state want confirmed got %s", state.State)
	}
}

func TestCheckoutSubmitValidatesForm(t *testing.T) {
	checkout, cart, _ := setupCheckoutServiceTest(t)
	ctx := context.Background()

	if _, err := cart.AddItem(ctx, "sess", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	cases := []struct {
		name  string
		form  CheckoutForm
		field string
	}{
		{"missing full name", CheckoutForm{Phone: "1", Email: "a@b.c", Address: "x"}, "full_name"},
		{"missing phone", CheckoutForm{FullName: "A", Email: "a@b.c", Address: "x"}, "phone"},
		{"missing email", CheckoutForm{FullName: "A", Phone: "1", Address: "x"}, "email"},
		{"bad email", CheckoutForm{FullName: "A", Phone: "1", Email: "nope", Address: "x"}, "email"},
		{"missing address", CheckoutForm{FullName: "A", Phone: "1", Email: "a@b.c"}, "address"},
	}
	for _, tc := range cases {
		_, err := checkout.Submit(ctx, "sess", tc.form)
		verr, ok := AsValidationError(err)
		if !ok {
			t.Fatalf("%s: want validation error got %v", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: field want %s got %s", tc.name, tc.field, verr.Field)
		}
	}

	form := validCheckoutForm()
	form.PaymentMethod = "bitcoin"
	if _, err := checkout.Submit(ctx, "sess", form); err != ErrPaymentMethodInvalid {
		t.Fatalf("unknown payment method want ErrPaymentMethodInvalid got %v", err)
	}

	// 校验失败期间购物车保持原样
	after, err := cart.Get(ctx, "sess")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(after.Items) != 1 {
		t.Fatalf("cart must survive failed submits, got %+v", after.Items)
	}
}

func TestCheckoutResetClearsFlagKeepsCartEmpty(t *testing.T) {
	checkout, cart, _ := setupCheckoutServiceTest(t)
	ctx := context.Background()

	if _, err := cart.AddItem(ctx, "sess", 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := checkout.Submit(ctx, "sess", validCheckoutForm()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	view, err := checkout.Reset(ctx, "sess")
	if err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if view.State != constants.CheckoutStateReviewing {
		t.Fatalf("state after reset want reviewing got %s", view.State)
	}
	if view.Cart == nil || len(view.Cart.Items) != 0 {
		t.Fatalf("reset must not restore cleared cart, got %+v", view.Cart)
	}
}

func TestCheckoutCorruptStateFallsBackToReviewing(t *testing.T) {
	checkout, _, store := setupCheckoutServiceTest(t)

	store.data["freshgo_checkout:sess"] = []byte("???")

	view, err := checkout.State(context.Background(), "sess")
	if err != nil {
		t.Fatalf("corrupt state must not error, got %v", err)
	}
	if view.State != constants.CheckoutStateReviewing {
		t.Fatalf("corrupt state want reviewing got %s", view.State)
	}
}
