package public_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/freshgo-shop/internal/config"
	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/models"
	"github.com/freshgo-shop/internal/provider"
	"github.com/freshgo-shop/internal/repository"
	"github.com/freshgo-shop/internal/router"
	"github.com/freshgo-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// apiResponse 统一响应信封
type apiResponse struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupStorefrontTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.CartRecord{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	models.DB = db
	if err := models.InitDefaultCatalog(); err != nil {
		t.Fatalf("seed catalog failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Cart = config.CartConfig{Store: constants.CartStoreDriverDB, ServiceFeeRate: 0.05, DeliveryFee: 300, SessionTTLDays: 30}
	cfg.Auth = config.AuthConfig{SimulatedDelayMS: 0, PasswordMinLength: 8, MinAgeYears: 13}
	cfg.UserJWT = config.JWTConfig{SecretKey: "handler-test-secret", ExpireHours: 1}

	store := repository.NewGormCartStore(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	pricing := service.NewPricingService(cfg.Cart)
	cartService := service.NewCartService(store, productRepo, pricing)

	container := &provider.Container{
		Config:          cfg,
		ProductRepo:     productRepo,
		CategoryRepo:    categoryRepo,
		CartStore:       store,
		CatalogService:  service.NewCatalogService(productRepo, categoryRepo),
		PricingService:  pricing,
		CartService:     cartService,
		CheckoutService: service.NewCheckoutService(store, cartService, nil),
		AuthService:     service.NewAuthService(cfg.UserJWT, cfg.Auth),
		CaptchaService:  service.NewCaptchaService(cfg.Captcha),
	}

	return router.SetupRouter(cfg, container)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, session string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(constants.CartSessionHeaderName, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (%s)", err, w.Body.String())
	}
	return w, resp
}

func TestStorefrontListProducts(t *testing.T) {
	r := setupStorefrontTest(t)

	_, resp := doJSON(t, r, http.MethodGet, "/api/v1/public/products", "", "")
	if resp.StatusCode != 0 {
		t.Fatalf("status code want 0 got %d (%s)", resp.StatusCode, resp.Msg)
	}

	var data struct {
		Products []struct {
			Name     string `json:"name"`
			Price    string `json:"price"`
			Category string `json:"category"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal products failed: %v", err)
	}
	if len(data.Products) != 6 {
		t.Fatalf("default catalog want 6 products got %d", len(data.Products))
	}
	if data.Products[0].Name != "Sourdough Loaf" {
		t.Fatalf("first product want Sourdough Loaf got %s", data.Products[0].Name)
	}

	// 分类过滤
	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/public/products?category=bread", "", "")
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal filtered products failed: %v", err)
	}
	if len(data.Products) != 2 {
		t.Fatalf("bread products want 2 got %d", len(data.Products))
	}
}

func TestStorefrontCartFlow(t *testing.T) {
	r := setupStorefrontTest(t)

	// 首次访问获得会话
	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/cart", "", "")
	session := w.Header().Get(constants.CartSessionHeaderName)
	if session == "" {
		t.Fatalf("first visit must issue a cart session")
	}

	// 加购两次同一商品
	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`, session)
	if resp.StatusCode != 0 {
		t.Fatalf("add want success got %d (%s)", resp.StatusCode, resp.Msg)
	}
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`, session)
	if resp.StatusCode != 0 {
		t.Fatalf("second add want success got %d (%s)", resp.StatusCode, resp.Msg)
	}

	var cart struct {
		Items []struct {
			ID       uint   `json:"id"`
			Quantity int    `json:"quantity"`
			Price    string `json:"price"`
		} `json:"items"`
		Totals struct {
			Subtotal    string `json:"subtotal"`
			ServiceFee  string `json:"service_fee"`
			DeliveryFee string `json:"delivery_fee"`
			Total       string `json:"total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(resp.Data, &cart); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart want single line qty 2 got %+v", cart.Items)
	}
	// 2400 + 120 + 300
	if cart.Totals.Subtotal != "2400.00" {
		t.Fatalf("subtotal want 2400.00 got %s", cart.Totals.Subtotal)
	}
	if cart.Totals.ServiceFee != "120.00" {
		t.Fatalf("service fee want 120.00 got %s", cart.Totals.ServiceFee)
	}
	if cart.Totals.Total != "2820.00" {
		t.Fatalf("total want 2820.00 got %s", cart.Totals.Total)
	}

	// delta 为 0 是合法的空操作
	_, resp = doJSON(t, r, http.MethodPatch, "/api/v1/cart/items/1", `{"delta":0}`, session)
	if resp.StatusCode != 0 {
		t.Fatalf("zero delta want success got %d (%s)", resp.StatusCode, resp.Msg)
	}
	if err := json.Unmarshal(resp.Data, &cart); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("zero delta must leave cart unchanged, got %+v", cart.Items)
	}

	// 陌生会话照常工作且与原会话隔离
	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/cart", "", "")
	if err := json.Unmarshal(resp.Data, &cart); err != nil {
		t.Fatalf("unmarshal cart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("fresh session cart want empty got %+v", cart.Items)
	}

	// 未知商品加购
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":999}`, session)
	if resp.StatusCode == 0 {
		t.Fatalf("unknown product add must fail")
	}
	if resp.Msg != "error.product_not_available" {
		t.Fatalf("msg want error.product_not_available got %s", resp.Msg)
	}
}

func TestStorefrontCheckoutFlow(t *testing.T) {
	r := setupStorefrontTest(t)

	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/cart", "", "")
	session := w.Header().Get(constants.CartSessionHeaderName)

	// 空购物车提交
	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/checkout/submit",
		`{"full_name":"Ada","phone":"1","email":"a@b.c","address":"x"}`, session)
	if resp.Msg != "error.cart_empty" {
		t.Fatalf("empty cart submit want error.cart_empty got %s", resp.Msg)
	}

	// 加购后提交
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", `{"product_id":2}`, session)
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/checkout/submit",
		`{"full_name":"Ada","phone":"1","email":"a@b.c","address":"x","payment_method":"card"}`, session)
	if resp.StatusCode != 0 {
		t.Fatalf("submit want success got %d (%s)", resp.StatusCode, resp.Msg)
	}

	var view struct {
		State        string `json:"state"`
		Confirmation *struct {
			OrderRef string `json:"order_ref"`
		} `json:"confirmation"`
	}
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("unmarshal checkout view failed: %v", err)
	}
	if view.State != constants.CheckoutStateConfirmed {
		t.Fatalf("state want confirmed got %s", view.State)
	}
	if view.Confirmation == nil || view.Confirmation.OrderRef == "" {
		t.Fatalf("confirmation must carry order ref")
	}

	// 确认状态跨请求可见
	_, resp = doJSON(t, r, http.MethodGet, "/api/v1/checkout", "", session)
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("unmarshal state failed: %v", err)
	}
	if view.State != constants.CheckoutStateConfirmed {
		t.Fatalf("persisted state want confirmed got %s", view.State)
	}

	// 重置回浏览状态
	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/checkout/reset", "", session)
	if err := json.Unmarshal(resp.Data, &view); err != nil {
		t.Fatalf("unmarshal reset view failed: %v", err)
	}
	if view.State != constants.CheckoutStateReviewing {
		t.Fatalf("state after reset want reviewing got %s", view.State)
	}
}

func TestStorefrontAuthStub(t *testing.T) {
	r := setupStorefrontTest(t)

	_, resp := doJSON(t, r, http.MethodPost, "/api/v1/auth/login", `{"username":"ada","password":"whatever"}`, "")
	if resp.StatusCode != 0 {
		t.Fatalf("stub login want success got %d (%s)", resp.StatusCode, resp.Msg)
	}
	var login struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &login); err != nil {
		t.Fatalf("unmarshal login failed: %v", err)
	}
	if login.Username != "ada" || login.Token == "" {
		t.Fatalf("login result want ada with token got %+v", login)
	}

	_, resp = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", `{"username":"","password":"x"}`, "")
	if resp.StatusCode == 0 {
		t.Fatalf("missing username must fail")
	}
}
