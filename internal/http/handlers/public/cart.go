package public

import (
	"strconv"

	"github.com/freshgo-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 加购请求
type CartAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CartQuantityRequest 数量调整请求（delta 可为 0，表示不变）
type CartQuantityRequest struct {
	Delta int `json:"delta"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	cart, err := h.CartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 加购商品（已存在则数量加一）
func (h *Handler) AddCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.AddItem(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, cart)
}

// ChangeCartItemQuantity 调整商品行数量（下限为 1）
func (h *Handler) ChangeCartItemQuantity(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req CartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.ChangeQuantity(c.Request.Context(), sessionID, productID, req.Delta)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, cart)
}

// DeleteCartItem 移除商品行（不存在时幂等）
func (h *Handler) DeleteCartItem(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	cart, err := h.CartService.RemoveItem(c.Request.Context(), sessionID, productID)
	if err != nil {
		respondCartMutationError(c, err)
		return
	}
	response.Success(c, cart)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(c.Request.Context(), sessionID); err != nil {
		respondError(c, response.CodeInternal, "error.cart_update_failed", err)
		return
	}

	cart, err := h.CartService.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, cart)
}

func parseProductID(c *gin.Context) (uint, bool) {
	rawID := c.Param("product_id")
	productID, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.product_id_invalid", nil)
		return 0, false
	}
	return uint(productID), true
}
