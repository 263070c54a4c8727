package public

import (
	"github.com/freshgo-shop/internal/http/response"
	"github.com/freshgo-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutSubmitRequest 结账提交请求
type CheckoutSubmitRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	DeliveryTime  string `json:"delivery_time"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
}

// GetCheckoutState 获取结账状态（reviewing 带购物车，confirmed 带确认信息）
func (h *Handler) GetCheckoutState(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	view, err := h.CheckoutService.State(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.checkout_fetch_failed", err)
		return
	}
	response.Success(c, view)
}

// SubmitCheckout 提交结账
func (h *Handler) SubmitCheckout(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	var req CheckoutSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CheckoutService.Submit(c.Request.Context(), sessionID, service.CheckoutForm{
		FullName:      req.FullName,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		DeliveryTime:  req.DeliveryTime,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondCheckoutSubmitError(c, err)
		return
	}
	response.Success(c, view)
}

// ResetCheckout 返回浏览状态（不恢复已清空的购物车）
func (h *Handler) ResetCheckout(c *gin.Context) {
	sessionID, ok := getCartSession(c)
	if !ok {
		return
	}

	view, err := h.CheckoutService.Reset(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.checkout_reset_failed", err)
		return
	}
	response.Success(c, view)
}
