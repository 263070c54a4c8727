package shared

import (
	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCartSession 从上下文读取购物车会话ID并统一处理错误响应。
// 会话由 CartSession 中间件注入，正常请求路径上必然存在。
func GetCartSession(c *gin.Context) (string, bool) {
	value, exists := c.Get(constants.CartSessionContextKey)
	if !exists {
		RespondError(c, response.CodeInternal, "error.cart_session_missing", nil)
		return "", false
	}
	sessionID, ok := value.(string)
	if !ok || sessionID == "" {
		RespondError(c, response.CodeInternal, "error.cart_session_missing", nil)
		return "", false
	}
	return sessionID, true
}
