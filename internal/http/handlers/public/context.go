package public

import (
	handlershared "github.com/freshgo-shop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

func getCartSession(c *gin.Context) (string, bool) {
	return handlershared.GetCartSession(c)
}
