package public

import (
	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaImage 生成图片验证码
func (h *Handler) GetCaptchaImage(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		return
	}
	response.Success(c, challenge)
}

// GetCaptchaScenes 验证码场景开关下发
func (h *Handler) GetCaptchaScenes(c *gin.Context) {
	response.Success(c, gin.H{
		"login":    h.CaptchaService.IsSceneEnabled(constants.CaptchaSceneLogin),
		"register": h.CaptchaService.IsSceneEnabled(constants.CaptchaSceneRegister),
	})
}
