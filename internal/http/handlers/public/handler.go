package public

import "github.com/freshgo-shop/internal/provider"

// Handler 店面公开接口处理器入口
// 说明：该处理器仅用于店面、游客侧 API，无需登录态。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
