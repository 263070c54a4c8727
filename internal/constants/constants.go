package constants

// 结账状态常量
const (
	CheckoutStateReviewing = "reviewing"
	CheckoutStateConfirmed = "confirmed"
)

// 购物车存储 key 前缀（沿用前端 localStorage 的 key 命名）
const (
	CartStorageKeyPrefix     = "freshgo_cart"
	CheckoutStorageKeyPrefix = "freshgo_checkout"
)

// 购物车会话载体
const (
	CartSessionCookieName = "freshgo_session"
	CartSessionHeaderName = "X-Cart-Session"
	CartSessionContextKey = "cart_session"
)

// 购物车存储后端
const (
	CartStoreDriverDB    = "db"
	CartStoreDriverRedis = "redis"
)

// 支付方式常量（结账表单，货到付款为默认）
const (
	PaymentMethodCashOnDelivery = "cash_on_delivery"
	PaymentMethodCard           = "card"
)

// 队列常量
const (
	QueueDefault             = "default"
	TaskCheckoutConfirmation = "checkout:confirmation"
)

// 验证码场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
)

// 注册表单偏好联系方式
const (
	PreferredContactEmail = "email"
	PreferredContactPhone = "phone"
)
