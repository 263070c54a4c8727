package service

import "errors"

// 业务错误定义
var (
	ErrProductNotAvailable  = errors.New("product not available")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrPaymentMethodInvalid = errors.New("payment method invalid")
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
)

// ValidationError 表单字段校验错误
// Key 为面向用户的消息标识，Field 指出校验失败的字段。
type ValidationError struct {
	Field string
	Key   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Key
	}
	return e.Key + ": " + e.Field
}

// NewValidationError 创建字段校验错误
func NewValidationError(field, key string) *ValidationError {
	return &ValidationError{Field: field, Key: key}
}

// AsValidationError 提取校验错误
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
