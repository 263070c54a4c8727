package public

import (
	"github.com/freshgo-shop/internal/constants"
	"github.com/freshgo-shop/internal/http/handlers/shared"
	"github.com/freshgo-shop/internal/http/response"
	"github.com/freshgo-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username       string                       `json:"username"`
	Password       string                       `json:"password"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	FullName         string                       `json:"full_name"`
	Username         string                       `json:"username"`
	DateOfBirth      string                       `json:"date_of_birth"`
	Gender           string                       `json:"gender"`
	Email            string                       `json:"email"`
	Password         string                       `json:"password"`
	ConfirmPassword  string                       `json:"confirm_password"`
	AddressLine1     string                       `json:"address_line1"`
	AddressLine2     string                       `json:"address_line2"`
	ZipCode          string                       `json:"zip_code"`
	Country          string                       `json:"country"`
	PreferredContact string                       `json:"preferred_contact"`
	FavoriteCategory string                       `json:"favorite_category"`
	AgreeToTerms     bool                         `json:"agree_to_terms"`
	CaptchaPayload   shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			respondAuthError(c, captchaErr, "error.login_failed")
			return
		}
	}

	result, err := h.AuthService.Login(c.Request.Context(), service.LoginForm{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err, "error.login_failed")
		return
	}
	response.SuccessWithMsg(c, "login_successful", result)
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.CaptchaService != nil {
		if captchaErr := h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.CaptchaPayload.ToServicePayload()); captchaErr != nil {
			respondAuthError(c, captchaErr, "error.register_failed")
			return
		}
	}

	result, err := h.AuthService.Register(c.Request.Context(), service.RegisterForm{
		FullName:         req.FullName,
		Username:         req.Username,
		DateOfBirth:      req.DateOfBirth,
		Gender:           req.Gender,
		Email:            req.Email,
		Password:         req.Password,
		ConfirmPassword:  req.ConfirmPassword,
		AddressLine1:     req.AddressLine1,
		AddressLine2:     req.AddressLine2,
		ZipCode:          req.ZipCode,
		Country:          req.Country,
		PreferredContact: req.PreferredContact,
		FavoriteCategory: req.FavoriteCategory,
		AgreeToTerms:     req.AgreeToTerms,
	})
	if err != nil {
		respondAuthError(c, err, "error.register_failed")
		return
	}
	response.SuccessWithMsg(c, "registration_successful", result)
}
