package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/freshgo-shop/internal/config"
	"github.com/freshgo-shop/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// emailPattern 邮箱格式：非空本地部分@非空域名.非空后缀
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginForm 登录表单
type LoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult 登录结果
type LoginResult struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterForm 注册表单
type RegisterForm struct {
	FullName         string `json:"full_name"`
	Username         string `json:"username"`
	DateOfBirth      string `json:"date_of_birth"` // YYYY-MM-DD
	Gender           string `json:"gender"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ConfirmPassword  string `json:"confirm_password"`
	AddressLine1     string `json:"address_line1"`
	AddressLine2     string `json:"address_line2"`
	ZipCode          string `json:"zip_code"`
	Country          string `json:"country"`
	PreferredContact string `json:"preferred_contact"`
	FavoriteCategory string `json:"favorite_category"`
	AgreeToTerms     bool   `json:"agree_to_terms"`
}

// RegisterResult 注册结果
type RegisterResult struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// userClaims 用户令牌声明
type userClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService 认证桩服务
// 演示店面：登录不校验凭据（任意用户名密码均成功），注册只做表单校验、
// 不落库。两者都保留模拟处理延迟，行为可通过配置调整。
type AuthService struct {
	jwtCfg  config.JWTConfig
	authCfg config.AuthConfig
}

// NewAuthService 创建认证服务
func NewAuthService(jwtCfg config.JWTConfig, authCfg config.AuthConfig) *AuthService {
	return &AuthService{jwtCfg: jwtCfg, authCfg: authCfg}
}

// Login 登录桩
// 仅要求用户名密码非空，签发真实 JWT 供前端保存。
func (s *AuthService) Login(ctx context.Context, form LoginForm) (*LoginResult, error) {
	username := strings.TrimSpace(form.Username)
	if username == "" {
		return nil, NewValidationError("username", "error.field_required")
	}
	if form.Password == "" {
		return nil, NewValidationError("password", "error.field_required")
	}

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(time.Duration(s.jwtCfg.ExpireHours) * time.Hour)
	claims := userClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.SecretKey))
	if err != nil {
		return nil, err
	}

	logger.Infow("user_login_stub", "username", username)

	return &LoginResult{
		Username:  username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Register 注册桩
// 完整走一遍表单校验与密码散列，但不持久化用户。
func (s *AuthService) Register(ctx context.Context, form RegisterForm) (*RegisterResult, error) {
	if err := s.validateRegisterForm(form); err != nil {
		return nil, err
	}

	// 散列密码以保持与真实注册一致的处理成本，结果随即丢弃
	if _, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost); err != nil {
		return nil, err
	}

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(form.Username)
	email := strings.TrimSpace(form.Email)

	logger.Infow("user_register_stub", "username", username)

	return &RegisterResult{Username: username, Email: email}, nil
}

// validateRegisterForm 按固定顺序校验：必填 → 邮箱 → 密码一致 → 密码长度 → 条款 → 年龄
func (s *AuthService) validateRegisterForm(form RegisterForm) error {
	required := []struct {
		field string
		value string
	}{
		{"full_name", form.FullName},
		{"username", form.Username},
		{"date_of_birth", form.DateOfBirth},
		{"gender", form.Gender},
		{"email", form.Email},
		{"password", form.Password},
		{"confirm_password", form.ConfirmPassword},
		{"address_line1", form.AddressLine1},
		{"zip_code", form.ZipCode},
		{"country", form.Country},
		{"preferred_contact", form.PreferredContact},
		{"favorite_category", form.FavoriteCategory},
	}
	for _, item := range required {
		if strings.TrimSpace(item.value) == "" {
			return NewValidationError(item.field, "error.field_required")
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(form.Email)) {
		return NewValidationError("email", "error.email_invalid")
	}
	if form.Password != form.ConfirmPassword {
		return NewValidationError("confirm_password", "error.password_mismatch")
	}
	minLength := s.authCfg.PasswordMinLength
	if minLength <= 0 {
		minLength = 8
	}
	if len(form.Password) < minLength {
		return NewValidationError("password", "error.password_too_short")
	}
	if !form.AgreeToTerms {
		return NewValidationError("agree_to_terms", "error.terms_not_accepted")
	}

	birthDate, err := time.Parse("2006-01-02", strings.TrimSpace(form.DateOfBirth))
	if err != nil {
		return NewValidationError("date_of_birth", "error.date_invalid")
	}
	minAge := s.authCfg.MinAgeYears
	if minAge <= 0 {
		minAge = 13
	}
	if !meetsMinimumAge(birthDate, time.Now(), minAge) {
		return NewValidationError("date_of_birth", "error.age_too_young")
	}
	return nil
}

// meetsMinimumAge 年份差判断年龄，恰好达到门槛年份时再比较月份
func meetsMinimumAge(birthDate, now time.Time, minAge int) bool {
	age := now.Year() - birthDate.Year()
	monthDiff := int(now.Month()) - int(birthDate.Month())
	if age < minAge {
		return false
	}
	if age == minAge && monthDiff < 0 {
		return false
	}
	return true
}

// simulateProcessing 模拟后端处理延迟，可被取消
func (s *AuthService) simulateProcessing(ctx context.Context) error {
	delay := s.authCfg.SimulatedDelayMS
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(delay) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
