package service

import (
	"context"
	"testing"
	"time"

	"github.com/freshgo-shop/internal/config"
)

func newTestAuthService() *AuthService {
	return NewAuthService(
		config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		config.AuthConfig{SimulatedDelayMS: 0, PasswordMinLength: 8, MinAgeYears: 13},
	)
}

func validRegisterForm() RegisterForm {
	return RegisterForm{
		FullName:         "Ada Baker",
		Username:         "ada",
		DateOfBirth:      "1990-06-15",
		Gender:           "female",
		Email:            "ada@example.com",
		Password:         "longenough",
		ConfirmPassword:  "longenough",
		AddressLine1:     "1 Flour St",
		ZipCode:          "12345",
		Country:          "US",
		PreferredContact: "email",
		FavoriteCategory: "bread",
		AgreeToTerms:     true,
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginForm{Password: "x"})
	if verr, ok := AsValidationError(err); !ok || verr.Field != "username" {
		t.Fatalf("missing username want validation error, got %v", err)
	}

	_, err = svc.Login(ctx, LoginForm{Username: "ada"})
	if verr, ok := AsValidationError(err); !ok || verr.Field != "password" {
		t.Fatalf("missing password want validation error, got %v", err)
	}
}

func TestLoginAcceptsAnyCredentials(t *testing.T) {
	svc := newTestAuthService()

	result, err := svc.Login(context.Background(), LoginForm{Username: "anyone", Password: "anything"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Username != "anyone" {
		t.Fatalf("username want anyone got %s", result.Username)
	}
	if result.Token == "" {
		t.Fatalf("login must issue a token")
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("token expiry must be in the future, got %v", result.ExpiresAt)
	}
}

func TestLoginHonorsContextCancellation(t *testing.T) {
	svc := NewAuthService(
		config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		config.AuthConfig{SimulatedDelayMS: 5000},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Login(ctx, LoginForm{Username: "a", Password: "b"}); err != context.Canceled {
		t.Fatalf("cancelled login want context.Canceled got %v", err)
	}
}

func TestRegisterValidForm(t *testing.T) {
	svc := newTestAuthService()

	result, err := svc.Register(context.Background(), validRegisterForm())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if result.Username != "ada" || result.Email != "ada@example.com" {
		t.Fatalf("result want ada/ada@example.com got %+v", result)
	}
}

func TestRegisterRequiredFields(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()

	clearField := map[string]func(*RegisterForm){
		"full_name":         func(f *RegisterForm) { f.FullName = "" },
		"username":          func(f *RegisterForm) { f.Username = "" },
		"date_of_birth":     func(f *RegisterForm) { f.DateOfBirth = "" },
		"gender":            func(f *RegisterForm) { f.Gender = "" },
		"email":             func(f *RegisterForm) { f.Email = "" },
		"password":          func(f *RegisterForm) { f.Password = "" },
		"confirm_password":  func(f *RegisterForm) { f.ConfirmPassword = "" },
		"address_line1":     func(f *RegisterForm) { f.AddressLine1 = "" },
		"zip_code":          func(f *RegisterForm) { f.ZipCode = "" },
		"country":           func(f *RegisterForm) { f.Country = "" },
		"preferred_contact": func(f *RegisterForm) { f.PreferredContact = "" },
		"favorite_category": func(f *RegisterForm) { f.FavoriteCategory = "" },
	}
	for field, clear := range clearField {
		form := validRegisterForm()
		clear(&form)
		_, err := svc.Register(ctx, form)
		verr, ok := AsValidationError(err)
		if !ok {
			t.Fatalf("%s: want validation error got %v", field, err)
		}
		if verr.Field != field {
			t.Fatalf("field want %s got %s", field, verr.Field)
		}
		if verr.Key != "error.field_required" {
			t.Fatalf("%s: key want error.field_required got %s", field, verr.Key)
		}
	}

	// address_line2 可选
	form := validRegisterForm()
	form.AddressLine2 = ""
	if _, err := svc.Register(ctx, form); err != nil {
		t.Fatalf("address_line2 must be optional, got %v", err)
	}
}

func TestRegisterValidationRules(t *testing.T) {
	svc := newTestAuthService()

	form := validRegisterForm()
	form.Email = "not-an-email"
	if verr, ok := AsValidationError(registerErr(t, svc, form)); !ok || verr.Key != "error.email_invalid" {
		t.Fatalf("bad email want error.email_invalid, got %v", verr)
	}

	form = validRegisterForm()
	form.ConfirmPassword = "different-pass"
	if verr, ok := AsValidationError(registerErr(t, svc, form)); !ok || verr.Key != "error.password_mismatch" {
		t.Fatalf("mismatch want error.password_mismatch, got %v", verr)
	}

	form = validRegisterForm()
	form.Password = "short"
	form.ConfirmPassword = "short"
	if verr, ok := AsValidationError(registerErr(t, svc, form)); !ok || verr.Key != "error.password_too_short" {
		t.Fatalf("short password want error.password_too_short, got %v", verr)
	}

	form = validRegisterForm()
	form.AgreeToTerms = false
	if verr, ok := AsValidationError(registerErr(t, svc, form)); !ok || verr.Key != "error.terms_not_accepted" {
		t.Fatalf("terms want error.terms_not_accepted, got %v", verr)
	}

	form = validRegisterForm()
	form.DateOfBirth = "15/06/1990"
	if verr, ok := AsValidationError(registerErr(t, svc, form)); !ok || verr.Key != "error.date_invalid" {
		t.Fatalf("bad date want error.date_invalid, got %v", verr)
	}
}

func TestRegisterMinimumAge(t *testing.T) {
	svc := newTestAuthService()
	ctx := context.Background()
	now := time.Now()

	// 明显未成年
	form := validRegisterForm()
	form.DateOfBirth = now.AddDate(-10, 0, 0).Format("2006-01-02")
	if verr, ok := AsValidationError(registerErr(t, svc, form)); !ok || verr.Key != "error.age_too_young" {
		t.Fatalf("age 10 want error.age_too_young, got %v", verr)
	}

	// 明显成年
	form = validRegisterForm()
	form.DateOfBirth = now.AddDate(-30, 0, 0).Format("2006-01-02")
	if _, err := svc.Register(ctx, form); err != nil {
		t.Fatalf("age 30 must pass, got %v", err)
	}
}

func TestMeetsMinimumAgeMonthBoundary(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	// 年份差恰好 13，生日月份已过
	if !meetsMinimumAge(time.Date(2011, time.March, 1, 0, 0, 0, 0, time.UTC), now, 13) {
		t.Fatalf("13 years with passed birth month must qualify")
	}
	// 年份差恰好 13，生日月份未到
	if meetsMinimumAge(time.Date(2011, time.September, 1, 0, 0, 0, 0, time.UTC), now, 13) {
		t.Fatalf("13 years with pending birth month must not qualify")
	}
	// 年份差不足
	if meetsMinimumAge(time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC), now, 13) {
		t.Fatalf("12 years must not qualify")
	}
}

func registerErr(t *testing.T, svc *AuthService, form RegisterForm) error {
	t.Helper()
	_, err := svc.Register(context.Background(), form)
	if err == nil {
		t.Fatalf("expected an error")
	}
	return err
}
