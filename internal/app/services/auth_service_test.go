package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/auth"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	f := newFixture(t)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return NewAuthService(f.store, jwtService, zerolog.Nop())
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Name: " Asha Rao ", Email: "Asha@Example.com", Password: "passw0rdX"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Account.Email != "asha@example.com" || registered.Account.Name != "Asha Rao" {
		t.Fatalf("account = %+v", registered.Account)
	}
	if registered.Account.RoleType != string(models.RoleStudent) {
		t.Fatalf("role = %q, want student", registered.Account.RoleType)
	}
	if registered.Token.AccessToken == "" || registered.Token.TokenType != "Bearer" || registered.Token.ExpiresIn != 3600 {
		t.Fatalf("token = %+v", registered.Token)
	}

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "passw0rdX"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.Account.ID != registered.Account.ID {
		t.Fatalf("login account = %d, want %d", loggedIn.Account.ID, registered.Account.ID)
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "asha@example.com", Password: "wrong-pass1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "passw0rdX"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Again", Email: "asha@example.com", Password: "passw0rdX"}); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate err = %v, want ErrEmailAlreadyExists", err)
	}

	account, err := svc.GetAccount(ctx, registered.Account.ID)
	if err != nil || account.Email != "asha@example.com" {
		t.Fatalf("GetAccount = (%+v, %v)", account, err)
	}
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()
	svc := newAuthService(t)

	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"bad email", dto.RegisterRequest{Name: "A", Email: "not-an-email", Password: "passw0rdX"}},
		{"short password", dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "p4ss"}},
		{"no digit", dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "password"}},
		{"no letter", dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "12345678"}},
		{"blank name", dto.RegisterRequest{Name: "  ", Email: "a@example.com", Password: "passw0rdX"}},
	}
	for _, tt := range tests {
		if _, err := svc.Register(context.Background(), &tt.req); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%s: err = %v, want ErrValidationFailed", tt.name, err)
		}
	}
}
