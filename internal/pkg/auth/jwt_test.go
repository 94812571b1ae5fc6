package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: exp, TokenIssuer: "test"})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(time.Hour)
	account := &models.Account{ID: 42, Email: "a@example.com", RoleType: models.RoleAdmin}

	token, expiresIn, err := svc.GenerateAccessToken(account)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateAndExtractClaims(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.AccountID != 42 || claims.Email != "a@example.com" || claims.RoleType != string(models.RoleAdmin) {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestValidateRejectsExpiredAndForeignTokens(t *testing.T) {
	t.Parallel()

	account := &models.Account{ID: 1, Email: "a@example.com", RoleType: models.RoleStudent}

	expired, _, err := newTestService(-time.Minute).GenerateAccessToken(account)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := newTestService(time.Hour).ValidateToken(expired); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expired err = %v, want ErrExpiredToken", err)
	}

	foreign, _, err := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour}).GenerateAccessToken(account)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := newTestService(time.Hour).ValidateToken(foreign); err == nil {
		t.Fatal("expected signature error")
	}

	otherIssuer, _, err := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "elsewhere"}).GenerateAccessToken(account)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := newTestService(time.Hour).ValidateToken(otherIssuer); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("other issuer err = %v, want ErrInvalidToken", err)
	}

	if _, err := newTestService(time.Hour).ValidateToken("not-a-jwt"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("malformed err = %v, want ErrInvalidFormat", err)
	}

	if _, err := newTestService(time.Hour).ValidateAndExtractClaims(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("empty token err = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	if got, err := ExtractBearerToken("Bearer abc"); err != nil || got != "abc" {
		t.Fatalf("ExtractBearerToken = (%q, %v)", got, err)
	}
	if got, err := ExtractBearerToken("abc"); err != nil || got != "abc" {
		t.Fatalf("ExtractBearerToken without scheme = (%q, %v)", got, err)
	}
	for _, header := range []string{"", "Bearer ", "Bearer    "} {
		if _, err := ExtractBearerToken(header); !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("ExtractBearerToken(%q) err = %v", header, err)
		}
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "s3cret-pass") {
		t.Fatal("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
}
