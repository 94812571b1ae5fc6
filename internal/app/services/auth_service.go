package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/auth"
	"github.com/yigit/scholarmatch/internal/pkg/validation"
)

// AuthService handles registration and login
type AuthService struct {
	accounts   repositories.AccountStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(accounts repositories.AccountStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		accounts:   accounts,
		jwtService: jwtService,
		logger:     logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(email) {
		return fmt.Errorf("%w: email format is invalid", apperrors.ErrValidationFailed)
	}
	return nil
}

// validatePassword checks if password meets requirements
func (s *AuthService) validatePassword(password string) error {
	strength := validation.CheckPassword(password)
	if !strength.LongEnough {
		return fmt.Errorf("%w: password must be at least %d characters long", apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}
	if !strength.HasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrValidationFailed)
	}
	if !strength.HasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrValidationFailed)
	}
	return nil
}

// Register creates a student account and logs it in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(req.Password); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if !validation.IsValidName(name) {
		return nil, fmt.Errorf("%w: name must be between %d and %d characters", apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
		RoleType: models.RoleStudent,
	}
	id, err := s.accounts.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("account creation error: %w", err)
	}
	account.ID = id

	s.logger.Info().Int64("accountID", id).Msg("Account registered")
	return s.authResponse(account)
}

// Login authenticates an account by email and password
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validateEmail(email); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !auth.CheckPassword(account.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(account)
}

// GetAccount retrieves the public account information
func (s *AuthService) GetAccount(ctx context.Context, accountID int64) (*dto.AccountResponse, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("%w: account ID must be positive", apperrors.ErrValidationFailed)
	}
	account, err := s.accounts.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAccountResponse(account)
	return &resp, nil
}

func (s *AuthService) authResponse(account *models.Account) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateAccessToken(account)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   int64(expiresIn),
		},
		Account: dto.NewAccountResponse(account),
	}, nil
}
