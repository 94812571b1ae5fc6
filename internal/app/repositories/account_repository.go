package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/dberrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

// AccountRepository handles account database operations
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

// CreateAccount creates a new account. Emails are stored lower-cased.
func (r *AccountRepository) CreateAccount(ctx context.Context, account *models.Account) (int64, error) {
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))

	err := r.db.QueryRow(ctx, `
		INSERT INTO accounts (name, email, password, role_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		account.Name, account.Email, account.Password, string(account.RoleType)).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", account.Email).Msg("Error creating account")
		return 0, fmt.Errorf("error creating account: %w", err)
	}

	return account.ID, nil
}

// GetAccountByEmail retrieves an account by email
func (r *AccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, role_type, created_at
		FROM accounts
		WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))).Scan(
		&account.ID, &account.Name, &account.Email, &account.Password, &account.RoleType, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error getting account by email: %w", err)
	}

	return account, nil
}

// GetAccountByID retrieves an account by ID
func (r *AccountRepository) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	account := &models.Account{}
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, role_type, created_at
		FROM accounts
		WHERE id = $1`,
		id).Scan(
		&account.ID, &account.Name, &account.Email, &account.Password, &account.RoleType, &account.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("error getting account by ID: %w", err)
	}

	return account, nil
}
