// Package sqlite provides an embedded SQLite implementation of the scholarship,
// profile, account and recommendation stores.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

var _ repositories.Store = (*Store)(nil)

// Store persists scholarship matching state in SQLite.
type Store struct {
	sqlDB *sql.DB
	sb    squirrel.StatementBuilderType
	now   func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store and applies embedded migrations. Write transactions
// take the database lock when they begin, so concurrent writers run one at a time.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		sqlDB: sqlDB,
		sb:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		now:   time.Now,
	}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Ping checks the database handle.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// CreateAccount inserts one account and fills in its ID and creation time.
func (s *Store) CreateAccount(ctx context.Context, account *models.Account) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	account.Email = strings.ToLower(strings.TrimSpace(account.Email))
	createdAt := s.now().UTC()

	query, args, err := s.sb.Insert("accounts").
		Columns("name", "email", "password", "role_type", "created_at").
		Values(account.Name, account.Email, account.Password, string(account.RoleType), toMillis(createdAt)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create account query: %w", err)
	}

	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		return 0, fmt.Errorf("create account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read account id: %w", err)
	}
	account.ID = id
	account.CreatedAt = fromMillis(toMillis(createdAt))
	return id, nil
}

// GetAccountByEmail returns one account by email.
func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return s.getAccount(ctx, squirrel.Eq{"email": strings.ToLower(strings.TrimSpace(email))})
}

// GetAccountByID returns one account by ID.
func (s *Store) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	return s.getAccount(ctx, squirrel.Eq{"id": id})
}

func (s *Store) getAccount(ctx context.Context, where squirrel.Eq) (*models.Account, error) {
	query, args, err := s.sb.Select("id", "name", "email", "password", "role_type", "created_at").
		From("accounts").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get account query: %w", err)
	}

	account := &models.Account{}
	var createdAt int64
	err = s.sqlDB.QueryRowContext(ctx, query, args...).Scan(
		&account.ID, &account.Name, &account.Email, &account.Password, &account.RoleType, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	account.CreatedAt = fromMillis(createdAt)
	return account, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullDate(v *time.Time) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format(models.DateLayout), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// datePtr parses a stored calendar date; unparseable values read as unknown.
func datePtr(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(models.DateLayout, v.String)
	if err != nil {
		return nil
	}
	return &t
}
