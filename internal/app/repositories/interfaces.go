package repositories

import (
	"context"

	"github.com/yigit/scholarmatch/internal/app/models"
)

// ScholarshipCatalog is the read side the recommendation engine consumes.
type ScholarshipCatalog interface {
	// ListActiveScholarships returns the whole catalog in catalog order (id ascending).
	ListActiveScholarships(ctx context.Context) ([]*models.Scholarship, error)
}

// ScholarshipStore manages the scholarship catalog.
type ScholarshipStore interface {
	ScholarshipCatalog
	GetScholarshipByID(ctx context.Context, id int64) (*models.Scholarship, error)
	GetScholarships(ctx context.Context, offset uint64, limit int) ([]*models.Scholarship, int64, error)
	CreateScholarship(ctx context.Context, scholarship *models.Scholarship) (int64, error)
	DeleteScholarship(ctx context.Context, id int64) error
}

// ProfileStore persists student profiles, one per account.
type ProfileStore interface {
	GetProfileByAccountID(ctx context.Context, accountID int64) (*models.StudentProfile, error)
	// SaveProfile inserts or updates the profile keyed by its account and fills in
	// ID, CreatedAt and UpdatedAt.
	SaveProfile(ctx context.Context, profile *models.StudentProfile) error
}

// RecommendationStore persists derived recommendation rows.
type RecommendationStore interface {
	DeleteRecommendationsFor(ctx context.Context, studentID int64) error
	InsertRecommendations(ctx context.Context, recs []models.Recommendation) error
	// ReplaceRecommendations deletes the student's rows and inserts recs as one unit.
	// On failure the previous rows are left untouched. A student without a profile
	// row yields apperrors.ErrProfileNotFound.
	ReplaceRecommendations(ctx context.Context, studentID int64, recs []models.Recommendation) (int, error)
	// ListRecommendationsFor returns rows ordered by score descending, then scholarship id.
	// A limit of zero or less returns every row.
	ListRecommendationsFor(ctx context.Context, studentID int64, limit int) ([]*models.Recommendation, error)
}

// AccountStore persists login accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *models.Account) (int64, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*models.Account, error)
}

// Pinger reports whether the storage backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is a complete storage backend.
type Store interface {
	AccountStore
	ProfileStore
	ScholarshipStore
	RecommendationStore
	Pinger
}
