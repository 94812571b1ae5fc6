package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	Accounts        AccountStore
	Profiles        ProfileStore
	Scholarships    ScholarshipStore
	Recommendations RecommendationStore
	Health          Pinger
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Accounts:        NewAccountRepository(db),
		Profiles:        NewProfileRepository(db),
		Scholarships:    NewScholarshipRepository(db),
		Recommendations: NewRecommendationRepository(db),
		Health:          db,
	}
}

// FromStore exposes a single-backend store through the repository container
func FromStore(store Store) *Repositories {
	return &Repositories{
		Accounts:        store,
		Profiles:        store,
		Scholarships:    store,
		Recommendations: store,
		Health:          store,
	}
}
