package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/engine"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

// RecommendationService defines the interface for recommendation operations
type RecommendationService interface {
	// ComputeRecommendations scores the profile against the catalog without writing anything.
	ComputeRecommendations(ctx context.Context, profile *models.StudentProfile) ([]engine.Match, error)
	// RefreshRecommendations replaces the profile's stored recommendations and returns the rows written.
	RefreshRecommendations(ctx context.Context, profile *models.StudentProfile) (int, error)
	RefreshForAccount(ctx context.Context, accountID int64) (int, error)
	ListForAccount(ctx context.Context, accountID int64, limit int) ([]*models.Recommendation, error)
	PreviewForAccount(ctx context.Context, accountID int64) ([]engine.Match, error)
}

// recommendationServiceImpl implements the RecommendationService interface
type recommendationServiceImpl struct {
	profiles        repositories.ProfileStore
	catalog         repositories.ScholarshipCatalog
	recommendations repositories.RecommendationStore
	builder         *engine.Builder
	defaultLimit    int
	logger          zerolog.Logger
}

// NewRecommendationService creates a new recommendation service instance.
// defaultLimit applies to listings that do not ask for a limit.
func NewRecommendationService(
	profiles repositories.ProfileStore,
	catalog repositories.ScholarshipCatalog,
	recommendations repositories.RecommendationStore,
	builder *engine.Builder,
	defaultLimit int,
	logger zerolog.Logger,
) RecommendationService {
	return &recommendationServiceImpl{
		profiles:        profiles,
		catalog:         catalog,
		recommendations: recommendations,
		builder:         builder,
		defaultLimit:    defaultLimit,
		logger:          logger,
	}
}

func (s *recommendationServiceImpl) validateProfile(profile *models.StudentProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", apperrors.ErrValidationFailed)
	}
	if profile.ID <= 0 {
		return fmt.Errorf("%w: profile has not been saved", apperrors.ErrValidationFailed)
	}
	return nil
}

// ComputeRecommendations returns the rule-based matches for the profile, best first
func (s *recommendationServiceImpl) ComputeRecommendations(ctx context.Context, profile *models.StudentProfile) ([]engine.Match, error) {
	if profile == nil {
		return []engine.Match{}, nil
	}

	catalog, err := s.catalog.ListActiveScholarships(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scholarship catalog: %w", err)
	}
	return s.builder.Compute(profile, catalog), nil
}

// RefreshRecommendations recomputes and atomically replaces the stored set.
// When nothing scores above zero the stored set is topped up with fallback entries.
// A profile deleted since it was loaded has nothing to refresh.
func (s *recommendationServiceImpl) RefreshRecommendations(ctx context.Context, profile *models.StudentProfile) (int, error) {
	if err := s.validateProfile(profile); err != nil {
		return 0, err
	}

	catalog, err := s.catalog.ListActiveScholarships(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load scholarship catalog: %w", err)
	}
	return s.refresh(ctx, profile, catalog)
}

func (s *recommendationServiceImpl) refresh(ctx context.Context, profile *models.StudentProfile, catalog []*models.Scholarship) (int, error) {
	matches := s.builder.Build(profile, catalog)
	recs := make([]models.Recommendation, 0, len(matches))
	fallback := 0
	for _, m := range matches {
		if m.Fallback {
			fallback++
		}
		recs = append(recs, m.Recommendation(profile.ID))
	}

	written, err := s.recommendations.ReplaceRecommendations(ctx, profile.ID, recs)
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		s.logger.Warn().Int64("studentID", profile.ID).Msg("Profile removed before refresh, nothing stored")
		return 0, nil
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", profile.ID).Msg("Failed to replace recommendations")
		return 0, err
	}

	s.logger.Info().
		Int64("studentID", profile.ID).
		Int("catalogSize", len(catalog)).
		Int("written", written).
		Int("fallback", fallback).
		Msg("Recommendations refreshed")
	return written, nil
}

// RefreshForAccount refreshes the recommendations of the account's profile.
// An account without a profile has nothing to refresh.
func (s *recommendationServiceImpl) RefreshForAccount(ctx context.Context, accountID int64) (int, error) {
	profile, err := s.profileFor(ctx, accountID)
	if err != nil || profile == nil {
		return 0, err
	}
	return s.RefreshRecommendations(ctx, profile)
}

// ListForAccount returns the stored recommendations of the account's profile,
// refreshing first when a profiled student has none stored yet.
func (s *recommendationServiceImpl) ListForAccount(ctx context.Context, accountID int64, limit int) ([]*models.Recommendation, error) {
	profile, err := s.profileFor(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []*models.Recommendation{}, nil
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}

	recs, err := s.recommendations.ListRecommendationsFor(ctx, profile.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	if len(recs) > 0 {
		return recs, nil
	}

	catalog, err := s.catalog.ListActiveScholarships(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scholarship catalog: %w", err)
	}
	if len(catalog) == 0 {
		return []*models.Recommendation{}, nil
	}
	written, err := s.refresh(ctx, profile, catalog)
	if err != nil {
		return nil, err
	}
	if written == 0 {
		return []*models.Recommendation{}, nil
	}
	recs, err = s.recommendations.ListRecommendationsFor(ctx, profile.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

// PreviewForAccount computes what a refresh would store, fallback included, without storing it
func (s *recommendationServiceImpl) PreviewForAccount(ctx context.Context, accountID int64) ([]engine.Match, error) {
	profile, err := s.profileFor(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []engine.Match{}, nil
	}

	catalog, err := s.catalog.ListActiveScholarships(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scholarship catalog: %w", err)
	}
	return s.builder.Build(profile, catalog), nil
}

// profileFor returns nil without an error when the account has no profile
func (s *recommendationServiceImpl) profileFor(ctx context.Context, accountID int64) (*models.StudentProfile, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("%w: account ID must be positive", apperrors.ErrValidationFailed)
	}
	profile, err := s.profiles.GetProfileByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}
