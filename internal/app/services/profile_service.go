package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

// ProfileService defines the interface for student profile operations
type ProfileService interface {
	GetProfile(ctx context.Context, accountID int64) (*models.StudentProfile, error)
	// SaveProfile stores the profile and refreshes its recommendations. It returns
	// the number of recommendations written.
	SaveProfile(ctx context.Context, profile *models.StudentProfile) (int, error)
}

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	profiles        repositories.ProfileStore
	recommendations RecommendationService
	now             func() time.Time
	logger          zerolog.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(profiles repositories.ProfileStore, recommendations RecommendationService, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		profiles:        profiles,
		recommendations: recommendations,
		now:             time.Now,
		logger:          logger,
	}
}

// validateProfile validates profile data before database operations
func (s *profileServiceImpl) validateProfile(profile *models.StudentProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", apperrors.ErrValidationFailed)
	}
	if profile.AccountID <= 0 {
		return fmt.Errorf("%w: account ID must be positive", apperrors.ErrValidationFailed)
	}
	if !profile.EducationLevel.IsStudentLevel() {
		return fmt.Errorf("%w: unknown education level %q", apperrors.ErrValidationFailed, profile.EducationLevel)
	}
	if profile.CGPA != nil && (*profile.CGPA < 0 || *profile.CGPA > 10) {
		return fmt.Errorf("%w: CGPA must be between 0 and 10", apperrors.ErrValidationFailed)
	}
	if profile.FamilyIncome != nil && *profile.FamilyIncome < 0 {
		return fmt.Errorf("%w: family income cannot be negative", apperrors.ErrValidationFailed)
	}
	if profile.DateOfBirth != nil && profile.DateOfBirth.After(s.now()) {
		return fmt.Errorf("%w: date of birth cannot be in the future", apperrors.ErrValidationFailed)
	}
	return nil
}

// GetProfile retrieves the profile owned by an account
func (s *profileServiceImpl) GetProfile(ctx context.Context, accountID int64) (*models.StudentProfile, error) {
	if accountID <= 0 {
		return nil, fmt.Errorf("%w: account ID must be positive", apperrors.ErrValidationFailed)
	}
	return s.profiles.GetProfileByAccountID(ctx, accountID)
}

// SaveProfile inserts or updates the profile, then refreshes its recommendations
func (s *profileServiceImpl) SaveProfile(ctx context.Context, profile *models.StudentProfile) (int, error) {
	if err := s.validateProfile(profile); err != nil {
		return 0, err
	}

	profile.Gender = strings.TrimSpace(profile.Gender)
	profile.Nationality = strings.TrimSpace(profile.Nationality)
	profile.Citizenship = strings.TrimSpace(profile.Citizenship)
	profile.FieldOfStudy = strings.TrimSpace(profile.FieldOfStudy)

	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return 0, fmt.Errorf("failed to save profile: %w", err)
	}

	count, err := s.recommendations.RefreshRecommendations(ctx, profile)
	if err != nil {
		s.logger.Error().Err(err).Int64("profileID", profile.ID).Msg("Profile saved but recommendation refresh failed")
		return 0, err
	}

	s.logger.Info().Int64("accountID", profile.AccountID).Int("recommendations", count).Msg("Profile saved")
	return count, nil
}
