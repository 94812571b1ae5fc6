package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/helpers"
)

// ScholarshipService defines the interface for catalog operations
type ScholarshipService interface {
	ListScholarships(ctx context.Context, page, pageSize int) ([]*models.Scholarship, int64, error)
	GetScholarshipByID(ctx context.Context, id int64) (*models.Scholarship, error)
	CreateScholarship(ctx context.Context, scholarship *models.Scholarship) (int64, error)
	DeleteScholarship(ctx context.Context, id int64) error
}

// scholarshipServiceImpl implements the ScholarshipService interface
type scholarshipServiceImpl struct {
	scholarships repositories.ScholarshipStore
	logger       zerolog.Logger
}

// NewScholarshipService creates a new scholarship service instance
func NewScholarshipService(scholarships repositories.ScholarshipStore, logger zerolog.Logger) ScholarshipService {
	return &scholarshipServiceImpl{
		scholarships: scholarships,
		logger:       logger,
	}
}

// validateScholarship validates scholarship data before database operations
func (s *scholarshipServiceImpl) validateScholarship(scholarship *models.Scholarship) error {
	if scholarship == nil {
		return fmt.Errorf("%w: scholarship is nil", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(scholarship.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidationFailed)
	}
	if strings.TrimSpace(scholarship.Provider) == "" {
		return fmt.Errorf("%w: provider cannot be empty", apperrors.ErrValidationFailed)
	}
	if scholarship.Amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", apperrors.ErrValidationFailed)
	}
	if scholarship.Deadline.IsZero() {
		return fmt.Errorf("%w: deadline is required", apperrors.ErrValidationFailed)
	}
	if !scholarship.ScholarshipType.IsValid() {
		return fmt.Errorf("%w: unknown scholarship type %q", apperrors.ErrValidationFailed, scholarship.ScholarshipType)
	}
	if !scholarship.EducationLevel.IsScholarshipLevel() {
		return fmt.Errorf("%w: unknown education level %q", apperrors.ErrValidationFailed, scholarship.EducationLevel)
	}
	if scholarship.MinAge != nil && scholarship.MaxAge != nil && *scholarship.MinAge > *scholarship.MaxAge {
		return fmt.Errorf("%w: minimum age is above maximum age", apperrors.ErrValidationFailed)
	}
	if scholarship.IncomeMin != nil && scholarship.IncomeMax != nil && *scholarship.IncomeMin > *scholarship.IncomeMax {
		return fmt.Errorf("%w: minimum income is above maximum income", apperrors.ErrValidationFailed)
	}
	if scholarship.MinCGPA != nil && (*scholarship.MinCGPA < 0 || *scholarship.MinCGPA > 10) {
		return fmt.Errorf("%w: minimum CGPA must be between 0 and 10", apperrors.ErrValidationFailed)
	}
	if scholarship.Website != "" {
		if u, err := url.ParseRequestURI(scholarship.Website); err != nil || u.Host == "" {
			return fmt.Errorf("%w: website must be an absolute URL", apperrors.ErrValidationFailed)
		}
	}
	return nil
}

// ListScholarships returns one page of the catalog and the total count
func (s *scholarshipServiceImpl) ListScholarships(ctx context.Context, page, pageSize int) ([]*models.Scholarship, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	return s.scholarships.GetScholarships(ctx, offset, limit)
}

// GetScholarshipByID retrieves a scholarship by ID
func (s *scholarshipServiceImpl) GetScholarshipByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: scholarship ID must be positive", apperrors.ErrValidationFailed)
	}
	return s.scholarships.GetScholarshipByID(ctx, id)
}

// CreateScholarship adds a listing to the catalog. Existing recommendations are not
// recomputed; students pick the listing up on their next refresh.
func (s *scholarshipServiceImpl) CreateScholarship(ctx context.Context, scholarship *models.Scholarship) (int64, error) {
	if err := s.validateScholarship(scholarship); err != nil {
		return 0, err
	}

	scholarship.Title = strings.TrimSpace(scholarship.Title)
	scholarship.Provider = strings.TrimSpace(scholarship.Provider)

	id, err := s.scholarships.CreateScholarship(ctx, scholarship)
	if err != nil {
		return 0, fmt.Errorf("failed to create scholarship: %w", err)
	}
	s.logger.Info().Int64("scholarshipID", id).Str("title", scholarship.Title).Msg("Scholarship created")
	return id, nil
}

// DeleteScholarship removes a listing together with every recommendation pointing at it
func (s *scholarshipServiceImpl) DeleteScholarship(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: scholarship ID must be positive", apperrors.ErrValidationFailed)
	}
	if err := s.scholarships.DeleteScholarship(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("scholarshipID", id).Msg("Scholarship deleted")
	return nil
}
