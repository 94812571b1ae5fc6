package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

// scholarshipColumns is the scan order used by scanScholarship.
var scholarshipColumns = []string{
	"id", "title", "provider", "amount", "deadline", "description", "eligibility",
	"application_process", "website", "scholarship_type", "education_level",
	"min_cgpa", "min_age", "max_age", "income_min", "income_max",
	"citizenship_requirements", "field_of_study_requirements",
	"minority_preferences", "disability_preferences",
	"created_at", "updated_at",
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func prefixColumns(prefix string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, c := range columns {
		prefixed[i] = prefix + "." + c
	}
	return prefixed
}

// scanScholarship scans the scholarship columns after any leading dest values.
func scanScholarship(row rowScanner, s *models.Scholarship, leading ...any) error {
	var citizenship, fields, minority, disability string
	dest := append(leading,
		&s.ID, &s.Title, &s.Provider, &s.Amount, &s.Deadline, &s.Description, &s.Eligibility,
		&s.ApplicationProcess, &s.Website, &s.ScholarshipType, &s.EducationLevel,
		&s.MinCGPA, &s.MinAge, &s.MaxAge, &s.IncomeMin, &s.IncomeMax,
		&citizenship, &fields, &minority, &disability,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	s.CitizenshipRequirements = models.ParseStringList(citizenship)
	s.FieldOfStudyRequirements = models.ParseStringList(fields)
	s.MinorityPreferences = models.ParseStringList(minority)
	s.DisabilityPreferences = models.ParseStringList(disability)
	return nil
}

// ScholarshipRepository handles scholarship database operations
type ScholarshipRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewScholarshipRepository creates a new ScholarshipRepository
func NewScholarshipRepository(db *pgxpool.Pool) *ScholarshipRepository {
	return &ScholarshipRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListActiveScholarships returns the full catalog ordered by id.
func (r *ScholarshipRepository) ListActiveScholarships(ctx context.Context) ([]*models.Scholarship, error) {
	sql, args, err := r.sb.Select(scholarshipColumns...).
		From("scholarships").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list scholarships SQL")
		return nil, fmt.Errorf("failed to build list scholarships query: %w", err)
	}

	return r.queryScholarships(ctx, sql, args)
}

// GetScholarships returns one page of the catalog and the total count.
func (r *ScholarshipRepository) GetScholarships(ctx context.Context, offset uint64, limit int) ([]*models.Scholarship, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("scholarships").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count scholarships SQL")
		return nil, 0, fmt.Errorf("failed to build count scholarships query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting scholarships")
		return nil, 0, fmt.Errorf("error counting scholarships: %w", err)
	}

	sql, args, err := r.sb.Select(scholarshipColumns...).
		From("scholarships").
		OrderBy("deadline ASC", "id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get scholarships SQL")
		return nil, 0, fmt.Errorf("failed to build get scholarships query: %w", err)
	}

	scholarships, err := r.queryScholarships(ctx, sql, args)
	if err != nil {
		return nil, 0, err
	}
	return scholarships, total, nil
}

func (r *ScholarshipRepository) queryScholarships(ctx context.Context, sql string, args []any) ([]*models.Scholarship, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing scholarships query")
		return nil, fmt.Errorf("error querying scholarships: %w", err)
	}
	defer rows.Close()

	scholarships := []*models.Scholarship{}
	for rows.Next() {
		s := &models.Scholarship{}
		if err := scanScholarship(rows, s); err != nil {
			logger.Error().Err(err).Msg("Error scanning scholarship row")
			return nil, fmt.Errorf("error scanning scholarship row: %w", err)
		}
		scholarships = append(scholarships, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating scholarship rows")
		return nil, fmt.Errorf("error iterating scholarship rows: %w", err)
	}

	return scholarships, nil
}

// GetScholarshipByID retrieves a scholarship by ID
func (r *ScholarshipRepository) GetScholarshipByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	sql, args, err := r.sb.Select(scholarshipColumns...).
		From("scholarships").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get scholarship by ID SQL")
		return nil, fmt.Errorf("failed to build get scholarship query: %w", err)
	}

	s := &models.Scholarship{}
	if err := scanScholarship(r.db.QueryRow(ctx, sql, args...), s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrScholarshipNotFound
		}
		logger.Error().Err(err).Int64("scholarshipID", id).Msg("Error scanning scholarship row")
		return nil, fmt.Errorf("error getting scholarship by ID: %w", err)
	}

	return s, nil
}

// CreateScholarship inserts a scholarship and returns its ID
func (r *ScholarshipRepository) CreateScholarship(ctx context.Context, s *models.Scholarship) (int64, error) {
	sql, args, err := r.sb.Insert("scholarships").
		Columns(
			"title", "provider", "amount", "deadline", "description", "eligibility",
			"application_process", "website", "scholarship_type", "education_level",
			"min_cgpa", "min_age", "max_age", "income_min", "income_max",
			"citizenship_requirements", "field_of_study_requirements",
			"minority_preferences", "disability_preferences",
		).
		Values(
			s.Title, s.Provider, s.Amount, s.Deadline, s.Description, s.Eligibility,
			s.ApplicationProcess, s.Website, string(s.ScholarshipType), string(s.EducationLevel),
			s.MinCGPA, s.MinAge, s.MaxAge, s.IncomeMin, s.IncomeMax,
			s.CitizenshipRequirements.Encode(), s.FieldOfStudyRequirements.Encode(),
			s.MinorityPreferences.Encode(), s.DisabilityPreferences.Encode(),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create scholarship SQL")
		return 0, fmt.Errorf("failed to build create scholarship query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("title", s.Title).Msg("Error executing create scholarship query")
		return 0, fmt.Errorf("error creating scholarship: %w", err)
	}

	return s.ID, nil
}

// DeleteScholarship deletes a scholarship; its recommendations go with it.
func (r *ScholarshipRepository) DeleteScholarship(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("scholarships").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete scholarship SQL")
		return fmt.Errorf("failed to build delete scholarship query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("scholarshipID", id).Msg("Error executing delete scholarship query")
		return fmt.Errorf("error deleting scholarship: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrScholarshipNotFound
	}

	return nil
}
