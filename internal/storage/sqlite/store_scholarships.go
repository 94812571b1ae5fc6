package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

var scholarshipColumns = []string{
	"id", "title", "provider", "amount", "deadline", "description", "eligibility",
	"application_process", "website", "scholarship_type", "education_level",
	"min_cgpa", "min_age", "max_age", "income_min", "income_max",
	"citizenship_requirements", "field_of_study_requirements",
	"minority_preferences", "disability_preferences",
	"created_at", "updated_at",
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanScholarship scans the scholarship columns after any leading dest values.
func scanScholarship(row rowScanner, s *models.Scholarship, leading ...any) error {
	var (
		deadline                                  string
		minCGPA, incomeMin, incomeMax             sql.NullFloat64
		minAge, maxAge                            sql.NullInt64
		citizenship, fields, minority, disability string
		createdAt, updatedAt                      int64
	)
	dest := append(leading,
		&s.ID, &s.Title, &s.Provider, &s.Amount, &deadline, &s.Description, &s.Eligibility,
		&s.ApplicationProcess, &s.Website, &s.ScholarshipType, &s.EducationLevel,
		&minCGPA, &minAge, &maxAge, &incomeMin, &incomeMax,
		&citizenship, &fields, &minority, &disability,
		&createdAt, &updatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return err
	}

	parsed, err := time.Parse(models.DateLayout, deadline)
	if err != nil {
		return fmt.Errorf("parse deadline %q: %w", deadline, err)
	}
	s.Deadline = parsed
	s.MinCGPA = floatPtr(minCGPA)
	s.MinAge = intPtr(minAge)
	s.MaxAge = intPtr(maxAge)
	s.IncomeMin = floatPtr(incomeMin)
	s.IncomeMax = floatPtr(incomeMax)
	s.CitizenshipRequirements = models.ParseStringList(citizenship)
	s.FieldOfStudyRequirements = models.ParseStringList(fields)
	s.MinorityPreferences = models.ParseStringList(minority)
	s.DisabilityPreferences = models.ParseStringList(disability)
	s.CreatedAt = fromMillis(createdAt)
	s.UpdatedAt = fromMillis(updatedAt)
	return nil
}

// ListActiveScholarships returns the whole catalog ordered by id.
func (s *Store) ListActiveScholarships(ctx context.Context) ([]*models.Scholarship, error) {
	query, args, err := s.sb.Select(scholarshipColumns...).
		From("scholarships").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list scholarships query: %w", err)
	}
	return s.queryScholarships(ctx, query, args)
}

// GetScholarships returns one page of the catalog ordered by deadline and the total count.
func (s *Store) GetScholarships(ctx context.Context, offset uint64, limit int) ([]*models.Scholarship, int64, error) {
	var total int64
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM scholarships").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count scholarships: %w", err)
	}

	query, args, err := s.sb.Select(scholarshipColumns...).
		From("scholarships").
		OrderBy("deadline ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build get scholarships query: %w", err)
	}

	scholarships, err := s.queryScholarships(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return scholarships, total, nil
}

func (s *Store) queryScholarships(ctx context.Context, query string, args []any) ([]*models.Scholarship, error) {
	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scholarships: %w", err)
	}
	defer rows.Close()

	scholarships := []*models.Scholarship{}
	for rows.Next() {
		scholarship := &models.Scholarship{}
		if err := scanScholarship(rows, scholarship); err != nil {
			return nil, fmt.Errorf("scan scholarship: %w", err)
		}
		scholarships = append(scholarships, scholarship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scholarships: %w", err)
	}
	return scholarships, nil
}

// GetScholarshipByID returns one scholarship.
func (s *Store) GetScholarshipByID(ctx context.Context, id int64) (*models.Scholarship, error) {
	query, args, err := s.sb.Select(scholarshipColumns...).
		From("scholarships").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get scholarship query: %w", err)
	}

	scholarship := &models.Scholarship{}
	if err := scanScholarship(s.sqlDB.QueryRowContext(ctx, query, args...), scholarship); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrScholarshipNotFound
		}
		return nil, fmt.Errorf("get scholarship: %w", err)
	}
	return scholarship, nil
}

// CreateScholarship inserts a scholarship and fills in its ID and timestamps.
func (s *Store) CreateScholarship(ctx context.Context, scholarship *models.Scholarship) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	now := toMillis(s.now())

	query, args, err := s.sb.Insert("scholarships").
		Columns(
			"title", "provider", "amount", "deadline", "description", "eligibility",
			"application_process", "website", "scholarship_type", "education_level",
			"min_cgpa", "min_age", "max_age", "income_min", "income_max",
			"citizenship_requirements", "field_of_study_requirements",
			"minority_preferences", "disability_preferences",
			"created_at", "updated_at",
		).
		Values(
			scholarship.Title, scholarship.Provider, scholarship.Amount,
			scholarship.Deadline.Format(models.DateLayout),
			scholarship.Description, scholarship.Eligibility,
			scholarship.ApplicationProcess, scholarship.Website,
			string(scholarship.ScholarshipType), string(scholarship.EducationLevel),
			nullFloat(scholarship.MinCGPA), nullInt(scholarship.MinAge), nullInt(scholarship.MaxAge),
			nullFloat(scholarship.IncomeMin), nullFloat(scholarship.IncomeMax),
			scholarship.CitizenshipRequirements.Encode(), scholarship.FieldOfStudyRequirements.Encode(),
			scholarship.MinorityPreferences.Encode(), scholarship.DisabilityPreferences.Encode(),
			now, now,
		).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create scholarship query: %w", err)
	}

	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("create scholarship: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read scholarship id: %w", err)
	}
	scholarship.ID = id
	scholarship.CreatedAt = fromMillis(now)
	scholarship.UpdatedAt = scholarship.CreatedAt
	return id, nil
}

// DeleteScholarship removes a scholarship and, by cascade, its recommendations.
func (s *Store) DeleteScholarship(ctx context.Context, id int64) error {
	query, args, err := s.sb.Delete("scholarships").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete scholarship query: %w", err)
	}
	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete scholarship: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scholarship rows affected: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrScholarshipNotFound
	}
	return nil
}
