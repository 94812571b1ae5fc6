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

var profileColumns = []string{
	"id", "account_id", "date_of_birth", "gender", "nationality", "citizenship",
	"education_level", "field_of_study", "cgpa", "graduation_year",
	"family_income", "financial_aid_needed",
	"extracurriculars", "achievements", "disabilities", "minority_groups",
	"created_at", "updated_at",
}

// ProfileRepository handles student profile database operations
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetProfileByAccountID retrieves the profile owned by an account
func (r *ProfileRepository) GetProfileByAccountID(ctx context.Context, accountID int64) (*models.StudentProfile, error) {
	sql, args, err := r.sb.Select(profileColumns...).
		From("student_profiles").
		Where(squirrel.Eq{"account_id": accountID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get profile SQL")
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	p := &models.StudentProfile{}
	var extracurriculars, achievements, disabilities, minorities string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.AccountID, &p.DateOfBirth, &p.Gender, &p.Nationality, &p.Citizenship,
		&p.EducationLevel, &p.FieldOfStudy, &p.CGPA, &p.GraduationYear,
		&p.FamilyIncome, &p.FinancialAidNeeded,
		&extracurriculars, &achievements, &disabilities, &minorities,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	p.Extracurriculars = models.ParseStringList(extracurriculars)
	p.Achievements = models.ParseStringList(achievements)
	p.Disabilities = models.ParseStringList(disabilities)
	p.MinorityGroups = models.ParseStringList(minorities)
	return p, nil
}

// SaveProfile upserts the profile by account_id
func (r *ProfileRepository) SaveProfile(ctx context.Context, p *models.StudentProfile) error {
	sql, args, err := r.sb.Insert("student_profiles").
		Columns(
			"account_id", "date_of_birth", "gender", "nationality", "citizenship",
			"education_level", "field_of_study", "cgpa", "graduation_year",
			"family_income", "financial_aid_needed",
			"extracurriculars", "achievements", "disabilities", "minority_groups",
		).
		Values(
			p.AccountID, p.DateOfBirth, p.Gender, p.Nationality, p.Citizenship,
			string(p.EducationLevel), p.FieldOfStudy, p.CGPA, p.GraduationYear,
			p.FamilyIncome, p.FinancialAidNeeded,
			p.Extracurriculars.Encode(), p.Achievements.Encode(),
			p.Disabilities.Encode(), p.MinorityGroups.Encode(),
		).
		Suffix(`ON CONFLICT (account_id) DO UPDATE SET
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			nationality = EXCLUDED.nationality,
			citizenship = EXCLUDED.citizenship,
			education_level = EXCLUDED.education_level,
			field_of_study = EXCLUDED.field_of_study,
			cgpa = EXCLUDED.cgpa,
			graduation_year = EXCLUDED.graduation_year,
			family_income = EXCLUDED.family_income,
			financial_aid_needed = EXCLUDED.financial_aid_needed,
			extracurriculars = EXCLUDED.extracurriculars,
			achievements = EXCLUDED.achievements,
			disabilities = EXCLUDED.disabilities,
			minority_groups = EXCLUDED.minority_groups,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building save profile SQL")
		return fmt.Errorf("failed to build save profile query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("accountID", p.AccountID).Msg("Error executing save profile query")
		return fmt.Errorf("error saving profile: %w", err)
	}

	return nil
}
