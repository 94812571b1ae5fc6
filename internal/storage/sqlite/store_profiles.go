package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

// GetProfileByAccountID returns the profile owned by an account.
func (s *Store) GetProfileByAccountID(ctx context.Context, accountID int64) (*models.StudentProfile, error) {
	query, args, err := s.sb.Select(
		"id", "account_id", "date_of_birth", "gender", "nationality", "citizenship",
		"education_level", "field_of_study", "cgpa", "graduation_year",
		"family_income", "financial_aid_needed",
		"extracurriculars", "achievements", "disabilities", "minority_groups",
		"created_at", "updated_at",
	).
		From("student_profiles").
		Where(squirrel.Eq{"account_id": accountID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile query: %w", err)
	}

	p := &models.StudentProfile{}
	var (
		dob                                                    sql.NullString
		cgpa, income                                           sql.NullFloat64
		graduationYear                                         sql.NullInt64
		extracurriculars, achievements, disabilities, minority string
		createdAt, updatedAt                                   int64
	)
	err = s.sqlDB.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.AccountID, &dob, &p.Gender, &p.Nationality, &p.Citizenship,
		&p.EducationLevel, &p.FieldOfStudy, &cgpa, &graduationYear,
		&income, &p.FinancialAidNeeded,
		&extracurriculars, &achievements, &disabilities, &minority,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	p.DateOfBirth = datePtr(dob)
	p.CGPA = floatPtr(cgpa)
	p.GraduationYear = intPtr(graduationYear)
	p.FamilyIncome = floatPtr(income)
	p.Extracurriculars = models.ParseStringList(extracurriculars)
	p.Achievements = models.ParseStringList(achievements)
	p.Disabilities = models.ParseStringList(disabilities)
	p.MinorityGroups = models.ParseStringList(minority)
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

// SaveProfile inserts the profile or updates the one already owned by its account.
func (s *Store) SaveProfile(ctx context.Context, p *models.StudentProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := toMillis(s.now())

	query, args, err := s.sb.Insert("student_profiles").
		Columns(
			"account_id", "date_of_birth", "gender", "nationality", "citizenship",
			"education_level", "field_of_study", "cgpa", "graduation_year",
			"family_income", "financial_aid_needed",
			"extracurriculars", "achievements", "disabilities", "minority_groups",
			"created_at", "updated_at",
		).
		Values(
			p.AccountID, nullDate(p.DateOfBirth), p.Gender, p.Nationality, p.Citizenship,
			string(p.EducationLevel), p.FieldOfStudy, nullFloat(p.CGPA), nullInt(p.GraduationYear),
			nullFloat(p.FamilyIncome), p.FinancialAidNeeded,
			p.Extracurriculars.Encode(), p.Achievements.Encode(),
			p.Disabilities.Encode(), p.MinorityGroups.Encode(),
			now, now,
		).
		Suffix(`ON CONFLICT (account_id) DO UPDATE SET
			date_of_birth = excluded.date_of_birth,
			gender = excluded.gender,
			nationality = excluded.nationality,
			citizenship = excluded.citizenship,
			education_level = excluded.education_level,
			field_of_study = excluded.field_of_study,
			cgpa = excluded.cgpa,
			graduation_year = excluded.graduation_year,
			family_income = excluded.family_income,
			financial_aid_needed = excluded.financial_aid_needed,
			extracurriculars = excluded.extracurriculars,
			achievements = excluded.achievements,
			disabilities = excluded.disabilities,
			minority_groups = excluded.minority_groups,
			updated_at = excluded.updated_at
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save profile query: %w", err)
	}

	var createdAt, updatedAt int64
	if err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return nil
}
