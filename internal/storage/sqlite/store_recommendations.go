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

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DeleteRecommendationsFor removes every recommendation of a student.
func (s *Store) DeleteRecommendationsFor(ctx context.Context, studentID int64) error {
	return s.deleteRecommendations(ctx, s.sqlDB, studentID)
}

// InsertRecommendations inserts recs as one multi-row statement.
func (s *Store) InsertRecommendations(ctx context.Context, recs []models.Recommendation) error {
	return s.insertRecommendations(ctx, s.sqlDB, recs)
}

// ReplaceRecommendations swaps the student's recommendation set in one transaction.
func (s *Store) ReplaceRecommendations(ctx context.Context, studentID int64, recs []models.Recommendation) (int, error) {
	if err := s.replace(ctx, studentID, recs); err != nil {
		if errors.Is(err, apperrors.ErrProfileNotFound) {
			return 0, err
		}
		return 0, apperrors.Persistence("replace recommendations", err)
	}
	return len(recs), nil
}

func (s *Store) replace(ctx context.Context, studentID int64, recs []models.Recommendation) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var found int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM student_profiles WHERE id = ?", studentID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.ErrProfileNotFound
	}
	if err != nil {
		return fmt.Errorf("check profile: %w", err)
	}

	if err := s.deleteRecommendations(ctx, tx, studentID); err != nil {
		return err
	}
	if err := s.insertRecommendations(ctx, tx, recs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	committed = true
	return nil
}

func (s *Store) deleteRecommendations(ctx context.Context, q execer, studentID int64) error {
	query, args, err := s.sb.Delete("scholarship_recommendations").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete recommendations query: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete recommendations: %w", err)
	}
	return nil
}

func (s *Store) insertRecommendations(ctx context.Context, q execer, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	now := toMillis(s.now())

	builder := s.sb.Insert("scholarship_recommendations").
		Columns("student_id", "scholarship_id", "match_score", "reason", "created_at")
	for _, rec := range recs {
		builder = builder.Values(rec.StudentID, rec.ScholarshipID, rec.MatchScore, rec.Reason, now)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build insert recommendations query: %w", err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert recommendations: %w", err)
	}
	return nil
}

// ListRecommendationsFor returns the student's rows joined with their scholarships,
// ordered by score descending and then scholarship id.
func (s *Store) ListRecommendationsFor(ctx context.Context, studentID int64, limit int) ([]*models.Recommendation, error) {
	columns := []string{"r.id", "r.student_id", "r.scholarship_id", "r.match_score", "r.reason", "r.created_at"}
	for _, c := range scholarshipColumns {
		columns = append(columns, "s."+c)
	}

	builder := s.sb.Select(columns...).
		From("scholarship_recommendations r").
		Join("scholarships s ON s.id = r.scholarship_id").
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("r.match_score DESC", "r.scholarship_id ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list recommendations query: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}
	defer rows.Close()

	recs := []*models.Recommendation{}
	for rows.Next() {
		rec := &models.Recommendation{Scholarship: &models.Scholarship{}}
		var createdAt int64
		if err := scanScholarship(rows, rec.Scholarship,
			&rec.ID, &rec.StudentID, &rec.ScholarshipID, &rec.MatchScore, &rec.Reason, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan recommendation: %w", err)
		}
		rec.CreatedAt = fromMillis(createdAt)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recommendations: %w", err)
	}
	return recs, nil
}
