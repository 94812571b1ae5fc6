package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/db"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

// execer is the subset of pgxpool.Pool and pgx.Tx the write helpers need.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RecommendationRepository handles recommendation database operations
type RecommendationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRecommendationRepository creates a new RecommendationRepository
func NewRecommendationRepository(db *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// DeleteRecommendationsFor removes every recommendation of a student
func (r *RecommendationRepository) DeleteRecommendationsFor(ctx context.Context, studentID int64) error {
	return r.deleteFor(ctx, r.db, studentID)
}

// InsertRecommendations inserts recs as one multi-row statement
func (r *RecommendationRepository) InsertRecommendations(ctx context.Context, recs []models.Recommendation) error {
	return r.insert(ctx, r.db, recs)
}

// ReplaceRecommendations swaps the student's recommendation set inside one transaction.
// The student's profile row is locked first so concurrent refreshes of the same
// student run one after the other. A missing profile returns ErrProfileNotFound unwrapped.
func (r *RecommendationRepository) ReplaceRecommendations(ctx context.Context, studentID int64, recs []models.Recommendation) (int, error) {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		lockSQL, lockArgs, err := r.sb.Select("id").
			From("student_profiles").
			Where(squirrel.Eq{"id": studentID}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build lock profile query: %w", err)
		}

		var lockedID int64
		if err := tx.QueryRow(ctx, lockSQL, lockArgs...).Scan(&lockedID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrProfileNotFound
			}
			return fmt.Errorf("error locking profile: %w", err)
		}

		if err := r.deleteFor(ctx, tx, studentID); err != nil {
			return err
		}
		return r.insert(ctx, tx, recs)
	})
	if errors.Is(err, apperrors.ErrProfileNotFound) {
		return 0, err
	}
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int("count", len(recs)).Msg("Replacing recommendations failed, previous set kept")
		return 0, apperrors.Persistence("replace recommendations", err)
	}

	return len(recs), nil
}

func (r *RecommendationRepository) deleteFor(ctx context.Context, q execer, studentID int64) error {
	sql, args, err := r.sb.Delete("scholarship_recommendations").
		Where(squirrel.Eq{"student_id": studentID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete recommendations SQL")
		return fmt.Errorf("failed to build delete recommendations query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error deleting recommendations")
		return fmt.Errorf("error deleting recommendations: %w", err)
	}
	return nil
}

func (r *RecommendationRepository) insert(ctx context.Context, q execer, recs []models.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}

	builder := r.sb.Insert("scholarship_recommendations").
		Columns("student_id", "scholarship_id", "match_score", "reason")
	for _, rec := range recs {
		builder = builder.Values(rec.StudentID, rec.ScholarshipID, rec.MatchScore, rec.Reason)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert recommendations SQL")
		return fmt.Errorf("failed to build insert recommendations query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int("count", len(recs)).Msg("Error inserting recommendations")
		return fmt.Errorf("error inserting recommendations: %w", err)
	}
	return nil
}

// ListRecommendationsFor returns the student's recommendations with their scholarships
func (r *RecommendationRepository) ListRecommendationsFor(ctx context.Context, studentID int64, limit int) ([]*models.Recommendation, error) {
	columns := append([]string{"r.id", "r.student_id", "r.scholarship_id", "r.match_score", "r.reason", "r.created_at"},
		prefixColumns("s", scholarshipColumns)...)

	query := r.sb.Select(columns...).
		From("scholarship_recommendations r").
		Join("scholarships s ON s.id = r.scholarship_id").
		Where(squirrel.Eq{"r.student_id": studentID}).
		OrderBy("r.match_score DESC", "r.scholarship_id ASC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list recommendations SQL")
		return nil, fmt.Errorf("failed to build list recommendations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list recommendations query")
		return nil, fmt.Errorf("error querying recommendations: %w", err)
	}
	defer rows.Close()

	recs := []*models.Recommendation{}
	for rows.Next() {
		rec := &models.Recommendation{Scholarship: &models.Scholarship{}}
		if err := scanScholarship(rows, rec.Scholarship,
			&rec.ID, &rec.StudentID, &rec.ScholarshipID, &rec.MatchScore, &rec.Reason, &rec.CreatedAt,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning recommendation row")
			return nil, fmt.Errorf("error scanning recommendation row: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating recommendation rows")
		return nil, fmt.Errorf("error iterating recommendation rows: %w", err)
	}

	return recs, nil
}
