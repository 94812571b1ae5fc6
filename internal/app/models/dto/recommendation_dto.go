package dto

import (
	"time"

	"github.com/yigit/scholarmatch/internal/app/engine"
	"github.com/yigit/scholarmatch/internal/app/models"
)

// RecommendationResponse represents one stored recommendation
type RecommendationResponse struct {
	ScholarshipID int64                `json:"scholarshipId"`
	MatchScore    int                  `json:"matchScore" example:"85"`
	Reasons       []string             `json:"reasons"`
	CreatedAt     time.Time            `json:"createdAt"`
	Scholarship   *ScholarshipResponse `json:"scholarship,omitempty"`
}

// NewRecommendationResponse maps a stored recommendation to its API form
func NewRecommendationResponse(r *models.Recommendation, today time.Time) RecommendationResponse {
	resp := RecommendationResponse{
		ScholarshipID: r.ScholarshipID,
		MatchScore:    r.MatchScore,
		Reasons:       r.Reasons(),
		CreatedAt:     r.CreatedAt,
	}
	if r.Scholarship != nil {
		s := NewScholarshipResponse(r.Scholarship, today)
		resp.Scholarship = &s
	}
	return resp
}

// RecommendationListResponse represents a student's current recommendations
type RecommendationListResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
	Count           int                      `json:"count"`
}

// RefreshResponse reports how many recommendations a refresh wrote
type RefreshResponse struct {
	Count int `json:"count" example:"4"`
}

// PreviewMatch represents one computed, unsaved match
type PreviewMatch struct {
	ScholarshipID int64    `json:"scholarshipId"`
	Score         int      `json:"score"`
	Reasons       []string `json:"reasons"`
	Fallback      bool     `json:"fallback"`
}

// NewPreviewMatches maps engine matches to their API form
func NewPreviewMatches(matches []engine.Match) []PreviewMatch {
	out := make([]PreviewMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, PreviewMatch{
			ScholarshipID: m.ScholarshipID,
			Score:         m.Score,
			Reasons:       m.Reasons,
			Fallback:      m.Fallback,
		})
	}
	return out
}
