package models

import (
	"strings"
	"time"
)

// ReasonSeparator joins the entries of a reason trail in the stored reason text.
const ReasonSeparator = "\n"

// Recommendation ties one student to one scholarship with a score in [0,100].
// Rows are derived data: they are only ever written by a full refresh.
type Recommendation struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	ScholarshipID int64     `json:"scholarshipId" db:"scholarship_id"`
	MatchScore    int       `json:"matchScore" db:"match_score"`
	Reason        string    `json:"reason" db:"reason"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	Scholarship *Scholarship `json:"scholarship,omitempty"` // Relation, no db tag
}

// Reasons splits the stored reason text back into its trail entries.
func (r *Recommendation) Reasons() []string {
	if r.Reason == "" {
		return []string{}
	}
	return strings.Split(r.Reason, ReasonSeparator)
}
