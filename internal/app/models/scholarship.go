package models

import (
	"time"
)

// DeadlineWarningWindow is how close a deadline must be to count as approaching.
const DeadlineWarningWindow = 30 * 24 * time.Hour

// Scholarship is one catalog listing together with its eligibility constraints.
type Scholarship struct {
	ID                 int64           `json:"id" db:"id"`
	Title              string          `json:"title" db:"title"`
	Provider           string          `json:"provider" db:"provider"`
	Amount             float64         `json:"amount" db:"amount"`
	Deadline           time.Time       `json:"deadline" db:"deadline"`
	Description        string          `json:"description" db:"description"`
	Eligibility        string          `json:"eligibility" db:"eligibility"`
	ApplicationProcess string          `json:"applicationProcess" db:"application_process"`
	Website            string          `json:"website" db:"website"`
	ScholarshipType    ScholarshipType `json:"scholarshipType" db:"scholarship_type"`
	EducationLevel     EducationLevel  `json:"educationLevel" db:"education_level"`

	// Rule inputs; nil means the scholarship imposes no constraint.
	MinCGPA   *float64 `json:"minCgpa,omitempty" db:"min_cgpa"`
	MinAge    *int     `json:"minAge,omitempty" db:"min_age"`
	MaxAge    *int     `json:"maxAge,omitempty" db:"max_age"`
	IncomeMin *float64 `json:"incomeMin,omitempty" db:"income_min"`
	IncomeMax *float64 `json:"incomeMax,omitempty" db:"income_max"`

	CitizenshipRequirements  StringList `json:"citizenshipRequirements" db:"citizenship_requirements"`
	FieldOfStudyRequirements StringList `json:"fieldOfStudyRequirements" db:"field_of_study_requirements"`
	MinorityPreferences      StringList `json:"minorityPreferences" db:"minority_preferences"`
	DisabilityPreferences    StringList `json:"disabilityPreferences" db:"disability_preferences"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsExpired reports whether the deadline day is before today.
func (s *Scholarship) IsExpired(today time.Time) bool {
	return truncateDay(s.Deadline).Before(truncateDay(today))
}

// IsDeadlineApproaching reports whether the deadline falls within the warning window.
func (s *Scholarship) IsDeadlineApproaching(today time.Time) bool {
	return !truncateDay(s.Deadline).After(truncateDay(today).Add(DeadlineWarningWindow))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
