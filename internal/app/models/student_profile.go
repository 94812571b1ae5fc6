package models

import (
	"time"
)

// StudentProfile holds everything the matching engine knows about a student.
type StudentProfile struct {
	ID        int64 `json:"id" db:"id"`
	AccountID int64 `json:"accountId" db:"account_id"`

	// Demographics
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
	Gender      string     `json:"gender" db:"gender"`
	Nationality string     `json:"nationality" db:"nationality"`
	Citizenship string     `json:"citizenship" db:"citizenship"`

	// Academics
	EducationLevel EducationLevel `json:"educationLevel" db:"education_level"`
	FieldOfStudy   string         `json:"fieldOfStudy" db:"field_of_study"`
	CGPA           *float64       `json:"cgpa,omitempty" db:"cgpa"` // 0-10 scale
	GraduationYear *int           `json:"graduationYear,omitempty" db:"graduation_year"`

	// Finances
	FamilyIncome       *float64 `json:"familyIncome,omitempty" db:"family_income"`
	FinancialAidNeeded bool     `json:"financialAidNeeded" db:"financial_aid_needed"`

	Extracurriculars StringList `json:"extracurriculars" db:"extracurriculars"`
	Achievements     StringList `json:"achievements" db:"achievements"`
	Disabilities     StringList `json:"disabilities" db:"disabilities"`
	MinorityGroups   StringList `json:"minorityGroups" db:"minority_groups"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AgeOn returns the calendar age on the given day, or false when the birth date is unknown.
func (p *StudentProfile) AgeOn(today time.Time) (int, bool) {
	if p == nil || p.DateOfBirth == nil {
		return 0, false
	}
	dob := *p.DateOfBirth
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age, true
}
