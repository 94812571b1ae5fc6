package models

// RoleType defines the account role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// EducationLevel is the academic stage of a student, or the stage a scholarship targets.
type EducationLevel string

const (
	EducationHighSchool    EducationLevel = "high_school"
	EducationUndergraduate EducationLevel = "undergraduate"
	EducationGraduate      EducationLevel = "graduate"
	EducationPhD           EducationLevel = "phd"
	// EducationAny is only valid on scholarships and matches every student.
	EducationAny EducationLevel = "any"
)

// StudentEducationLevels lists the levels a student profile may hold.
var StudentEducationLevels = []EducationLevel{
	EducationHighSchool,
	EducationUndergraduate,
	EducationGraduate,
	EducationPhD,
}

// IsStudentLevel reports whether l is a level a student can hold.
func (l EducationLevel) IsStudentLevel() bool {
	for _, level := range StudentEducationLevels {
		if l == level {
			return true
		}
	}
	return false
}

// IsScholarshipLevel reports whether l is a valid scholarship target level.
func (l EducationLevel) IsScholarshipLevel() bool {
	return l == EducationAny || l.IsStudentLevel()
}

// ScholarshipType classifies what a scholarship rewards.
type ScholarshipType string

const (
	ScholarshipMerit         ScholarshipType = "merit"
	ScholarshipNeed          ScholarshipType = "need"
	ScholarshipAthletic      ScholarshipType = "athletic"
	ScholarshipCreative      ScholarshipType = "creative"
	ScholarshipMinority      ScholarshipType = "minority"
	ScholarshipInternational ScholarshipType = "international"
	ScholarshipDisability    ScholarshipType = "disability"
	ScholarshipFieldSpecific ScholarshipType = "field_specific"
)

// ScholarshipTypes lists every known scholarship type.
var ScholarshipTypes = []ScholarshipType{
	ScholarshipMerit,
	ScholarshipNeed,
	ScholarshipAthletic,
	ScholarshipCreative,
	ScholarshipMinority,
	ScholarshipInternational,
	ScholarshipDisability,
	ScholarshipFieldSpecific,
}

// IsValid reports whether t is a known scholarship type.
func (t ScholarshipType) IsValid() bool {
	for _, known := range ScholarshipTypes {
		if t == known {
			return true
		}
	}
	return false
}

// DateLayout is the calendar-date format used for birth dates and deadlines.
const DateLayout = "2006-01-02"
