// Package engine scores student profiles against scholarships.
//
// Everything here is pure: rules and strategies read their two inputs and an
// injected clock, and never touch storage.
package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

// RuleName identifies an eligibility rule.
type RuleName string

const (
	RuleAge                  RuleName = "age"
	RuleCGPA                 RuleName = "cgpa"
	RuleEducationLevel       RuleName = "education_level"
	RuleCitizenship          RuleName = "citizenship"
	RuleFieldOfStudy         RuleName = "field_of_study"
	RuleFinancialNeed        RuleName = "financial_need"
	RuleMinorityPreference   RuleName = "minority_preference"
	RuleDisabilityPreference RuleName = "disability_preference"
	RuleScholarshipType      RuleName = "scholarship_type_specific"
)

// MeritCGPAThreshold is the CGPA a merit scholarship expects on the 10-point scale.
const MeritCGPAThreshold = 7.0

// athleticKeywords are matched as case-insensitive substrings of extracurriculars.
var athleticKeywords = []string{
	"sports", "athletics", "basketball", "football", "soccer",
	"tennis", "swimming", "track", "field", "volleyball",
}

// Rule decides whether a student satisfies one requirement of a scholarship and
// explains the outcome either way.
type Rule func(student *models.StudentProfile, scholarship *models.Scholarship) (passed bool, reason string)

// RuleSet maps rule names to their predicates.
type RuleSet map[RuleName]Rule

// DefaultRules returns the standard rule set. today supplies the date used for age
// arithmetic; nil means time.Now.
func DefaultRules(today func() time.Time) RuleSet {
	if today == nil {
		today = time.Now
	}
	return RuleSet{
		RuleAge:                  ageRule(today),
		RuleCGPA:                 checkCGPA,
		RuleEducationLevel:       checkEducationLevel,
		RuleCitizenship:          checkCitizenship,
		RuleFieldOfStudy:         checkFieldOfStudy,
		RuleFinancialNeed:        checkFinancialNeed,
		RuleMinorityPreference:   checkMinorityPreference,
		RuleDisabilityPreference: checkDisabilityPreference,
		RuleScholarshipType:      checkScholarshipType,
	}
}

func ageRule(today func() time.Time) Rule {
	return func(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
		age, ok := student.AgeOn(today())
		if !ok {
			return false, "Age not specified"
		}
		if scholarship.MinAge != nil && age < *scholarship.MinAge {
			return false, fmt.Sprintf("Too young (min age: %d)", *scholarship.MinAge)
		}
		if scholarship.MaxAge != nil && age > *scholarship.MaxAge {
			return false, fmt.Sprintf("Too old (max age: %d)", *scholarship.MaxAge)
		}
		return true, "Age requirement met"
	}
}

// checkCGPA fails on a missing CGPA even when no minimum is set.
func checkCGPA(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	if student.CGPA == nil {
		return false, "CGPA not specified"
	}
	if scholarship.MinCGPA != nil && *student.CGPA < *scholarship.MinCGPA {
		return false, fmt.Sprintf("CGPA too low (min: %.2f)", *scholarship.MinCGPA)
	}
	return true, "CGPA requirement met"
}

func checkEducationLevel(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	if scholarship.EducationLevel == models.EducationAny || scholarship.EducationLevel == student.EducationLevel {
		return true, "Education level requirement met"
	}
	yours := string(student.EducationLevel)
	if yours == "" {
		yours = "not specified"
	}
	return false, fmt.Sprintf("Education level mismatch (required: %s, yours: %s)", scholarship.EducationLevel, yours)
}

func checkCitizenship(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	required := scholarship.CitizenshipRequirements
	if len(required) == 0 {
		return true, "Citizenship requirement met"
	}
	if strings.TrimSpace(student.Citizenship) != "" && required.ContainsFold(student.Citizenship) {
		return true, "Citizenship requirement met"
	}
	return false, fmt.Sprintf("Citizenship requirement not met (required: %s)", strings.Join(required, ", "))
}

func checkFieldOfStudy(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	required := scholarship.FieldOfStudyRequirements
	if len(required) == 0 {
		return true, "Field of study requirement met"
	}
	if strings.TrimSpace(student.FieldOfStudy) != "" && required.ContainsFold(student.FieldOfStudy) {
		return true, "Field of study requirement met"
	}
	return false, fmt.Sprintf("Field of study mismatch (required: %s)", strings.Join(required, ", "))
}

func checkFinancialNeed(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	if scholarship.IncomeMin == nil && scholarship.IncomeMax == nil {
		return true, "Financial need requirement met"
	}
	if student.FamilyIncome == nil {
		return false, "Family income not specified"
	}
	income := *student.FamilyIncome
	if scholarship.IncomeMax != nil && income > *scholarship.IncomeMax {
		return false, fmt.Sprintf("Family income too high (max: %.2f)", *scholarship.IncomeMax)
	}
	if scholarship.IncomeMin != nil && income < *scholarship.IncomeMin {
		return false, fmt.Sprintf("Family income too low (min: %.2f)", *scholarship.IncomeMin)
	}
	return true, "Financial need requirement met"
}

func checkMinorityPreference(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	if len(scholarship.MinorityPreferences) == 0 {
		return true, "Minority preference requirement met"
	}
	if group, ok := scholarship.MinorityPreferences.FirstShared(student.MinorityGroups); ok {
		return true, fmt.Sprintf("Qualifies for minority preference (%s)", group)
	}
	return false, "Does not qualify for minority preferences"
}

func checkDisabilityPreference(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	if len(scholarship.DisabilityPreferences) == 0 {
		return true, "Disability preference requirement met"
	}
	if disability, ok := scholarship.DisabilityPreferences.FirstShared(student.Disabilities); ok {
		return true, fmt.Sprintf("Qualifies for disability preference (%s)", disability)
	}
	return false, "Does not qualify for disability preferences"
}

func checkScholarshipType(student *models.StudentProfile, scholarship *models.Scholarship) (bool, string) {
	switch scholarship.ScholarshipType {
	case models.ScholarshipMerit:
		if student.CGPA == nil || *student.CGPA < MeritCGPAThreshold {
			return false, "Insufficient CGPA for merit-based scholarship"
		}
		return true, "Meets merit-based requirements"
	case models.ScholarshipNeed:
		if !student.FinancialAidNeeded {
			return false, "No financial need demonstrated"
		}
		return true, "Meets need-based requirements"
	case models.ScholarshipAthletic:
		if !hasAthleticActivity(student.Extracurriculars) {
			return false, "No athletic activities found"
		}
		return true, "Meets athletic scholarship requirements"
	}
	return true, "Scholarship type requirements met"
}

func hasAthleticActivity(activities models.StringList) bool {
	for _, activity := range activities {
		lower := strings.ToLower(activity)
		for _, keyword := range athleticKeywords {
			if strings.Contains(lower, keyword) {
				return true
			}
		}
	}
	return false
}
