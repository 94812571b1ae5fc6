package dto

import (
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

// CreateScholarshipRequest represents a new catalog listing
type CreateScholarshipRequest struct {
	Title                    string   `json:"title" binding:"required,max=200"`
	Provider                 string   `json:"provider" binding:"required,max=200"`
	Amount                   float64  `json:"amount" binding:"gte=0"`
	Deadline                 string   `json:"deadline" binding:"required,datetime=2006-01-02"`
	Description              string   `json:"description"`
	Eligibility              string   `json:"eligibility"`
	ApplicationProcess       string   `json:"applicationProcess"`
	Website                  string   `json:"website" binding:"omitempty,url"`
	ScholarshipType          string   `json:"scholarshipType" binding:"required"`
	EducationLevel           string   `json:"educationLevel" binding:"required,oneof=high_school undergraduate graduate phd any"`
	MinCGPA                  *float64 `json:"minCgpa" binding:"omitempty,gte=0,lte=10"`
	MinAge                   *int     `json:"minAge" binding:"omitempty,gte=0"`
	MaxAge                   *int     `json:"maxAge" binding:"omitempty,gte=0"`
	IncomeMin                *float64 `json:"incomeMin" binding:"omitempty,gte=0"`
	IncomeMax                *float64 `json:"incomeMax" binding:"omitempty,gte=0"`
	CitizenshipRequirements  []string `json:"citizenshipRequirements"`
	FieldOfStudyRequirements []string `json:"fieldOfStudyRequirements"`
	MinorityPreferences      []string `json:"minorityPreferences"`
	DisabilityPreferences    []string `json:"disabilityPreferences"`
}

// ToModel converts the request into a scholarship
func (r *CreateScholarshipRequest) ToModel() (*models.Scholarship, error) {
	deadline, err := time.Parse(models.DateLayout, r.Deadline)
	if err != nil {
		return nil, err
	}
	return &models.Scholarship{
		Title:                    r.Title,
		Provider:                 r.Provider,
		Amount:                   r.Amount,
		Deadline:                 deadline,
		Description:              r.Description,
		Eligibility:              r.Eligibility,
		ApplicationProcess:       r.ApplicationProcess,
		Website:                  r.Website,
		ScholarshipType:          models.ScholarshipType(r.ScholarshipType),
		EducationLevel:           models.EducationLevel(r.EducationLevel),
		MinCGPA:                  r.MinCGPA,
		MinAge:                   r.MinAge,
		MaxAge:                   r.MaxAge,
		IncomeMin:                r.IncomeMin,
		IncomeMax:                r.IncomeMax,
		CitizenshipRequirements:  models.NewStringList(r.CitizenshipRequirements...),
		FieldOfStudyRequirements: models.NewStringList(r.FieldOfStudyRequirements...),
		MinorityPreferences:      models.NewStringList(r.MinorityPreferences...),
		DisabilityPreferences:    models.NewStringList(r.DisabilityPreferences...),
	}, nil
}

// ScholarshipResponse represents a catalog listing
type ScholarshipResponse struct {
	ID                       int64             `json:"id"`
	Title                    string            `json:"title"`
	Provider                 string            `json:"provider"`
	Amount                   float64           `json:"amount"`
	Deadline                 string            `json:"deadline" example:"2026-12-31"`
	DeadlineApproaching      bool              `json:"deadlineApproaching"`
	Expired                  bool              `json:"expired"`
	Description              string            `json:"description"`
	Eligibility              string            `json:"eligibility"`
	ApplicationProcess       string            `json:"applicationProcess"`
	Website                  string            `json:"website"`
	ScholarshipType          string            `json:"scholarshipType"`
	EducationLevel           string            `json:"educationLevel"`
	MinCGPA                  *float64          `json:"minCgpa,omitempty"`
	MinAge                   *int              `json:"minAge,omitempty"`
	MaxAge                   *int              `json:"maxAge,omitempty"`
	IncomeMin                *float64          `json:"incomeMin,omitempty"`
	IncomeMax                *float64          `json:"incomeMax,omitempty"`
	CitizenshipRequirements  models.StringList `json:"citizenshipRequirements"`
	FieldOfStudyRequirements models.StringList `json:"fieldOfStudyRequirements"`
	MinorityPreferences      models.StringList `json:"minorityPreferences"`
	DisabilityPreferences    models.StringList `json:"disabilityPreferences"`
}

// NewScholarshipResponse maps a scholarship to its API form
func NewScholarshipResponse(s *models.Scholarship, today time.Time) ScholarshipResponse {
	expired := s.IsExpired(today)
	return ScholarshipResponse{
		ID:                       s.ID,
		Title:                    s.Title,
		Provider:                 s.Provider,
		Amount:                   s.Amount,
		Deadline:                 s.Deadline.Format(models.DateLayout),
		DeadlineApproaching:      !expired && s.IsDeadlineApproaching(today),
		Expired:                  expired,
		Description:              s.Description,
		Eligibility:              s.Eligibility,
		ApplicationProcess:       s.ApplicationProcess,
		Website:                  s.Website,
		ScholarshipType:          string(s.ScholarshipType),
		EducationLevel:           string(s.EducationLevel),
		MinCGPA:                  s.MinCGPA,
		MinAge:                   s.MinAge,
		MaxAge:                   s.MaxAge,
		IncomeMin:                s.IncomeMin,
		IncomeMax:                s.IncomeMax,
		CitizenshipRequirements:  s.CitizenshipRequirements,
		FieldOfStudyRequirements: s.FieldOfStudyRequirements,
		MinorityPreferences:      s.MinorityPreferences,
		DisabilityPreferences:    s.DisabilityPreferences,
	}
}

// ScholarshipListResponse represents a page of the catalog
type ScholarshipListResponse struct {
	Scholarships []ScholarshipResponse `json:"scholarships"`
	Pagination   PaginationInfo        `json:"pagination"`
}
