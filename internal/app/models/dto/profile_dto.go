package dto

import (
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

// ProfileRequest represents the student profile form. Dates use the YYYY-MM-DD layout.
type ProfileRequest struct {
	DateOfBirth        string   `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	Gender             string   `json:"gender" binding:"omitempty,max=20"`
	Nationality        string   `json:"nationality" binding:"omitempty,max=100"`
	Citizenship        string   `json:"citizenship" binding:"omitempty,max=100"`
	EducationLevel     string   `json:"educationLevel" binding:"required,oneof=high_school undergraduate graduate phd"`
	FieldOfStudy       string   `json:"fieldOfStudy" binding:"omitempty,max=100"`
	CGPA               *float64 `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	GraduationYear     *int     `json:"graduationYear" binding:"omitempty,gte=1900,lte=2100"`
	FamilyIncome       *float64 `json:"familyIncome" binding:"omitempty,gte=0"`
	FinancialAidNeeded bool     `json:"financialAidNeeded"`
	Extracurriculars   []string `json:"extracurriculars" binding:"omitempty,dive,max=100"`
	Achievements       []string `json:"achievements" binding:"omitempty,dive,max=200"`
	Disabilities       []string `json:"disabilities" binding:"omitempty,dive,max=100"`
	MinorityGroups     []string `json:"minorityGroups" binding:"omitempty,dive,max=100"`
}

// ToModel converts the request into a profile owned by accountID.
func (r *ProfileRequest) ToModel(accountID int64) (*models.StudentProfile, error) {
	profile := &models.StudentProfile{
		AccountID:          accountID,
		Gender:             r.Gender,
		Nationality:        r.Nationality,
		Citizenship:        r.Citizenship,
		EducationLevel:     models.EducationLevel(r.EducationLevel),
		FieldOfStudy:       r.FieldOfStudy,
		CGPA:               r.CGPA,
		GraduationYear:     r.GraduationYear,
		FamilyIncome:       r.FamilyIncome,
		FinancialAidNeeded: r.FinancialAidNeeded,
		Extracurriculars:   models.NewStringList(r.Extracurriculars...),
		Achievements:       models.NewStringList(r.Achievements...),
		Disabilities:       models.NewStringList(r.Disabilities...),
		MinorityGroups:     models.NewStringList(r.MinorityGroups...),
	}
	if r.DateOfBirth != "" {
		dob, err := time.Parse(models.DateLayout, r.DateOfBirth)
		if err != nil {
			return nil, err
		}
		profile.DateOfBirth = &dob
	}
	return profile, nil
}

// ProfileResponse represents a stored student profile
type ProfileResponse struct {
	ID                 int64             `json:"id"`
	AccountID          int64             `json:"accountId"`
	DateOfBirth        string            `json:"dateOfBirth,omitempty"`
	Age                *int              `json:"age,omitempty"`
	Gender             string            `json:"gender"`
	Nationality        string            `json:"nationality"`
	Citizenship        string            `json:"citizenship"`
	EducationLevel     string            `json:"educationLevel"`
	FieldOfStudy       string            `json:"fieldOfStudy"`
	CGPA               *float64          `json:"cgpa,omitempty"`
	GraduationYear     *int              `json:"graduationYear,omitempty"`
	FamilyIncome       *float64          `json:"familyIncome,omitempty"`
	FinancialAidNeeded bool              `json:"financialAidNeeded"`
	Extracurriculars   models.StringList `json:"extracurriculars"`
	Achievements       models.StringList `json:"achievements"`
	Disabilities       models.StringList `json:"disabilities"`
	MinorityGroups     models.StringList `json:"minorityGroups"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

// NewProfileResponse maps a profile to its API form, computing the age on today.
func NewProfileResponse(p *models.StudentProfile, today time.Time) ProfileResponse {
	resp := ProfileResponse{
		ID:                 p.ID,
		AccountID:          p.AccountID,
		Gender:             p.Gender,
		Nationality:        p.Nationality,
		Citizenship:        p.Citizenship,
		EducationLevel:     string(p.EducationLevel),
		FieldOfStudy:       p.FieldOfStudy,
		CGPA:               p.CGPA,
		GraduationYear:     p.GraduationYear,
		FamilyIncome:       p.FamilyIncome,
		FinancialAidNeeded: p.FinancialAidNeeded,
		Extracurriculars:   p.Extracurriculars,
		Achievements:       p.Achievements,
		Disabilities:       p.Disabilities,
		MinorityGroups:     p.MinorityGroups,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format(models.DateLayout)
	}
	if age, ok := p.AgeOn(today); ok {
		resp.Age = &age
	}
	return resp
}

// SaveProfileResponse reports the stored profile and how many recommendations the save produced
type SaveProfileResponse struct {
	Profile         ProfileResponse `json:"profile"`
	Recommendations int             `json:"recommendations"`
}
