package seed

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/scholarmatch/internal/app/models"
	appRepos "github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/auth"
)

// Options controls what CreateDefaultData creates
type Options struct {
	AdminEmail    string
	AdminPassword string
	// Now anchors the deadlines of the default catalog. Nil means time.Now.
	Now func() time.Time
}

// CreateDefaultData creates the default scholarship catalog when the catalog is
// empty and the admin account when it does not exist. Errors are collected so
// one failure does not stop the rest.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, opts Options, lgr zerolog.Logger) error {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	lgr.Info().Msg("Checking/Creating default data (scholarships/admin)...")
	var finalErr error

	// --- Scholarship catalog --- //
	_, total, err := repos.Scholarships.GetScholarships(ctx, 0, 1)
	switch {
	case err != nil:
		lgr.Error().Err(err).Msg("Error counting scholarships")
		finalErr = errors.Join(finalErr, err)
	case total > 0:
		lgr.Info().Int64("count", total).Msg("Scholarship catalog already populated, skipping")
	default:
		for _, s := range DefaultCatalog(opts.Now()) {
			id, err := repos.Scholarships.CreateScholarship(ctx, s)
			if err != nil {
				lgr.Error().Err(err).Str("title", s.Title).Msg("Error creating default scholarship")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			lgr.Debug().Int64("scholarshipID", id).Str("title", s.Title).Msg("Default scholarship created")
		}
	}

	// --- Default admin account --- //
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		lgr.Warn().Msg("Admin credentials not configured, skipping admin creation")
		lgr.Info().Msg("Default data check/creation finished.")
		return finalErr
	}

	_, err = repos.Accounts.GetAccountByEmail(ctx, opts.AdminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin account already exists, skipping creation")
	case !errors.Is(err, apperrors.ErrAccountNotFound):
		lgr.Error().Err(err).Msg("Error checking if admin account exists")
		finalErr = errors.Join(finalErr, err)
	default:
		hashedPassword, err := auth.HashPassword(opts.AdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			return errors.Join(finalErr, err)
		}
		admin := &appModels.Account{
			Name:     "System Administrator",
			Email:    opts.AdminEmail,
			Password: hashedPassword,
			RoleType: appModels.RoleAdmin,
		}
		adminID, err := repos.Accounts.CreateAccount(ctx, admin)
		if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating admin account")
			finalErr = errors.Join(finalErr, err)
		} else if err == nil {
			lgr.Info().Int64("adminID", adminID).Msg("Default admin account created successfully")
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

// DefaultCatalog returns the listings a fresh installation starts with. Deadlines
// are spread over the months following today.
func DefaultCatalog(today time.Time) []*appModels.Scholarship {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return []*appModels.Scholarship{
		{
			Title:                    "Excellence in STEM Scholarship",
			Provider:                 "National Science Foundation Trust",
			Amount:                   5000,
			Deadline:                 day.AddDate(0, 2, 0),
			Description:              "Rewards outstanding undergraduates in science and engineering.",
			Eligibility:              "Undergraduates with a CGPA of 8.0 or higher in a STEM field.",
			ApplicationProcess:       "Submit transcripts and a statement of purpose online.",
			Website:                  "https://example.org/stem-excellence",
			ScholarshipType:          appModels.ScholarshipMerit,
			EducationLevel:           appModels.EducationUndergraduate,
			MinCGPA:                  floatPtr(8.0),
			MaxAge:                   intPtr(25),
			FieldOfStudyRequirements: appModels.NewStringList("Computer Science", "Engineering", "Mathematics", "Physics"),
		},
		{
			Title:              "Opportunity Grant",
			Provider:           "Community Education Fund",
			Amount:             3000,
			Deadline:           day.AddDate(0, 1, 0),
			Description:        "Supports students from low-income families.",
			Eligibility:        "Family income below 40000 and demonstrated financial need.",
			ApplicationProcess: "Submit income documents with the application form.",
			Website:            "https://example.org/opportunity",
			ScholarshipType:    appModels.ScholarshipNeed,
			EducationLevel:     appModels.EducationAny,
			IncomeMax:          floatPtr(40000),
		},
		{
			Title:              "Future Athletes Award",
			Provider:           "Regional Sports Council",
			Amount:             2500,
			Deadline:           day.AddDate(0, 3, 0),
			Description:        "For students who combine academics with competitive sport.",
			Eligibility:        "Active participation in a team or individual sport.",
			ApplicationProcess: "Coach recommendation letter required.",
			ScholarshipType:    appModels.ScholarshipAthletic,
			EducationLevel:     appModels.EducationHighSchool,
			MinAge:             intPtr(15),
			MaxAge:             intPtr(19),
		},
		{
			Title:                   "Global Scholars Fellowship",
			Provider:                "International Exchange Foundation",
			Amount:                  10000,
			Deadline:                day.AddDate(0, 4, 0),
			Description:             "Funds graduate study abroad for international students.",
			Eligibility:             "Graduate students holding citizenship of a listed country.",
			ApplicationProcess:      "Research proposal and two references.",
			Website:                 "https://example.org/global-scholars",
			ScholarshipType:         appModels.ScholarshipInternational,
			EducationLevel:          appModels.EducationGraduate,
			MinCGPA:                 floatPtr(7.0),
			CitizenshipRequirements: appModels.NewStringList("India", "Nigeria", "Kenya", "Bangladesh"),
		},
		{
			Title:               "Inclusion in Tech Scholarship",
			Provider:            "Open Futures Initiative",
			Amount:              4000,
			Deadline:            day.AddDate(0, 2, 15),
			Description:         "Encourages under-represented groups to study technology.",
			Eligibility:         "Members of an under-represented group studying a technology subject.",
			ApplicationProcess:  "Short essay on your goals in technology.",
			ScholarshipType:     appModels.ScholarshipMinority,
			EducationLevel:      appModels.EducationAny,
			MinorityPreferences: appModels.NewStringList("Women in STEM", "First generation", "Indigenous"),
		},
		{
			Title:                 "Access Ability Award",
			Provider:              "Disability Education Alliance",
			Amount:                3500,
			Deadline:              day.AddDate(0, 5, 0),
			Description:           "Supports students living with a disability.",
			Eligibility:           "Students with a documented disability.",
			ApplicationProcess:    "Application form and supporting documentation.",
			ScholarshipType:       appModels.ScholarshipDisability,
			EducationLevel:        appModels.EducationAny,
			DisabilityPreferences: appModels.NewStringList("Visual impairment", "Hearing impairment", "Mobility impairment", "Learning disability"),
		},
	}
}
