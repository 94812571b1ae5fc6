package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/scholarmatch/internal/app/engine"
	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/storage/sqlite"
)

var testToday = time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

func testClock() time.Time { return testToday }

func floatPtr(v float64) *float64 { return &v }

type fixture struct {
	store           *sqlite.Store
	recommendations RecommendationService
	profiles        ProfileService
	scholarships    ScholarshipService
	ids             map[string]int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "services.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	builder := engine.NewDefaultBuilder(engine.BuilderOptions{
		FallbackLimit: engine.DefaultFallbackLimit,
		Now:           testClock,
	})
	recs := NewRecommendationService(store, store, store, builder, 10, zerolog.Nop())
	f := &fixture{
		store:           store,
		recommendations: recs,
		profiles:        NewProfileService(store, recs, zerolog.Nop()),
		scholarships:    NewScholarshipService(store, zerolog.Nop()),
		ids:             map[string]int64{},
	}

	catalog := []struct {
		key string
		s   *models.Scholarship
	}{
		{"merit", &models.Scholarship{
			Title: "Merit Award", ScholarshipType: models.ScholarshipMerit,
			EducationLevel: models.EducationAny, MinCGPA: floatPtr(7),
		}},
		{"need", &models.Scholarship{
			Title: "Need Grant", ScholarshipType: models.ScholarshipNeed,
			EducationLevel: models.EducationUndergraduate, IncomeMax: floatPtr(30000),
		}},
		{"graduate", &models.Scholarship{
			Title: "Graduate Fellowship", ScholarshipType: models.ScholarshipFieldSpecific,
			EducationLevel: models.EducationGraduate,
		}},
		{"canada", &models.Scholarship{
			Title: "Canada Study Award", ScholarshipType: models.ScholarshipInternational,
			EducationLevel: models.EducationAny, CitizenshipRequirements: models.NewStringList("Canada"),
		}},
	}
	for i, c := range catalog {
		c.s.Provider = "Test Foundation"
		c.s.Amount = 1000
		c.s.Deadline = testToday.AddDate(0, 3, i)
		id, err := f.scholarships.CreateScholarship(context.Background(), c.s)
		if err != nil {
			t.Fatalf("create scholarship %s: %v", c.key, err)
		}
		f.ids[c.key] = id
	}
	return f
}

func (f *fixture) newAccount(t *testing.T, email string) int64 {
	t.Helper()
	account := &models.Account{Name: "Student", Email: email, Password: "hash", RoleType: models.RoleStudent}
	id, err := f.store.CreateAccount(context.Background(), account)
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return id
}

func strongProfile(accountID int64) *models.StudentProfile {
	dob := time.Date(2004, time.March, 10, 0, 0, 0, 0, time.UTC)
	return &models.StudentProfile{
		AccountID:      accountID,
		DateOfBirth:    &dob,
		Citizenship:    "India",
		EducationLevel: models.EducationUndergraduate,
		FieldOfStudy:   "Computer Science",
		CGPA:           floatPtr(8.5),
		FamilyIncome:   floatPtr(80000),
	}
}

func scoresOf(recs []*models.Recommendation) map[int64]int {
	out := make(map[int64]int, len(recs))
	for _, r := range recs {
		out[r.ScholarshipID] = r.MatchScore
	}
	return out
}

func TestSaveProfileRefreshesRecommendations(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.newAccount(t, "strong@example.com")

	count, err := f.profiles.SaveProfile(ctx, strongProfile(accountID))
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	recs, err := f.recommendations.ListForAccount(ctx, accountID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("recommendations = %d, want 2", len(recs))
	}
	if recs[0].ScholarshipID != f.ids["merit"] || recs[0].MatchScore != 100 {
		t.Fatalf("first = (%d, %d), want merit at 100", recs[0].ScholarshipID, recs[0].MatchScore)
	}
	// financial_need (10) and need type (10) fail.
	if recs[1].ScholarshipID != f.ids["need"] || recs[1].MatchScore != 80 {
		t.Fatalf("second = (%d, %d), want need grant at 80", recs[1].ScholarshipID, recs[1].MatchScore)
	}
	if recs[0].Scholarship == nil || recs[0].Scholarship.Title != "Merit Award" {
		t.Fatalf("scholarship relation not loaded: %+v", recs[0].Scholarship)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.newAccount(t, "twice@example.com")
	if _, err := f.profiles.SaveProfile(ctx, strongProfile(accountID)); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	first, err := f.recommendations.ListForAccount(ctx, accountID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := f.recommendations.RefreshForAccount(ctx, accountID); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	second, err := f.recommendations.ListForAccount(ctx, accountID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	a, b := scoresOf(first), scoresOf(second)
	if len(a) != len(b) {
		t.Fatalf("score sets differ: %v vs %v", a, b)
	}
	for id, score := range a {
		if b[id] != score {
			t.Fatalf("score for %d changed: %d -> %d", id, score, b[id])
		}
	}
}

func TestRefreshLeavesNoStaleRows(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.newAccount(t, "moves@example.com")

	profile := strongProfile(accountID)
	if _, err := f.profiles.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	profile.EducationLevel = models.EducationGraduate
	if _, err := f.profiles.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	computed, err := f.recommendations.ComputeRecommendations(ctx, profile)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	stored, err := f.recommendations.ListForAccount(ctx, accountID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != len(computed) {
		t.Fatalf("stored = %d rows, computed = %d", len(stored), len(computed))
	}
	for i := range computed {
		if stored[i].ScholarshipID != computed[i].ScholarshipID || stored[i].MatchScore != computed[i].Score {
			t.Fatalf("row %d = (%d, %d), want (%d, %d)", i,
				stored[i].ScholarshipID, stored[i].MatchScore, computed[i].ScholarshipID, computed[i].Score)
		}
	}
	if _, ok := scoresOf(stored)[f.ids["need"]]; ok {
		t.Fatal("undergraduate grant from the previous refresh is still stored")
	}
}

func TestRefreshFallsBackWhenNothingMatches(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.newAccount(t, "empty@example.com")

	// No birth date: the critical age rule fails everywhere.
	count, err := f.profiles.SaveProfile(ctx, &models.StudentProfile{
		AccountID:      accountID,
		EducationLevel: models.EducationHighSchool,
	})
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	if count < 1 {
		t.Fatalf("count = %d, want at least one fallback entry", count)
	}

	recs, err := f.recommendations.ListForAccount(ctx, accountID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != count {
		t.Fatalf("listed %d rows, refresh wrote %d", len(recs), count)
	}
	for _, r := range recs {
		if r.MatchScore < 20 {
			t.Fatalf("fallback score %d below 20", r.MatchScore)
		}
	}
	if recs[0].ScholarshipID != f.ids["merit"] || recs[0].MatchScore != 80 {
		t.Fatalf("first fallback = (%d, %d), want first catalog entry at 80", recs[0].ScholarshipID, recs[0].MatchScore)
	}
}

func TestListForAccountWithoutProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	accountID := f.newAccount(t, "noprofile@example.com")

	recs, err := f.recommendations.ListForAccount(context.Background(), accountID, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("recommendations = %d, want none", len(recs))
	}
	count, err := f.recommendations.RefreshForAccount(context.Background(), accountID)
	if err != nil || count != 0 {
		t.Fatalf("refresh = (%d, %v), want (0, nil)", count, err)
	}
}

func TestListForAccountRefreshesLazily(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.newAccount(t, "lazy@example.com")

	// Stored directly, so no refresh has run yet.
	if err := f.store.SaveProfile(ctx, strongProfile(accountID)); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	recs, err := f.recommendations.ListForAccount(ctx, accountID, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].ScholarshipID != f.ids["merit"] {
		t.Fatalf("recommendations = %+v, want the merit award only", recs)
	}
}

func TestRefreshForVanishedProfileStoresNothing(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	dob := time.Date(2004, time.March, 10, 0, 0, 0, 0, time.UTC)
	gone := &models.StudentProfile{ID: 4242, AccountID: 4242, DateOfBirth: &dob, EducationLevel: models.EducationUndergraduate}

	count, err := f.recommendations.RefreshRecommendations(context.Background(), gone)
	if err != nil || count != 0 {
		t.Fatalf("refresh = (%d, %v), want (0, nil)", count, err)
	}
}

// countingStore records how often the recommendation set is replaced.
type countingStore struct {
	*sqlite.Store
	replaces int
}

func (c *countingStore) ReplaceRecommendations(ctx context.Context, studentID int64, recs []models.Recommendation) (int, error) {
	c.replaces++
	return c.Store.ReplaceRecommendations(ctx, studentID, recs)
}

func TestListForAccountEmptyCatalogSkipsRefresh(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	for key, id := range f.ids {
		if err := f.store.DeleteScholarship(ctx, id); err != nil {
			t.Fatalf("delete scholarship %s: %v", key, err)
		}
	}

	counting := &countingStore{Store: f.store}
	builder := engine.NewDefaultBuilder(engine.BuilderOptions{FallbackLimit: engine.DefaultFallbackLimit, Now: testClock})
	svc := NewRecommendationService(counting, counting, counting, builder, 10, zerolog.Nop())

	accountID := f.newAccount(t, "empty@example.com")
	if err := f.store.SaveProfile(ctx, strongProfile(accountID)); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	for i := 0; i < 3; i++ {
		recs, err := svc.ListForAccount(ctx, accountID, 0)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if recs == nil || len(recs) != 0 {
			t.Fatalf("recommendations = %v, want empty non-nil slice", recs)
		}
	}
	if counting.replaces != 0 {
		t.Fatalf("replaces = %d, want none against an empty catalog", counting.replaces)
	}
}

func TestPreviewDoesNotPersist(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()
	accountID := f.newAccount(t, "preview@example.com")
	profile := strongProfile(accountID)
	if err := f.store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	matches, err := f.recommendations.PreviewForAccount(ctx, accountID)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("preview = %d matches, want 2", len(matches))
	}

	stored, err := f.store.ListRecommendationsFor(ctx, profile.ID, 0)
	if err != nil {
		t.Fatalf("list stored: %v", err)
	}
	if len(stored) != 0 {
		t.Fatalf("preview stored %d rows", len(stored))
	}
}

func TestSaveProfileValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	accountID := f.newAccount(t, "invalid@example.com")

	tests := []struct {
		name   string
		mutate func(*models.StudentProfile)
	}{
		{"unknown level", func(p *models.StudentProfile) { p.EducationLevel = "any" }},
		{"cgpa above scale", func(p *models.StudentProfile) { p.CGPA = floatPtr(10.5) }},
		{"negative income", func(p *models.StudentProfile) { p.FamilyIncome = floatPtr(-1) }},
		{"missing account", func(p *models.StudentProfile) { p.AccountID = 0 }},
	}
	for _, tt := range tests {
		profile := strongProfile(accountID)
		tt.mutate(profile)
		if _, err := f.profiles.SaveProfile(context.Background(), profile); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%s: err = %v, want ErrValidationFailed", tt.name, err)
		}
	}
}

func TestCreateScholarshipValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	valid := func() *models.Scholarship {
		return &models.Scholarship{
			Title: "Valid", Provider: "Provider", Deadline: testToday,
			ScholarshipType: models.ScholarshipMerit, EducationLevel: models.EducationAny,
		}
	}
	tests := []struct {
		name   string
		mutate func(*models.Scholarship)
	}{
		{"empty title", func(s *models.Scholarship) { s.Title = " " }},
		{"unknown type", func(s *models.Scholarship) { s.ScholarshipType = "lottery" }},
		{"inverted ages", func(s *models.Scholarship) { lo, hi := 30, 20; s.MinAge, s.MaxAge = &lo, &hi }},
		{"relative website", func(s *models.Scholarship) { s.Website = "example.org/apply" }},
	}
	for _, tt := range tests {
		s := valid()
		tt.mutate(s)
		if _, err := f.scholarships.CreateScholarship(context.Background(), s); !errors.Is(err, apperrors.ErrValidationFailed) {
			t.Errorf("%s: err = %v, want ErrValidationFailed", tt.name, err)
		}
	}

	if _, err := f.scholarships.CreateScholarship(context.Background(), valid()); err != nil {
		t.Fatalf("valid scholarship rejected: %v", err)
	}
}

func TestListScholarshipsPages(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	page, total, err := f.scholarships.ListScholarships(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 4 || len(page) != 1 {
		t.Fatalf("page 2 = %d items of %d, want 1 of 4", len(page), total)
	}
}
