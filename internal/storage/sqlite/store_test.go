package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "scholarmatch.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func seedProfile(t *testing.T, store *Store, email string) *models.StudentProfile {
	t.Helper()
	ctx := context.Background()

	account := &models.Account{Name: "Student", Email: email, Password: "hash", RoleType: models.RoleStudent}
	if _, err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}
	profile := &models.StudentProfile{AccountID: account.ID, EducationLevel: models.EducationUndergraduate}
	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	return profile
}

func seedScholarships(t *testing.T, store *Store, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		s := &models.Scholarship{
			Title:           "Scholarship",
			Provider:        "Provider",
			Amount:          1000,
			Deadline:        time.Date(2026, time.December, 1+i, 0, 0, 0, 0, time.UTC),
			ScholarshipType: models.ScholarshipMerit,
			EducationLevel:  models.EducationAny,
		}
		id, err := store.CreateScholarship(context.Background(), s)
		if err != nil {
			t.Fatalf("create scholarship: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "twice.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	_ = second.Close()
}

func TestAccountRoundTripAndDuplicateEmail(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()

	account := &models.Account{Name: "Asha", Email: " Asha@Example.com ", Password: "hash", RoleType: models.RoleStudent}
	if _, err := store.CreateAccount(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	got, err := store.GetAccountByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.ID != account.ID || got.RoleType != models.RoleStudent {
		t.Fatalf("account = %+v, want id %d", got, account.ID)
	}

	dup := &models.Account{Name: "Other", Email: "asha@example.com", Password: "hash", RoleType: models.RoleStudent}
	if _, err := store.CreateAccount(ctx, dup); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate create err = %v, want ErrEmailAlreadyExists", err)
	}

	if _, err := store.GetAccountByID(ctx, 999); !errors.Is(err, apperrors.ErrAccountNotFound) {
		t.Fatalf("missing account err = %v, want ErrAccountNotFound", err)
	}
}

func TestProfileUpsertKeepsID(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	profile := seedProfile(t, store, "p@example.com")

	dob := time.Date(2003, time.April, 2, 0, 0, 0, 0, time.UTC)
	cgpa := 8.25
	updated := &models.StudentProfile{
		AccountID:      profile.AccountID,
		DateOfBirth:    &dob,
		Citizenship:    "India",
		EducationLevel: models.EducationGraduate,
		CGPA:           &cgpa,
		MinorityGroups: models.NewStringList("Adivasi"),
	}
	if err := store.SaveProfile(ctx, updated); err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.ID != profile.ID {
		t.Fatalf("profile id = %d, want %d", updated.ID, profile.ID)
	}

	got, err := store.GetProfileByAccountID(ctx, profile.AccountID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.EducationLevel != models.EducationGraduate || got.CGPA == nil || *got.CGPA != cgpa {
		t.Fatalf("profile = %+v", got)
	}
	if got.DateOfBirth == nil || !got.DateOfBirth.Equal(dob) {
		t.Fatalf("date of birth = %v, want %v", got.DateOfBirth, dob)
	}
	if len(got.MinorityGroups) != 1 || got.MinorityGroups[0] != "Adivasi" {
		t.Fatalf("minority groups = %v", got.MinorityGroups)
	}
	if got.FamilyIncome != nil {
		t.Fatalf("family income = %v, want nil", *got.FamilyIncome)
	}

	if _, err := store.GetProfileByAccountID(ctx, 12345); !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("missing profile err = %v", err)
	}
}

func TestMalformedStoredListReadsAsEmpty(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	ids := seedScholarships(t, store, 1)

	if _, err := store.sqlDB.ExecContext(ctx,
		"UPDATE scholarships SET citizenship_requirements = ? WHERE id = ?", "{not json", ids[0]); err != nil {
		t.Fatalf("corrupt list: %v", err)
	}

	got, err := store.GetScholarshipByID(ctx, ids[0])
	if err != nil {
		t.Fatalf("get scholarship: %v", err)
	}
	if len(got.CitizenshipRequirements) != 0 {
		t.Fatalf("citizenship = %v, want empty", got.CitizenshipRequirements)
	}
}

func TestReplaceRecommendationsLeavesNoStaleRows(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	profile := seedProfile(t, store, "r@example.com")
	ids := seedScholarships(t, store, 3)

	first := []models.Recommendation{
		{StudentID: profile.ID, ScholarshipID: ids[0], MatchScore: 90, Reason: "a"},
		{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 70, Reason: "b"},
	}
	if n, err := store.ReplaceRecommendations(ctx, profile.ID, first); err != nil || n != 2 {
		t.Fatalf("first replace = (%d, %v)", n, err)
	}

	second := []models.Recommendation{
		{StudentID: profile.ID, ScholarshipID: ids[2], MatchScore: 55, Reason: "c"},
		{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 85, Reason: "b2"},
	}
	if n, err := store.ReplaceRecommendations(ctx, profile.ID, second); err != nil || n != 2 {
		t.Fatalf("second replace = (%d, %v)", n, err)
	}

	got, err := store.ListRecommendationsFor(ctx, profile.ID, 0)
	if err != nil {
		t.Fatalf("list recommendations: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("rows = %d, want 2", len(got))
	}
	if got[0].ScholarshipID != ids[1] || got[0].MatchScore != 85 || got[1].ScholarshipID != ids[2] {
		t.Fatalf("order = [%d:%d %d:%d], want highest score first", got[0].ScholarshipID, got[0].MatchScore, got[1].ScholarshipID, got[1].MatchScore)
	}
	if got[0].Scholarship == nil || got[0].Scholarship.ID != ids[1] {
		t.Fatalf("joined scholarship = %+v", got[0].Scholarship)
	}
}

func TestReplaceRecommendationsRollsBackOnFailure(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	profile := seedProfile(t, store, "f@example.com")
	ids := seedScholarships(t, store, 2)

	prior := []models.Recommendation{{StudentID: profile.ID, ScholarshipID: ids[0], MatchScore: 60, Reason: "kept"}}
	if _, err := store.ReplaceRecommendations(ctx, profile.ID, prior); err != nil {
		t.Fatalf("seed replace: %v", err)
	}

	// The same scholarship twice violates the (student, scholarship) uniqueness.
	broken := []models.Recommendation{
		{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 80},
		{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 75},
	}
	n, err := store.ReplaceRecommendations(ctx, profile.ID, broken)
	if !errors.Is(err, apperrors.ErrPersistenceFailure) {
		t.Fatalf("replace err = %v, want ErrPersistenceFailure", err)
	}
	if n != 0 {
		t.Fatalf("rows written = %d, want 0", n)
	}

	got, err := store.ListRecommendationsFor(ctx, profile.ID, 0)
	if err != nil {
		t.Fatalf("list recommendations: %v", err)
	}
	if len(got) != 1 || got[0].ScholarshipID != ids[0] || got[0].Reason != "kept" {
		t.Fatalf("rows after failed replace = %+v, want prior set", got)
	}
}

func TestReplaceRecommendationsUnknownStudent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.ReplaceRecommendations(context.Background(), 404, nil)
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("err = %v, want ErrProfileNotFound", err)
	}
	if errors.Is(err, apperrors.ErrPersistenceFailure) {
		t.Fatalf("err = %v, missing profile must not read as a persistence failure", err)
	}
}

func TestReplaceRecommendationsConcurrentSameStudent(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	profile := seedProfile(t, store, "c@example.com")
	ids := seedScholarships(t, store, 4)

	sets := [][]models.Recommendation{
		{
			{StudentID: profile.ID, ScholarshipID: ids[0], MatchScore: 90, Reason: "even"},
			{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 80, Reason: "even"},
		},
		{
			{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 70, Reason: "odd"},
			{StudentID: profile.ID, ScholarshipID: ids[2], MatchScore: 60, Reason: "odd"},
			{StudentID: profile.ID, ScholarshipID: ids[3], MatchScore: 50, Reason: "odd"},
		},
	}

	const writers = 40
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(set []models.Recommendation) {
			defer wg.Done()
			if _, err := store.ReplaceRecommendations(ctx, profile.ID, set); err != nil {
				errs <- err
			}
		}(sets[i%len(sets)])
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent replace: %v", err)
	}

	got, err := store.ListRecommendationsFor(ctx, profile.ID, 0)
	if err != nil {
		t.Fatalf("list recommendations: %v", err)
	}

	seen := make(map[int64]bool, len(got))
	for _, r := range got {
		if seen[r.ScholarshipID] {
			t.Fatalf("scholarship %d stored twice", r.ScholarshipID)
		}
		seen[r.ScholarshipID] = true
	}

	matched := false
	for _, set := range sets {
		if len(set) != len(got) {
			continue
		}
		same := true
		for _, want := range set {
			if !seen[want.ScholarshipID] {
				same = false
				break
			}
		}
		for _, r := range got {
			if r.Reason != set[0].Reason {
				same = false
			}
		}
		if same {
			matched = true
		}
	}
	if !matched {
		t.Fatalf("final set of %d rows is not any single writer's set", len(got))
	}
}

func TestListRecommendationsLimitAndTieOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	profile := seedProfile(t, store, "l@example.com")
	ids := seedScholarships(t, store, 3)

	recs := []models.Recommendation{
		{StudentID: profile.ID, ScholarshipID: ids[2], MatchScore: 50},
		{StudentID: profile.ID, ScholarshipID: ids[0], MatchScore: 50},
		{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 40},
	}
	if _, err := store.ReplaceRecommendations(ctx, profile.ID, recs); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := store.ListRecommendationsFor(ctx, profile.ID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ScholarshipID != ids[0] || got[1].ScholarshipID != ids[2] {
		t.Fatalf("got %d rows, want two ties ordered by scholarship id", len(got))
	}
}

func TestDeleteScholarshipCascadesRecommendations(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	profile := seedProfile(t, store, "d@example.com")
	ids := seedScholarships(t, store, 2)

	recs := []models.Recommendation{
		{StudentID: profile.ID, ScholarshipID: ids[0], MatchScore: 50},
		{StudentID: profile.ID, ScholarshipID: ids[1], MatchScore: 40},
	}
	if _, err := store.ReplaceRecommendations(ctx, profile.ID, recs); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.DeleteScholarship(ctx, ids[0]); err != nil {
		t.Fatalf("delete scholarship: %v", err)
	}
	if err := store.DeleteScholarship(ctx, ids[0]); !errors.Is(err, apperrors.ErrScholarshipNotFound) {
		t.Fatalf("second delete err = %v", err)
	}

	got, err := store.ListRecommendationsFor(ctx, profile.ID, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ScholarshipID != ids[1] {
		t.Fatalf("rows = %d, want only the surviving scholarship", len(got))
	}
}

func TestGetScholarshipsPaginates(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ids := seedScholarships(t, store, 5)

	page, total, err := store.GetScholarships(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("get scholarships: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}
	if len(page) != 2 || page[0].ID != ids[2] || page[1].ID != ids[3] {
		t.Fatalf("page = %d entries, want ids %d and %d", len(page), ids[2], ids[3])
	}
	if !page[0].Deadline.Equal(time.Date(2026, time.December, 3, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("deadline = %v", page[0].Deadline)
	}
}
