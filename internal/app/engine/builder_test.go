package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/yigit/scholarmatch/internal/app/models"
)

func defaultTestCatalog() []*models.Scholarship {
	return []*models.Scholarship{
		{
			ID:                      1,
			Title:                   "National Merit",
			ScholarshipType:         models.ScholarshipMerit,
			EducationLevel:          models.EducationUndergraduate,
			CitizenshipRequirements: models.NewStringList("India"),
			MinCGPA:                 floatPtr(7),
			Deadline:                time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:                       2,
			Title:                    "Legal Studies Award",
			ScholarshipType:          models.ScholarshipFieldSpecific,
			EducationLevel:           models.EducationAny,
			FieldOfStudyRequirements: models.NewStringList("Law"),
			Deadline:                 time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              3,
			Title:           "Doctoral Fellowship",
			ScholarshipType: models.ScholarshipMerit,
			EducationLevel:  models.EducationPhD,
			Deadline:        time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:              4,
			Title:           "Open Grant",
			ScholarshipType: models.ScholarshipCreative,
			EducationLevel:  models.EducationAny,
			Deadline:        time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestComputeFiltersAndOrders(t *testing.T) {
	t.Parallel()

	builder := NewDefaultBuilder(BuilderOptions{Now: fixedClock})
	matches := builder.Compute(strongStudent(), defaultTestCatalog())

	want := []struct {
		id    int64
		score int
	}{{1, 100}, {4, 100}, {2, 85}}
	if len(matches) != len(want) {
		t.Fatalf("matches = %+v, want %d entries", matches, len(want))
	}
	for i, w := range want {
		if matches[i].ScholarshipID != w.id || matches[i].Score != w.score {
			t.Fatalf("match[%d] = (%d, %d), want (%d, %d)", i, matches[i].ScholarshipID, matches[i].Score, w.id, w.score)
		}
		if matches[i].Fallback {
			t.Fatalf("match[%d] marked as fallback", i)
		}
	}
}

func TestComputeExcludeExpired(t *testing.T) {
	t.Parallel()

	builder := NewDefaultBuilder(BuilderOptions{Now: fixedClock, ExcludeExpired: true})
	for _, match := range builder.Compute(strongStudent(), defaultTestCatalog()) {
		if match.ScholarshipID == 2 {
			t.Fatal("expired scholarship 2 should be excluded")
		}
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	t.Parallel()

	builder := NewDefaultBuilder(BuilderOptions{Now: fixedClock})
	first := builder.Compute(strongStudent(), defaultTestCatalog())
	second := builder.Compute(strongStudent(), defaultTestCatalog())
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ScholarshipID != second[i].ScholarshipID || first[i].Score != second[i].Score || first[i].Reason() != second[i].Reason() {
			t.Fatalf("match %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestBuildFallsBackForUnmatchedStudent(t *testing.T) {
	t.Parallel()

	builder := NewDefaultBuilder(BuilderOptions{Now: fixedClock, FallbackLimit: DefaultFallbackLimit})
	// No date of birth: every scholarship fails the critical age rule.
	matches := builder.Build(&models.StudentProfile{}, defaultTestCatalog())

	wantScores := []int{80, 65, 50, 35}
	if len(matches) != len(wantScores) {
		t.Fatalf("matches = %d, want %d", len(matches), len(wantScores))
	}
	for i, match := range matches {
		if match.ScholarshipID != int64(i+1) {
			t.Fatalf("fallback[%d] id = %d, want catalog order", i, match.ScholarshipID)
		}
		if match.Score != wantScores[i] || !match.Fallback {
			t.Fatalf("fallback[%d] = %+v, want score %d", i, match, wantScores[i])
		}
		if !strings.Contains(match.Reason(), "general criteria") {
			t.Fatalf("fallback reason = %q", match.Reason())
		}
	}
}

func TestFallbackFloor(t *testing.T) {
	t.Parallel()

	catalog := make([]*models.Scholarship, 0, 8)
	for i := 1; i <= 8; i++ {
		catalog = append(catalog, &models.Scholarship{ID: int64(i)})
	}

	builder := NewDefaultBuilder(BuilderOptions{Now: fixedClock, FallbackLimit: 7})
	matches := builder.Fallback(catalog)
	if len(matches) != 7 {
		t.Fatalf("fallback = %d entries, want 7", len(matches))
	}
	for _, match := range matches {
		if match.Score < 20 {
			t.Fatalf("fallback score %d below floor", match.Score)
		}
	}
	if matches[6].Score != 20 {
		t.Fatalf("last fallback score = %d, want 20", matches[6].Score)
	}
}

func TestBuildWithoutFallbackLimit(t *testing.T) {
	t.Parallel()

	builder := NewDefaultBuilder(BuilderOptions{Now: fixedClock})
	if matches := builder.Build(&models.StudentProfile{}, defaultTestCatalog()); len(matches) != 0 {
		t.Fatalf("matches = %d, want none with fallback disabled", len(matches))
	}
}

func TestMatchRecommendation(t *testing.T) {
	t.Parallel()

	match := Match{ScholarshipID: 9, Score: 55, Reasons: []string{"a", "b"}}
	rec := match.Recommendation(3)
	if rec.StudentID != 3 || rec.ScholarshipID != 9 || rec.MatchScore != 55 {
		t.Fatalf("recommendation = %+v", rec)
	}
	if got := rec.Reasons(); len(got) != 2 || got[1] != "b" {
		t.Fatalf("reasons = %v, want [a b]", got)
	}
}
