package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	appRepos "github.com/yigit/scholarmatch/internal/app/repositories"
	"github.com/yigit/scholarmatch/internal/storage/sqlite"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	for _, s := range DefaultCatalog(today) {
		if !s.ScholarshipType.IsValid() || !s.EducationLevel.IsScholarshipLevel() {
			t.Errorf("%s: type %q / level %q", s.Title, s.ScholarshipType, s.EducationLevel)
		}
		if s.IsExpired(today) {
			t.Errorf("%s: deadline %s already passed", s.Title, s.Deadline.Format("2006-01-02"))
		}
	}
}

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	t.Parallel()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	repos := appRepos.FromStore(store)
	opts := Options{AdminEmail: "admin@example.com", AdminPassword: "Admin123!"}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := CreateDefaultData(ctx, repos, opts, zerolog.Nop()); err != nil {
			t.Fatalf("run %d: %v", i+1, err)
		}
	}

	_, total, err := store.GetScholarships(ctx, 0, 100)
	if err != nil {
		t.Fatalf("count scholarships: %v", err)
	}
	if want := int64(len(DefaultCatalog(time.Now()))); total != want {
		t.Fatalf("scholarships = %d, want %d", total, want)
	}

	admin, err := store.GetAccountByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("admin account: %v", err)
	}
	if admin.RoleType != "ADMIN" {
		t.Fatalf("admin role = %q", admin.RoleType)
	}
}
