package migrations

import (
	"strings"
	"testing"
	"testing/fstest"

	schema "github.com/yigit/scholarmatch/migrations"
)

func TestDiscoverOrdersSQLFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"002_recommendations.sql": {Data: []byte("SELECT 1;")},
		"001_init.sql":            {Data: []byte("SELECT 1;")},
		"README.md":               {Data: []byte("notes")},
		"archive/000_old.sql":     {Data: []byte("SELECT 1;")},
	}

	got, err := Discover(fsys)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	want := []Migration{
		{Version: "001", Name: "001_init.sql"},
		{Version: "002", Name: "002_recommendations.sql"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d migrations, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("migration %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDiscoverRejectsDuplicateVersions(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"001_init.sql":  {Data: []byte("SELECT 1;")},
		"001_again.sql": {Data: []byte("SELECT 1;")},
	}
	if _, err := Discover(fsys); err == nil || !strings.Contains(err.Error(), "share version") {
		t.Fatalf("err = %v, want duplicate version error", err)
	}
}

func TestEmbeddedSchema(t *testing.T) {
	t.Parallel()

	got, err := Discover(schema.FS)
	if err != nil {
		t.Fatalf("discover embedded schema: %v", err)
	}
	if len(got) == 0 || got[0].Version != "001" {
		t.Fatalf("embedded migrations = %+v", got)
	}
}
