package index

import (
	"os"
	"testing"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "ansuz-index-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMarkProcessed_RoundTrip(t *testing.T) {
	db := testDB(t)

	if err := db.MarkProcessed("20_inputs/a.md", "abc123", "summarize"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	ok, err := db.IsProcessed("20_inputs/a.md", "abc123")
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if !ok {
		t.Error("expected processed=true for same checksum")
	}
}

func TestIsProcessed_ChangedChecksum(t *testing.T) {
	db := testDB(t)

	if err := db.MarkProcessed("a.md", "old", "summarize"); err != nil {
		t.Fatal(err)
	}
	ok, err := db.IsProcessed("a.md", "new")
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if ok {
		t.Error("changed checksum should count as unprocessed")
	}
}

func TestIsProcessed_UnknownPath(t *testing.T) {
	db := testDB(t)
	ok, err := db.IsProcessed("never/seen.md", "x")
	if err != nil {
		t.Fatalf("is processed: %v", err)
	}
	if ok {
		t.Error("unknown path should be unprocessed")
	}
}

func TestIsProcessed_QueryErrorSurfaces(t *testing.T) {
	db := testDB(t)
	db.Close()

	ok, err := db.IsProcessed("a.md", "x")
	if err == nil {
		t.Fatal("expected error from closed database")
	}
	if ok {
		t.Error("failed lookup must not report processed")
	}
}

func TestMarkProcessed_UpsertsChecksum(t *testing.T) {
	db := testDB(t)

	if err := db.MarkProcessed("a.md", "v1", "summarize"); err != nil {
		t.Fatal(err)
	}
	if err := db.MarkProcessed("a.md", "v2", "summarize"); err != nil {
		t.Fatal(err)
	}

	if ok, _ := db.IsProcessed("a.md", "v1"); ok {
		t.Error("stale checksum still marked processed")
	}
	if ok, _ := db.IsProcessed("a.md", "v2"); !ok {
		t.Error("new checksum not marked processed")
	}
}

func TestAllProcessed_FiltersByKind(t *testing.T) {
	db := testDB(t)

	db.MarkProcessed("a.md", "1", "summarize")
	db.MarkProcessed("b.md", "2", "classify")

	got, err := db.AllProcessed("summarize")
	if err != nil {
		t.Fatalf("all processed: %v", err)
	}
	if len(got) != 1 || got["a.md"] != "1" {
		t.Errorf("got %v", got)
	}

	all, err := db.AllProcessed("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}
}

func TestForgetProcessed(t *testing.T) {
	db := testDB(t)

	db.MarkProcessed("a.md", "1", "summarize")
	if err := db.ForgetProcessed("a.md"); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if ok, _ := db.IsProcessed("a.md", "1"); ok {
		t.Error("forgotten path still processed")
	}
}

func TestRecentRuns_NewestFirst(t *testing.T) {
	db := testDB(t)

	db.LogRun("daily", "2026-01-05", "ok", "")
	db.LogRun("weekly", "2026-W02", "failed", "empty corpus")

	runs, err := db.RecentRuns(10)
	if err != nil {
		t.Fatalf("recent runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].Pipeline != "weekly" || runs[1].Pipeline != "daily" {
		t.Errorf("order = %s, %s", runs[0].Pipeline, runs[1].Pipeline)
	}
	if runs[0].Status != "failed" || runs[0].Detail != "empty corpus" {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestRecentRuns_LimitApplies(t *testing.T) {
	db := testDB(t)
	for i := 0; i < 5; i++ {
		db.LogRun("daily", "t", "ok", "")
	}
	runs, err := db.RecentRuns(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Errorf("len = %d, want 3", len(runs))
	}
}
