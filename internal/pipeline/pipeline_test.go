package pipeline

import (
	"testing"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/article"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/ocr"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/testutil"
)

func testPaths() Paths {
	return Paths{
		DailyDir:    "50_daily",
		DailyPDFDir: "50_daily_pdf",
		WeeklyDir:   "60_weekly",
		FleetingDir: "10_fleeting",
		BookmarkDir: "20_inputs/Resource_Raindrop",
		BooksDir:    "20_inputs/Resource_Kindle読書",
	}
}

// newTestRunner builds a runner over a temp vault with all collaborators
// mocked.
func newTestRunner(t *testing.T) (*Runner, storage.Provider) {
	t.Helper()
	_, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	r := New(store, db, ai.Mock{}, ocr.Mock{}, article.Mock{}, testPaths(), nil)
	return r, store
}

func TestSetNotify_ReceivesRunEvents(t *testing.T) {
	r, _ := newTestRunner(t)

	var events []models.PipelineEvent
	r.SetNotify(func(ev models.PipelineEvent) { events = append(events, ev) })

	r.emit("daily", "2026-01-05", "ok", "detail")

	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Pipeline != "daily" || ev.Path != "2026-01-05" || ev.Status != "ok" || ev.Detail != "detail" {
		t.Errorf("event = %+v", ev)
	}
}
