package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/article"
	"github.com/starford/ansuz/internal/ocr"
	"github.com/starford/ansuz/internal/pipeline"
	"github.com/starford/ansuz/internal/storage"
	"github.com/starford/ansuz/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()

	_, store := testutil.TestVault(t)
	db := testutil.TestDB(t)
	runner := pipeline.New(store, db, ai.Mock{}, ocr.Mock{}, article.Mock{}, pipeline.Paths{
		DailyDir:    "50_daily",
		DailyPDFDir: "50_daily_pdf",
		WeeklyDir:   "60_weekly",
		FleetingDir: "10_fleeting",
		BookmarkDir: "20_inputs/Resource_Raindrop",
		BooksDir:    "20_inputs/Resource_Kindle読書",
	}, nil)

	return New(store, runner), store
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so invoke the handler
	// functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "run_daily":
		result, err = srv.runDaily(ctx, req)
	case "run_weekly":
		result, err = srv.runWeekly(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "extract_section":
		result, err = srv.extractSection(ctx, req)
	case "upsert_section":
		result, err = srv.upsertSection(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestRunDailyTool(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("50_daily_pdf/2026-01-05_daily_filled.pdf", []byte("%PDF"))

	r := callTool(t, srv, "run_daily", map[string]interface{}{"date": "2026-01-05"})
	if r.IsError {
		t.Fatalf("run_daily failed: %s", resultText(r))
	}
	if !store.Exists("50_daily/2026-01-05.md") {
		t.Error("daily note not written")
	}
}

func TestRunDailyTool_MissingPDF(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "run_daily", map[string]interface{}{"date": "2026-01-05"})
	if !r.IsError {
		t.Error("expected error for missing pdf")
	}
}

func TestRunWeeklyTool_InvalidWeek(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "run_weekly", map[string]interface{}{"week": "not-a-week"})
	if !r.IsError {
		t.Error("expected error for invalid week")
	}
}

func TestReadNoteTool(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("test.md", []byte("# Test\nHello"))

	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "test.md"})
	if resultText(r) != "# Test\nHello" {
		t.Errorf("read result = %q", resultText(r))
	}
}

func TestReadNoteTool_Missing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"path": "nope.md"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestListNotesTool(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("a.md", []byte("a"))
	_ = store.Write("sub/b.md", []byte("b"))

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "a.md") || !strings.Contains(text, "sub/b.md") {
		t.Errorf("list = %q", text)
	}
}

func TestSectionTools(t *testing.T) {
	srv, store := testServer(t)
	_ = store.Write("note.md", []byte("# Note\n## 状況\n古い内容\n"))

	r := callTool(t, srv, "upsert_section", map[string]interface{}{
		"path":   "note.md",
		"header": "## 状況",
		"body":   "新しい内容",
	})
	if r.IsError {
		t.Fatalf("upsert failed: %s", resultText(r))
	}

	r = callTool(t, srv, "extract_section", map[string]interface{}{
		"path":   "note.md",
		"header": "## 状況",
	})
	if resultText(r) != "新しい内容" {
		t.Errorf("extract = %q", resultText(r))
	}

	// Absent headers extract as empty text, not an error.
	r = callTool(t, srv, "extract_section", map[string]interface{}{
		"path":   "note.md",
		"header": "## 存在しない",
	})
	if r.IsError || resultText(r) != "" {
		t.Errorf("absent header: isError=%v text=%q", r.IsError, resultText(r))
	}
}
