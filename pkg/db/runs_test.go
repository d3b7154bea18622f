package db

import (
	"strings"
	"testing"
)

func TestRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("https://envirotestconstruct.com", "enviro_content.json", 3)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if len(runID) != 36 {
		t.Errorf("StartRun() id = %q, want a UUID", runID)
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != RunRunning {
		t.Errorf("run.Status = %q, want %q", run.Status, RunRunning)
	}
	if run.FinishedAt != nil {
		t.Error("run.FinishedAt should be nil while running")
	}
	if run.PageCount != 3 {
		t.Errorf("run.PageCount = %d, want 3", run.PageCount)
	}

	records := []PageRecord{
		{URL: "https://envirotestconstruct.com", Status: PageOK, StatusCode: 200, WordCount: 600, ChunkCount: 2},
		{URL: "https://envirotestconstruct.com/about", Status: PageSkipped, StatusCode: 200, WordCount: 50},
		{URL: "https://envirotestconstruct.com/missing", Status: PageFailed, StatusCode: 404, ErrorType: "http_status", ErrorMessage: "HTTP 404: Not Found"},
	}
	for _, rec := range records {
		if err := db.RecordPage(runID, rec); err != nil {
			t.Fatalf("RecordPage(%s) error = %v", rec.URL, err)
		}
	}

	if err := db.FinishRun(runID, RunCompleted, 1, 2); err != nil {
		t.Fatalf("FinishRun() error = %v", err)
	}

	run, err = db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != RunCompleted {
		t.Errorf("run.Status = %q, want %q", run.Status, RunCompleted)
	}
	if run.FinishedAt == nil {
		t.Fatal("run.FinishedAt is nil after FinishRun")
	}
	if run.Duration() < 0 {
		t.Errorf("run.Duration() = %v, want >= 0", run.Duration())
	}
	if run.FailedCount != 1 || run.ChunkCount != 2 {
		t.Errorf("counts = (%d failed, %d chunks), want (1, 2)", run.FailedCount, run.ChunkCount)
	}

	pages, err := db.GetRunPages(runID)
	if err != nil {
		t.Fatalf("GetRunPages() error = %v", err)
	}
	if len(pages) != len(records) {
		t.Fatalf("GetRunPages() returned %d pages, want %d", len(pages), len(records))
	}
	for i, want := range records {
		if pages[i] != want {
			t.Errorf("pages[%d] = %+v, want %+v", i, pages[i], want)
		}
	}
}

func TestFinishRun_Unknown(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.FinishRun("does-not-exist", RunCompleted, 0, 0); err == nil {
		t.Error("FinishRun() expected error for unknown run")
	}
}

func TestGetRun_Prefix(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("https://example.com", "out.json", 1)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}

	run, err := db.GetRun(runID[:8])
	if err != nil {
		t.Fatalf("GetRun(prefix) error = %v", err)
	}
	if run.RunID != runID {
		t.Errorf("GetRun(prefix) = %s, want %s", run.RunID, runID)
	}

	if _, err := db.GetRun("zzzz"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetRun(unknown) error = %v, want not found", err)
	}

	if _, err := db.StartRun("https://example.com", "out.json", 1); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if _, err := db.GetRun(""); err == nil || !strings.Contains(err.Error(), "ambiguous") {
		t.Errorf("GetRun(\"\") error = %v, want ambiguous", err)
	}
}

func TestListRuns(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	var ids []string
	for i := 0; i < 3; i++ {
		id, err := db.StartRun("https://example.com", "out.json", i)
		if err != nil {
			t.Fatalf("StartRun() error = %v", err)
		}
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("ListRuns(0) returned %d runs, want 3", len(runs))
	}
	if runs[0].RunID != ids[2] {
		t.Errorf("ListRuns()[0] = %s, want most recent %s", runs[0].RunID, ids[2])
	}

	runs, err = db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns(2) error = %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("ListRuns(2) returned %d runs, want 2", len(runs))
	}
}

func TestGetURLAttempts(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	const pageURL = "https://envirotestconstruct.com/asbestos-testing"

	first, err := db.StartRun("https://envirotestconstruct.com", "out.json", 1)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if err := db.RecordPage(first, PageRecord{URL: pageURL, Status: PageFailed, ErrorType: "timeout", ErrorMessage: "deadline exceeded"}); err != nil {
		t.Fatalf("RecordPage() error = %v", err)
	}

	second, err := db.StartRun("https://envirotestconstruct.com", "out.json", 1)
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if err := db.RecordPage(second, PageRecord{URL: pageURL, Status: PageOK, StatusCode: 200, WordCount: 800, ChunkCount: 2}); err != nil {
		t.Fatalf("RecordPage() error = %v", err)
	}

	attempts, err := db.GetURLAttempts(pageURL)
	if err != nil {
		t.Fatalf("GetURLAttempts() error = %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("GetURLAttempts() returned %d attempts, want 2", len(attempts))
	}
	if attempts[0].RunID != second || attempts[0].Status != PageOK || attempts[0].ChunkCount != 2 {
		t.Errorf("attempts[0] = %+v, want the ok attempt from run %s", attempts[0], second)
	}
	if attempts[1].RunID != first || attempts[1].ErrorType != "timeout" {
		t.Errorf("attempts[1] = %+v, want the timeout from run %s", attempts[1], first)
	}
	if attempts[0].URL != pageURL || attempts[0].AttemptedAt.IsZero() {
		t.Errorf("attempts[0] URL/time = %q/%v", attempts[0].URL, attempts[0].AttemptedAt)
	}

	if _, err := db.GetURLAttempts("https://envirotestconstruct.com/never-seen"); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("GetURLAttempts(unknown) error = %v, want not found", err)
	}
}
