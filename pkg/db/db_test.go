package db

import (
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if _, err := db.StartRun("https://example.com", "out.json", 1); err != nil {
		t.Fatalf("StartRun() on fresh database error = %v", err)
	}
	db.Close()

	// reopening keeps existing data
	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() error = %v", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("ListRuns() returned %d runs, want 1", len(runs))
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("failed to read user_version: %v", err)
	}
	if version != schemaVersion {
		t.Errorf("user_version = %d, want %d", version, schemaVersion)
	}
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	// every query shares the connection the pragmas were applied to
	for i := 0; i < 3; i++ {
		err := db.RecordPage("no-such-run", PageRecord{URL: "https://example.com", Status: PageOK})
		if err == nil {
			t.Fatal("RecordPage() for an unknown run should violate the foreign key")
		}
	}
}

func TestInsertURL(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{
			name: "home page",
			url:  "https://envirotestconstruct.com",
		},
		{
			name: "URL with path",
			url:  "https://envirotestconstruct.com/soil-testing",
		},
		{
			name:    "invalid URL",
			url:     "http://[::1",
			wantErr: true,
		},
		{
			name: "duplicate URL returns same ID",
			url:  "https://envirotestconstruct.com",
		},
	}

	var firstID int64
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urlID, err := db.InsertURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertURL() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if urlID == 0 && !tt.wantErr {
				t.Error("InsertURL() returned 0 ID")
			}

			// First and last test use same URL, should get same ID
			if i == 0 {
				firstID = urlID
			}
			if i == len(tests)-1 && urlID != firstID {
				t.Errorf("Duplicate URL got different ID: got %d, want %d", urlID, firstID)
			}
		})
	}
}

func TestInsertURL_ParsesComponents(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	urlID, err := db.InsertURL("https://envirotestconstruct.com/air-quality-monitoring")
	if err != nil {
		t.Fatalf("InsertURL() failed: %v", err)
	}

	var scheme, domain, path string
	err = db.QueryRow(`SELECT scheme, domain, path FROM urls WHERE url_id = ?`, urlID).Scan(&scheme, &domain, &path)
	if err != nil {
		t.Fatalf("failed to query URL: %v", err)
	}

	if scheme != "https" {
		t.Errorf("scheme = %q, want %q", scheme, "https")
	}
	if domain != "envirotestconstruct.com" {
		t.Errorf("domain = %q, want %q", domain, "envirotestconstruct.com")
	}
	if path != "/air-quality-monitoring" {
		t.Errorf("path = %q, want %q", path, "/air-quality-monitoring")
	}

	gotID, err := db.GetURLID("https://envirotestconstruct.com/air-quality-monitoring")
	if err != nil {
		t.Fatalf("GetURLID() error = %v", err)
	}
	if gotID != urlID {
		t.Errorf("GetURLID() = %d, want %d", gotID, urlID)
	}

	if _, err := db.GetURLID("https://unknown.example"); err == nil {
		t.Error("GetURLID() expected error for unknown URL")
	}
}
