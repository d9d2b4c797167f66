package database

import (
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *QueryLogStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return NewQueryLogStore(db)
}

func TestAppendAndListRecent(t *testing.T) {
	store := setupTestStore(t)

	entry := &QueryLog{
		CaseType:    "WP(C)",
		CaseNumber:  "1234",
		FilingYear:  "2024",
		QueryTime:   time.Now(),
		RawResponse: "<html><body>result</body></html>",
		Status:      StatusSuccess,
		ParsedData:  `{"case_number":"WP(C) 1234/2024"}`,
	}

	id, err := store.Append(entry)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if id == 0 {
		t.Error("Append() should return a non-zero id")
	}

	entries, err := store.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	got := entries[0]
	if got.CaseType != "WP(C)" || got.CaseNumber != "1234" || got.FilingYear != "2024" {
		t.Errorf("Entry fields = %s %s/%s, want WP(C) 1234/2024", got.CaseType, got.CaseNumber, got.FilingYear)
	}
	if got.Status != StatusSuccess {
		t.Errorf("Status = %q, want %q", got.Status, StatusSuccess)
	}
	if got.IsBlocked {
		t.Error("IsBlocked should default to false")
	}
}

func TestListRecentOrderAndLimit(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	// Insert out of chronological order.
	for _, offset := range []time.Duration{time.Hour, 0, 2 * time.Hour} {
		_, err := store.Append(&QueryLog{
			CaseType:   "CM",
			CaseNumber: "1",
			FilingYear: "2024",
			QueryTime:  base.Add(offset),
			Status:     StatusSuccess,
		})
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	entries, err := store.ListRecent(2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if !entries[0].QueryTime.After(entries[1].QueryTime) {
		t.Errorf("Entries not newest-first: %v then %v", entries[0].QueryTime, entries[1].QueryTime)
	}
	if !entries[0].QueryTime.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("Newest entry time = %v, want %v", entries[0].QueryTime, base.Add(2*time.Hour))
	}
}

func TestClearAll(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.Append(&QueryLog{
			CaseType:   "RFA",
			CaseNumber: "9",
			FilingYear: "2023",
			QueryTime:  time.Now(),
			Status:     StatusError,
		}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	entries, err := store.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history after clear, got %d entries", len(entries))
	}

	// The table must stay usable after a clear.
	if _, err := store.Append(&QueryLog{
		CaseType:   "RFA",
		CaseNumber: "10",
		FilingYear: "2023",
		QueryTime:  time.Now(),
		Status:     StatusSuccess,
	}); err != nil {
		t.Errorf("Append() after ClearAll() error = %v", err)
	}
}

func TestGetRawResponse(t *testing.T) {
	store := setupTestStore(t)

	raw := "<html><body>stored page</body></html>"
	id, err := store.Append(&QueryLog{
		CaseType:    "WP(C)",
		CaseNumber:  "55",
		FilingYear:  "2024",
		QueryTime:   time.Now(),
		RawResponse: raw,
		Status:      StatusSuccess,
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := store.GetRawResponse(id)
	if err != nil {
		t.Fatalf("GetRawResponse() error = %v", err)
	}
	if got != raw {
		t.Errorf("GetRawResponse() = %q, want %q", got, raw)
	}

	if _, err := store.GetRawResponse(id + 1000); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRawResponse() for missing id error = %v, want ErrNotFound", err)
	}
}

func TestCount(t *testing.T) {
	store := setupTestStore(t)

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}

	for i := 0; i < 2; i++ {
		if _, err := store.Append(&QueryLog{
			CaseType:   "CM",
			CaseNumber: "2",
			FilingYear: "2022",
			QueryTime:  time.Now(),
			Status:     StatusSuccess,
		}); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	count, err = store.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}
}
