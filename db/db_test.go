package db

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/video-cutter/pkg/export"
)

var _ export.Recorder = (*History)(nil)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testRequest(input string, start, end float64) export.Request {
	return export.NewRequest(input, start, end, "/out/clip.mp4", export.Presets[export.FormatMP4])
}

func TestOpenAppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatal(err)
	}
	migrations, err := listMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if n != len(migrations) {
		t.Errorf("schema_migrations has %d rows, want %d", n, len(migrations))
	}
	for i := 1; i < len(migrations); i++ {
		if migrations[i-1].version >= migrations[i].version {
			t.Errorf("migrations not sorted: %+v", migrations)
		}
	}
}

func TestHistoryRecordsOutcome(t *testing.T) {
	db := openTestDB(t)
	h := NewHistory(db)
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return clock }

	saved := testRequest("/v/a.mkv", 10, 40)
	failed := testRequest("/v/b.mkv", 1, 2)

	for _, req := range []export.Request{saved, failed} {
		if err := h.ExportStarted(req); err != nil {
			t.Fatalf("ExportStarted: %v", err)
		}
	}

	running, err := SelectExportByJob(db, saved.JobID)
	if err != nil || running == nil {
		t.Fatalf("SelectExportByJob = %v, %v", running, err)
	}
	if running.Status != StatusRunning || running.FinishedAt != nil {
		t.Errorf("new export = %+v", running)
	}

	clock = clock.Add(time.Minute)
	if err := h.ExportFinished(saved, nil); err != nil {
		t.Fatalf("ExportFinished saved: %v", err)
	}
	if err := h.ExportFinished(failed, errors.New("exit status 1")); err != nil {
		t.Fatalf("ExportFinished failed: %v", err)
	}

	got, err := SelectExportByJob(db, saved.JobID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusSaved || got.Error != "" || got.FinishedAt == nil {
		t.Errorf("saved export = %+v", got)
	}
	if got.Start != 10 || got.Duration != 30 || got.End() != 40 || got.Format != "mp4" || got.InputPath != "/v/a.mkv" {
		t.Errorf("saved export fields = %+v", got)
	}
	if !got.FinishedAt.Equal(clock) {
		t.Errorf("FinishedAt = %v, want %v", got.FinishedAt, clock)
	}

	got, err = SelectExportByJob(db, failed.JobID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusFailed || got.Error != "exit status 1" {
		t.Errorf("failed export = %+v", got)
	}
}

func TestFinishUnknownJob(t *testing.T) {
	db := openTestDB(t)
	if err := FinishExport(db, "missing", nil, time.Now()); err == nil {
		t.Error("expected an error for an unknown job")
	}
	got, err := SelectExportByJob(db, "missing")
	if err != nil || got != nil {
		t.Errorf("SelectExportByJob(missing) = %v, %v", got, err)
	}
}

func TestListExports(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	inputs := []string{"/v/a.mkv", "/v/b.mkv", "/v/a.mkv"}
	var jobs []string
	for i, in := range inputs {
		req := testRequest(in, float64(i), float64(i+1))
		jobs = append(jobs, req.JobID)
		if err := InsertExport(db, req, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}

	all, err := ListExports(db, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 || all[0].JobID != jobs[2] || all[2].JobID != jobs[0] {
		t.Errorf("ListExports order = %+v", all)
	}

	onlyA, err := ListExports(db, "/v/a.mkv", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(onlyA) != 2 {
		t.Errorf("ListExports(a) returned %d rows", len(onlyA))
	}

	limited, err := ListExports(db, "", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].JobID != jobs[2] {
		t.Errorf("ListExports limit 1 = %+v", limited)
	}

	n, err := ClearExports(db)
	if err != nil || n != 3 {
		t.Errorf("ClearExports = %d, %v", n, err)
	}
}

func TestMarkStaleExports(t *testing.T) {
	db := openTestDB(t)
	stale := testRequest("/v/a.mkv", 0, 5)
	done := testRequest("/v/a.mkv", 5, 10)
	now := time.Now()
	for _, req := range []export.Request{stale, done} {
		if err := InsertExport(db, req, now); err != nil {
			t.Fatal(err)
		}
	}
	if err := FinishExport(db, done.JobID, nil, now); err != nil {
		t.Fatal(err)
	}

	n, err := MarkStaleExports(db, now)
	if err != nil || n != 1 {
		t.Fatalf("MarkStaleExports = %d, %v", n, err)
	}
	got, err := SelectExportByJob(db, stale.JobID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != StatusFailed || got.Error != "interrupted" {
		t.Errorf("stale export = %+v", got)
	}
}
