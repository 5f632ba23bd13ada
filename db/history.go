package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/user/video-cutter/pkg/export"
)

// DefaultHistoryLimit is how many rows ListExports returns for limit <= 0.
const DefaultHistoryLimit = 50

// InsertExport records an export that has just started.
func InsertExport(db *sql.DB, req export.Request, startedAt time.Time) error {
	_, err := db.Exec(InsertExportSQL,
		req.JobID,
		req.Input,
		req.Output,
		string(req.Preset.Format),
		req.Start,
		req.Duration,
		startedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

// FinishExport sets the outcome of an export. A nil runErr means saved.
func FinishExport(db *sql.DB, jobID string, runErr error, finishedAt time.Time) error {
	status, msg := StatusSaved, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}
	res, err := db.Exec(UpdateExportFinishedSQL, status, msg, finishedAt.UTC(), jobID)
	if err != nil {
		return fmt.Errorf("update export: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update export: no export with job id %s", jobID)
	}
	return nil
}

// MarkStaleExports fails every export still marked running. Called at
// startup: a running row can only be left over from a process that died.
func MarkStaleExports(db *sql.DB, now time.Time) (int64, error) {
	res, err := db.Exec(MarkStaleExportsSQL, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("mark stale exports: %w", err)
	}
	return res.RowsAffected()
}

// SelectExportByJob returns the export with the given job ID, or nil if
// there is none.
func SelectExportByJob(db *sql.DB, jobID string) (*Export, error) {
	e, err := scanExport(db.QueryRow(SelectExportByJobSQL, jobID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select export: %w", err)
	}
	return &e, nil
}

// ListExports returns the most recent exports, newest first. A non-empty
// input restricts the list to clips of that file.
func ListExports(db *sql.DB, input string, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	var (
		rows *sql.Rows
		err  error
	)
	if input == "" {
		rows, err = db.Query(SelectExportsSQL, limit)
	} else {
		rows, err = db.Query(SelectExportsByInputSQL, input, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("list exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

// ClearExports deletes the whole history.
func ClearExports(db *sql.DB) (int64, error) {
	res, err := db.Exec(DeleteExportsSQL)
	if err != nil {
		return 0, fmt.Errorf("clear exports: %w", err)
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExport(row rowScanner) (Export, error) {
	var (
		e        Export
		finished sql.NullTime
	)
	err := row.Scan(
		&e.ID, &e.JobID, &e.InputPath, &e.OutputPath, &e.Format,
		&e.Start, &e.Duration, &e.Status, &e.Error,
		&e.StartedAt, &finished,
	)
	if err != nil {
		return Export{}, err
	}
	if finished.Valid {
		t := finished.Time
		e.FinishedAt = &t
	}
	return e, nil
}

// History records exports in the database. It implements export.Recorder.
type History struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistory wraps an open database.
func NewHistory(db *sql.DB) *History {
	return &History{db: db, now: time.Now}
}

// ExportStarted implements export.Recorder.
func (h *History) ExportStarted(req export.Request) error {
	return InsertExport(h.db, req, h.now())
}

// ExportFinished implements export.Recorder.
func (h *History) ExportFinished(req export.Request, runErr error) error {
	return FinishExport(h.db, req.JobID, runErr, h.now())
}
