package db

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
)

// EnsureVideo records that path was opened and returns its video ID.
// An existing row gets its filesize and opened_at refreshed.
func EnsureVideo(db *sql.DB, path string, filesize int64) (int64, error) {
	base := filepath.Base(path)
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if _, err := db.Exec(UpsertVideoSQL, path, base, ext, filesize); err != nil {
		return 0, fmt.Errorf("upsert video: %w", err)
	}

	v, err := SelectVideoByPath(db, path)
	if err != nil {
		return 0, err
	}
	return v.ID, nil
}

// SelectVideoByPath returns the videos row for path, or sql.ErrNoRows.
func SelectVideoByPath(db *sql.DB, path string) (*Video, error) {
	var v Video
	err := db.QueryRow(SelectVideoByPathSQL, path).Scan(&v.ID, &v.Path, &v.Filename, &v.Extension, &v.Filesize, &v.DurationMs, &v.OpenedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// UpdateVideoDuration stores the last known duration of a video.
func UpdateVideoDuration(db *sql.DB, path string, durationMs int64) error {
	if _, err := db.Exec(UpdateVideoDurationSQL, durationMs, path); err != nil {
		return fmt.Errorf("update video duration: %w", err)
	}
	return nil
}

// SelectRecentVideos returns up to limit videos, most recently opened first.
func SelectRecentVideos(db *sql.DB, limit int) ([]Video, error) {
	rows, err := db.Query(SelectRecentVideosSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent videos: %w", err)
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Path, &v.Filename, &v.Extension, &v.Filesize, &v.DurationMs, &v.OpenedAt); err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

// InsertExportPending inserts an exports row in pending status.
func InsertExportPending(db *sql.DB, id, sourcePath, destPath string, startMs, endMs int64) error {
	if _, err := db.Exec(InsertExportPendingSQL, id, sourcePath, destPath, startMs, endMs); err != nil {
		return fmt.Errorf("insert export: %w", err)
	}
	return nil
}

// MarkExportProcessing moves an export to processing and stamps started_at.
func MarkExportProcessing(db *sql.DB, id string) error {
	if _, err := db.Exec(MarkExportProcessingSQL, id); err != nil {
		return fmt.Errorf("mark export processing: %w", err)
	}
	return nil
}

// MarkExportComplete moves an export to complete with the output filesize.
func MarkExportComplete(db *sql.DB, id string, filesize int64) error {
	if _, err := db.Exec(MarkExportCompleteSQL, filesize, id); err != nil {
		return fmt.Errorf("mark export complete: %w", err)
	}
	return nil
}

// MarkExportError moves an export to error. exitCode is nil when the encoder never ran.
func MarkExportError(db *sql.DB, id string, exitCode *int64, logMsg string) error {
	var code interface{}
	if exitCode != nil {
		code = *exitCode
	}
	if _, err := db.Exec(MarkExportErrorSQL, code, logMsg, id); err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	return nil
}

// SelectExportByID returns a single exports row.
func SelectExportByID(db *sql.DB, id string) (*Export, error) {
	e, err := scanExport(db.QueryRow(SelectExportByIDSQL, id))
	if err != nil {
		return nil, err
	}
	return e, nil
}

// SelectRecentExports returns up to limit exports, newest first.
func SelectRecentExports(db *sql.DB, limit int) ([]Export, error) {
	rows, err := db.Query(SelectRecentExportsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent exports: %w", err)
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan export: %w", err)
		}
		exports = append(exports, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exports: %w", err)
	}
	return exports, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExport(row rowScanner) (*Export, error) {
	var e Export
	err := row.Scan(&e.ID, &e.SourcePath, &e.DestPath, &e.StartMs, &e.EndMs, &e.Status, &e.ExitCode, &e.Filesize, &e.Log,
		&e.CreatedAt, &e.StartedAt, &e.FinishedAt, &e.ErrorAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
