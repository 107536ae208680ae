package db

import "time"

// Export lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusComplete   = "complete"
	StatusError      = "error"
)

// Video represents a row in the videos table.
type Video struct {
	ID         int64
	Path       string
	Filename   string
	Extension  string
	Filesize   int64
	DurationMs int64
	OpenedAt   *time.Time
}

// Export represents a row in the exports table.
type Export struct {
	ID         string
	SourcePath string
	DestPath   string
	StartMs    int64
	EndMs      int64
	Status     string
	ExitCode   *int64
	Filesize   int64
	Log        string
	CreatedAt  *time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
	ErrorAt    *time.Time
}
