package clip

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/user/rangecut/db"
	"github.com/user/rangecut/logging"
)

// DefaultBinary is the encoder looked up on PATH when none is configured.
const DefaultBinary = "ffmpeg"

// Result describes a finished export.
type Result struct {
	Job      Job
	Filesize int64
	Elapsed  time.Duration
	Stderr   string
}

// Invoker runs one export at a time and records each one in the history database when DB is set.
type Invoker struct {
	Runner Runner
	Binary string
	DB     *sql.DB

	logger zerolog.Logger
	busy   atomic.Bool
}

// NewInvoker creates an Invoker. A nil runner means ExecRunner; an empty binary means DefaultBinary.
// database may be nil, in which case no history is written.
func NewInvoker(runner Runner, binary string, database *sql.DB) *Invoker {
	if runner == nil {
		runner = ExecRunner{}
	}
	if binary == "" {
		binary = DefaultBinary
	}
	return &Invoker{
		Runner: runner,
		Binary: binary,
		DB:     database,
		logger: logging.WithComponent("clip"),
	}
}

// Busy reports whether an export is currently running.
func (inv *Invoker) Busy() bool {
	return inv.busy.Load()
}

// Export runs the encoder for job and blocks until it exits.
// It returns ErrInFlight if another export is running, *LaunchError if the encoder
// could not be started, and *ExecutionError if it exited non-zero.
func (inv *Invoker) Export(ctx context.Context, job Job) (Result, error) {
	result := Result{Job: job}

	if err := job.Validate(); err != nil {
		return result, err
	}

	if !inv.busy.CompareAndSwap(false, true) {
		return result, ErrInFlight
	}
	defer inv.busy.Store(false)

	log := inv.logger.With().Str("job", job.ID).Logger()
	inv.record(func(d *sql.DB) error {
		return db.InsertExportPending(d, job.ID, job.SourcePath, job.DestPath, job.Start.Milliseconds(), job.End.Milliseconds())
	})

	if err := os.MkdirAll(filepath.Dir(job.DestPath), 0755); err != nil {
		err = fmt.Errorf("failed to create output directory: %w", err)
		inv.record(func(d *sql.DB) error { return db.MarkExportError(d, job.ID, nil, err.Error()) })
		return result, err
	}

	args := job.Args()
	log.Info().Str("cmd", inv.Binary).Strs("args", args).Msg("starting export")
	inv.record(func(d *sql.DB) error { return db.MarkExportProcessing(d, job.ID) })

	started := time.Now()
	code, stderr, err := inv.Runner.Run(ctx, inv.Binary, args)
	result.Elapsed = time.Since(started)
	result.Stderr = string(stderr)

	if err != nil {
		launchErr := &LaunchError{Binary: inv.Binary, Err: err}
		log.Error().Err(err).Msg("encoder could not be started")
		inv.record(func(d *sql.DB) error { return db.MarkExportError(d, job.ID, nil, launchErr.Error()) })
		return result, launchErr
	}

	if code != 0 {
		execErr := &ExecutionError{Binary: inv.Binary, ExitCode: code, Stderr: result.Stderr}
		log.Error().Int("exit_code", code).Dur("elapsed", result.Elapsed).Msg("encoder failed")
		exitCode := int64(code)
		inv.record(func(d *sql.DB) error { return db.MarkExportError(d, job.ID, &exitCode, result.Stderr) })
		return result, execErr
	}

	if info, err := os.Stat(job.DestPath); err == nil {
		result.Filesize = info.Size()
	}

	log.Info().Str("dest", job.DestPath).Int64("bytes", result.Filesize).Dur("elapsed", result.Elapsed).Msg("export complete")
	inv.record(func(d *sql.DB) error { return db.MarkExportComplete(d, job.ID, result.Filesize) })

	return result, nil
}

// record writes to the history database. History failures never fail the export.
func (inv *Invoker) record(fn func(*sql.DB) error) {
	if inv.DB == nil {
		return
	}
	if err := fn(inv.DB); err != nil {
		inv.logger.Warn().Err(err).Msg("failed to record export history")
	}
}
