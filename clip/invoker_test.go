package clip

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/rangecut/db"
	"github.com/user/rangecut/pkg/timecode"
)

type fakeRunner struct {
	mu      sync.Mutex
	calls   [][]string
	code    int
	stderr  string
	err     error
	output  []byte
	release chan struct{}
	started chan struct{}
}

func (r *fakeRunner) Run(_ context.Context, name string, args []string) (int, []byte, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string{name}, args...))
	r.mu.Unlock()

	if r.started != nil {
		close(r.started)
	}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return -1, nil, r.err
	}
	if r.code == 0 && r.output != nil {
		if err := os.WriteFile(args[len(args)-2], r.output, 0644); err != nil {
			return -1, nil, err
		}
	}
	return r.code, []byte(r.stderr), nil
}

func testJob(t *testing.T) Job {
	t.Helper()
	dest := filepath.Join(t.TempDir(), "nested", "cut.mp4")
	return NewJob("/videos/sixty.mp4", timecode.MustParse("00:00:10"), timecode.MustParse("00:00:25"), dest)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenPath(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestExportSuccess(t *testing.T) {
	runner := &fakeRunner{output: []byte("fake mp4 data")}
	database := openTestDB(t)
	inv := NewInvoker(runner, "", database)
	job := testJob(t)

	result, err := inv.Export(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, int64(len("fake mp4 data")), result.Filesize)
	assert.Equal(t, job, result.Job)
	assert.False(t, inv.Busy())

	require.Len(t, runner.calls, 1)
	assert.Equal(t, DefaultBinary, runner.calls[0][0])
	assert.Equal(t, job.Args(), runner.calls[0][1:])

	row, err := db.SelectExportByID(database, job.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusComplete, row.Status)
	assert.Equal(t, result.Filesize, row.Filesize)
	assert.Equal(t, int64(10000), row.StartMs)
	assert.Equal(t, int64(25000), row.EndMs)
}

func TestExportExecutionError(t *testing.T) {
	runner := &fakeRunner{code: 1, stderr: "Invalid data found when processing input"}
	database := openTestDB(t)
	inv := NewInvoker(runner, "ffmpeg", database)
	job := testJob(t)

	result, err := inv.Export(context.Background(), job)
	var execErr *ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.ExitCode)
	assert.Equal(t, "ffmpeg failed (code 1)", execErr.Error())
	assert.Equal(t, runner.stderr, result.Stderr)

	row, err := db.SelectExportByID(database, job.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusError, row.Status)
	require.NotNil(t, row.ExitCode)
	assert.Equal(t, int64(1), *row.ExitCode)
	assert.Equal(t, runner.stderr, row.Log)
}

func TestExportLaunchError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("executable file not found in $PATH")}
	database := openTestDB(t)
	inv := NewInvoker(runner, "ffmpeg", database)
	job := testJob(t)

	_, err := inv.Export(context.Background(), job)
	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, "failed to start ffmpeg: executable file not found in $PATH", err.Error())
	assert.False(t, inv.Busy())

	row, err := db.SelectExportByID(database, job.ID)
	require.NoError(t, err)
	assert.Equal(t, db.StatusError, row.Status)
	assert.Nil(t, row.ExitCode)
}

func TestExportRealMissingBinary(t *testing.T) {
	inv := NewInvoker(nil, "rangecut-no-such-encoder", nil)

	_, err := inv.Export(context.Background(), testJob(t))
	var launchErr *LaunchError
	assert.True(t, errors.As(err, &launchErr))
}

func TestExportInvalidJob(t *testing.T) {
	runner := &fakeRunner{}
	inv := NewInvoker(runner, "ffmpeg", nil)

	job := testJob(t)
	job.End = job.Start
	_, err := inv.Export(context.Background(), job)
	assert.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestExportSingleFlight(t *testing.T) {
	runner := &fakeRunner{release: make(chan struct{}), started: make(chan struct{})}
	inv := NewInvoker(runner, "ffmpeg", nil)

	first, second := testJob(t), testJob(t)

	done := make(chan error, 1)
	go func() {
		_, err := inv.Export(context.Background(), first)
		done <- err
	}()

	<-runner.started
	assert.True(t, inv.Busy())

	_, err := inv.Export(context.Background(), second)
	assert.ErrorIs(t, err, ErrInFlight)

	close(runner.release)
	require.NoError(t, <-done)
	assert.False(t, inv.Busy())
	assert.Len(t, runner.calls, 1)
}
