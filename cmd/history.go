package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/user/rangecut/config"
	"github.com/user/rangecut/db"
	"github.com/user/rangecut/pkg/timecode"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List recent exports, or show one in detail",
	Long: `List recent cuts with their range, status and destination. Failed cuts may have left partial files behind.

With an export id, show that export in full including the encoder log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.OpenPath(config.FromContext(cmd.Context()).DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		if len(args) == 1 {
			return PrintExport(database, args[0], cmd.OutOrStdout())
		}
		return PrintHistory(database, historyLimit, cmd.OutOrStdout())
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened videos",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := db.OpenPath(config.FromContext(cmd.Context()).DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		return PrintRecent(database, historyLimit, cmd.OutOrStdout())
	},
}

// PrintHistory writes up to limit exports as a table.
func PrintHistory(database *sql.DB, limit int, out io.Writer) error {
	exports, err := db.SelectRecentExports(database, limit)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		fmt.Fprintln(out, "No exports yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "When\tID\tRange\tStatus\tSize\tDestination")
	fmt.Fprintln(w, "----\t--\t-----\t------\t----\t-----------")

	for _, e := range exports {
		status := e.Status
		if e.Status == db.StatusError && e.ExitCode != nil {
			status = fmt.Sprintf("error (%d)", *e.ExitCode)
		}
		size := "-"
		if e.Status == db.StatusComplete {
			size = humanize.Bytes(uint64(e.Filesize))
		}
		fmt.Fprintf(w, "%s\t%s\t%s - %s\t%s\t%s\t%s\n",
			ago(e.CreatedAt),
			e.ID,
			timecode.Format(timecode.TimeCode(e.StartMs)),
			timecode.Format(timecode.TimeCode(e.EndMs)),
			status, size, e.DestPath)
	}

	return w.Flush()
}

// PrintExport writes every field of one export, followed by its encoder log.
func PrintExport(database *sql.DB, id string, out io.Writer) error {
	e, err := db.SelectExportByID(database, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("no export with id %s", id)
	}
	if err != nil {
		return err
	}

	start := timecode.TimeCode(e.StartMs)
	end := timecode.TimeCode(e.EndMs)

	exitCode := "-"
	if e.ExitCode != nil {
		exitCode = fmt.Sprint(*e.ExitCode)
	}
	finished := e.FinishedAt
	if finished == nil {
		finished = e.ErrorAt
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", e.ID)
	fmt.Fprintf(w, "Source:\t%s\n", e.SourcePath)
	fmt.Fprintf(w, "Destination:\t%s\n", e.DestPath)
	fmt.Fprintf(w, "Range:\t%s - %s (%s)\n", timecode.Format(start), timecode.Format(end), timecode.Format(end.Sub(start)))
	fmt.Fprintf(w, "Status:\t%s\n", e.Status)
	fmt.Fprintf(w, "Exit code:\t%s\n", exitCode)
	if e.Status == db.StatusComplete {
		fmt.Fprintf(w, "Size:\t%s\n", humanize.Bytes(uint64(e.Filesize)))
	}
	fmt.Fprintf(w, "Created:\t%s\n", ago(e.CreatedAt))
	fmt.Fprintf(w, "Finished:\t%s\n", ago(finished))
	if err := w.Flush(); err != nil {
		return err
	}

	if e.Log != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, e.Log)
	}
	return nil
}

// PrintRecent writes up to limit opened videos as a table.
func PrintRecent(database *sql.DB, limit int, out io.Writer) error {
	videos, err := db.SelectRecentVideos(database, limit)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		fmt.Fprintln(out, "No videos opened yet.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Opened\tDuration\tSize\tFile\tDirectory")
	fmt.Fprintln(w, "------\t--------\t----\t----\t---------")

	for _, v := range videos {
		duration := "-"
		if v.DurationMs > 0 {
			duration = timecode.Format(timecode.TimeCode(v.DurationMs))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ago(v.OpenedAt), duration, humanize.Bytes(uint64(v.Filesize)), v.Filename, filepath.Dir(v.Path))
	}

	return w.Flush()
}

func ago(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return humanize.Time(*t)
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of rows to show")
	recentCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of rows to show")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(recentCmd)
}
