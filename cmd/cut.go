package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/config"
	"github.com/user/rangecut/db"
	"github.com/user/rangecut/deps"
	"github.com/user/rangecut/pkg/timecode"
	"github.com/user/rangecut/trim"
)

var (
	cutStart  string
	cutEnd    string
	cutOutput string
)

var cutCmd = &cobra.Command{
	Use:   "cut <video-file>",
	Short: "Cut a range to a new file without the trimming screen",
	Long: `Cut the range --start to --end out of a video with an ffmpeg stream copy.

An end that is not after the start is moved to start + 15s, as in the trimming
screen. Without --output the file is named {name}_{start}_{end}.mp4 and placed in
output_dir, or next to the source.

Example:
  rangecut cut match.mkv --start 00:05:30 --end 00:05:45.500`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		source, err := resolveSource(args[0])
		if err != nil {
			return err
		}

		binary, err := deps.Check(deps.Ffmpeg, cfg.FFmpegPath)
		if err != nil {
			return err
		}

		database, err := db.OpenPath(cfg.DatabasePath)
		if err != nil {
			log.Warn().Err(err).Msg("history database unavailable")
			database = nil
		} else {
			defer database.Close()
		}

		return RunCut(cmd.Context(), clip.NewInvoker(nil, binary, database), CutRequest{
			Source:    source,
			Start:     cutStart,
			End:       cutEnd,
			Output:    cutOutput,
			OutputDir: cfg.OutputDir,
		}, cmd.OutOrStdout())
	},
}

// CutRequest is the input of a headless cut.
type CutRequest struct {
	Source    string
	Start     string
	End       string
	Output    string
	OutputDir string
}

// RunCut parses and normalizes the range, then runs one export through inv.
func RunCut(ctx context.Context, inv *clip.Invoker, req CutRequest, out io.Writer) error {
	start, err := timecode.Parse(req.Start)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := timecode.Parse(req.End)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}

	r, corrected := trim.Range{Start: start, End: end}.Normalize()
	if corrected {
		fmt.Fprintf(out, "End is not after start; using %s\n", timecode.Format(r.End))
	}

	dest := req.Output
	if dest == "" {
		dest = clip.SuggestPath(req.Source, req.OutputDir, r.Start, r.End)
	}
	dest = clip.EnsureMP4(dest)

	job := clip.NewJob(req.Source, r.Start, r.End, dest)
	fmt.Fprintf(out, "Cutting %s - %s...\n", timecode.Format(r.Start), timecode.Format(r.End))

	result, err := inv.Export(ctx, job)
	if err != nil {
		var execErr *clip.ExecutionError
		if errors.As(err, &execErr) && execErr.Stderr != "" {
			fmt.Fprintln(out, execErr.Stderr)
		}
		return err
	}

	fmt.Fprintf(out, "Cut saved: %s (%s, %s)\n", result.Job.DestPath, humanize.Bytes(uint64(result.Filesize)), result.Elapsed.Round(time.Millisecond))
	return nil
}

func init() {
	cutCmd.Flags().StringVar(&cutStart, "start", "", "range start, HH:MM:SS[.mmm] (required)")
	cutCmd.Flags().StringVar(&cutEnd, "end", "", "range end, HH:MM:SS[.mmm] (required)")
	cutCmd.Flags().StringVarP(&cutOutput, "output", "o", "", "destination file (.mp4)")
	_ = cutCmd.MarkFlagRequired("start")
	_ = cutCmd.MarkFlagRequired("end")

	rootCmd.AddCommand(cutCmd)
}
