package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/user/rangecut/config"
	"github.com/user/rangecut/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the configured mpv and ffmpeg binaries are installed and available.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		if !Doctor(cfg, cmd.OutOrStdout()) {
			return errors.New("some dependencies are missing")
		}
		return nil
	},
}

// Doctor prints one line per dependency and reports whether all were found.
func Doctor(cfg *config.Config, out io.Writer) bool {
	fmt.Fprintln(out, "Checking dependencies...")
	fmt.Fprintln(out)

	allGood := true
	for _, st := range deps.CheckAll(cfg.MpvPath, cfg.FFmpegPath) {
		if st.Err != nil {
			fmt.Fprintf(out, "✗ %s: NOT FOUND\n", st.Program.Name)
			fmt.Fprintf(out, "  Install from: %s\n", st.Program.InstallURL)
			allGood = false
			continue
		}
		fmt.Fprintf(out, "✓ %s: %s\n", st.Program.Name, st.Path)
	}

	fmt.Fprintln(out)
	if allGood {
		fmt.Fprintln(out, "All dependencies are installed!")
	}
	return allGood
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
