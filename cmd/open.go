package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/user/rangecut/clip"
	"github.com/user/rangecut/config"
	"github.com/user/rangecut/db"
	"github.com/user/rangecut/deps"
	"github.com/user/rangecut/logging"
	"github.com/user/rangecut/mpv"
	"github.com/user/rangecut/tui"
	"github.com/user/rangecut/tui/forms"
)

var openCmd = &cobra.Command{
	Use:   "open [video-file]",
	Short: "Open a video in the trimming screen",
	Long: `Launch mpv and the trimming screen. Without a file argument a prompt asks for one;
files can also be opened from inside the screen with "o".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())

		var source string
		if len(args) == 1 {
			source = args[0]
		} else {
			if err := forms.NewOpenForm(&source).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
		}

		absPath, err := resolveSource(source)
		if err != nil {
			return err
		}

		if _, err := deps.Check(deps.Ffmpeg, cfg.FFmpegPath); err != nil {
			// Playback still works; cutting will report the failure in the status line.
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
		}

		logFile, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()
		logging.Init(logFile, cfg.LogLevel)

		process, err := mpv.LaunchMpv(mpv.LaunchOptions{Binary: cfg.MpvPath, SocketPath: cfg.MpvSocket})
		if err != nil {
			return err
		}
		defer func() {
			if process.Process != nil {
				_ = process.Process.Kill()
				_ = process.Wait()
			}
		}()

		client := mpv.NewClient(cfg.MpvSocket)
		if err := mpv.ConnectWithRetry(client, 50, 100*time.Millisecond); err != nil {
			return fmt.Errorf("failed to connect to mpv: %w", err)
		}
		defer client.Close()

		database, err := db.OpenPath(cfg.DatabasePath)
		if err != nil {
			// History is optional; the session works without it.
			log.Warn().Err(err).Msg("history database unavailable")
			database = nil
		} else {
			defer database.Close()
		}

		invoker := clip.NewInvoker(nil, cfg.FFmpegPath, database)

		log.Info().Str("source", absPath).Msg("starting session")
		return tui.Run(mpv.NewPlayer(client), invoker, database, tui.Options{
			Source:    absPath,
			OutputDir: cfg.OutputDir,
		})
	},
}

// resolveSource makes path absolute and checks it is an existing file.
func resolveSource(path string) (string, error) {
	absPath, err := filepath.Abs(forms.ExpandHome(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	return absPath, nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}
