package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streambinder/mediadownloader/config"
	"github.com/streambinder/mediadownloader/downloader"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys/anchor"
	syscmd "github.com/streambinder/mediadownloader/sys/cmd"
)

// errReported marks failures already shown to the user as alerts
var errReported = errors.New("reported")

type alert struct {
	title   string
	message string
}

var (
	alertAudio         = alert{"Download Error", "Failed to download audio"}
	alertVideo         = alert{"Video Download Error", "Failed to download video"}
	alertPlaylist      = alert{"Playlist Error", "Failed to download playlist"}
	alertVideoPlaylist = alert{"Playlist Video Download Error", "Failed to download playlist video"}
	alertSearch        = alert{"Search Error", "Failed to search"}
	alertQuality       = alert{"Quality Error", "Failed to fetch qualities"}
)

// loadConfig reads the configuration file, then lays
// the explicitly set flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.Path()
	}

	cfg, err := config.Parse(path)
	if err != nil {
		return nil, err
	}

	if value, err := cmd.Flags().GetString("audio-folder"); err == nil && value != "" {
		cfg.AudioFolder = value
	}
	if value, err := cmd.Flags().GetString("video-folder"); err == nil && value != "" {
		cfg.VideoFolder = value
	}
	if value, err := cmd.Flags().GetInt("workers"); err == nil && value > 0 {
		cfg.Workers = value
	}
	if value, err := cmd.Flags().GetBool("normalize"); err == nil && value {
		cfg.Normalize = true
	}
	if value, err := cmd.Flags().GetString("ytdlp"); err == nil && value != "" {
		cfg.YtDlp = value
	}
	if value, err := cmd.Flags().GetString("playlist-encoding"); err == nil && value != "" {
		cfg.PlaylistEncoding = value
	}
	return cfg, nil
}

func build(cmd *cobra.Command) (*downloader.Service, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	service, err := newService(cfg)
	if err != nil {
		return nil, nil, err
	}
	return service, cfg, nil
}

// jobContext is cancelled on interrupt, which in turn
// cancels every job still running in the session
func jobContext(cmd *cobra.Command, session *downloader.Session) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	go func() {
		select {
		case <-signals:
			interrupt(session)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(signals)
		cancel()
	}
}

func interrupt(session *downloader.Session) {
	log.Printf("[session]\tinterrupted with %d audio and %d video jobs running",
		session.Running(entity.Audio), session.Running(entity.Video))
	session.CancelAll()
}

// status routes a progress message to the lot of the item it refers to:
// playlist items carry an [index/total] prefix
func status(alias string) downloader.StatusFunc {
	return func(message string) {
		if strings.HasPrefix(message, "Completed ") {
			window.Printf("%s", message)
			return
		}
		if strings.HasPrefix(message, "[") {
			if prefix, rest, ok := strings.Cut(message[1:], "] "); ok {
				window.Lot(prefix).Print(rest)
				return
			}
		}
		window.Lot(alias).Print(message)
	}
}

func item(title, _ string, index, total int, playlist string) {
	window.Lot(fmt.Sprintf("%d/%d", index, total)).Printf("%s (%s)", title, playlist)
}

// report renders the outcome of a download call
func report(kind alert, result downloader.Result) error {
	switch result.Outcome {
	case downloader.Succeeded:
		for _, path := range result.Paths {
			window.AnchorPrintf("%s", path)
		}
		if result.Total > 0 {
			window.AnchorPrintf("%d/%d items downloaded", result.Completed, result.Total)
		}
		return nil
	case downloader.Cancelled:
		window.Alert(anchor.Yellow, kind.title, "cancelled")
		return fmt.Errorf("%w: %w", errReported, downloader.ErrCancelled)
	default:
		window.Alert(anchor.Red, kind.title, fmt.Sprintf("%s: %s", kind.message, result.Err))
		return fmt.Errorf("%w: %w", errReported, result.Err)
	}
}

func fail(kind alert, err error) error {
	window.Alert(anchor.Red, kind.title, fmt.Sprintf("%s: %s", kind.message, err))
	return fmt.Errorf("%w: %w", errReported, err)
}

// reveal opens the folder holding the given file, if asked to
func reveal(cmd *cobra.Command, paths []string) {
	if open, _ := cmd.Flags().GetBool("open"); !open || len(paths) == 0 {
		return
	}
	if err := openFolder(paths[0]); err != nil {
		window.Alert(anchor.Yellow, "Open", err.Error())
	}
}

var openFolder = func(path string) error {
	return syscmd.Open(filepath.Dir(path))
}
