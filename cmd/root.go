package cmd

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/streambinder/mediadownloader/config"
	"github.com/streambinder/mediadownloader/downloader"
	"github.com/streambinder/mediadownloader/provider"
	"github.com/streambinder/mediadownloader/sys/anchor"
	syscmd "github.com/streambinder/mediadownloader/sys/cmd"
)

const (
	exitFailure   = 1
	exitCancelled = 130
)

var (
	window  = anchor.New(anchor.Green)
	cmdRoot = &cobra.Command{
		Use:           "mediadownloader",
		Short:         "Download audio and video, single items or whole playlists",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if plain, _ := cmd.Flags().GetBool("plain"); plain {
				window.EnablePlainMode()
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				log.SetOutput(os.Stderr)
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}
	// newService builds the download service out of the session configuration
	newService = func(cfg *config.Config) (*downloader.Service, error) {
		if err := syscmd.ValidateEnvironment("ffmpeg", cfg.YtDlp); err != nil {
			return nil, err
		}
		return downloader.New(cfg, provider.NewYtDlp(cfg.YtDlp)), nil
	}
)

func init() {
	cmdRoot.PersistentFlags().String("config", "", "Configuration file path")
	cmdRoot.PersistentFlags().String("audio-folder", "", "Folder audio downloads land in")
	cmdRoot.PersistentFlags().String("video-folder", "", "Folder video downloads land in")
	cmdRoot.PersistentFlags().Int("workers", 0, "Number of playlist items downloaded at once")
	cmdRoot.PersistentFlags().Bool("normalize", false, "Normalize audio loudness")
	cmdRoot.PersistentFlags().String("ytdlp", "", "yt-dlp executable path")
	cmdRoot.PersistentFlags().Bool("plain", false, "Print line by line, with no cursor movement")
	cmdRoot.PersistentFlags().BoolP("verbose", "v", false, "Print diagnostic logs on stderr")
}

func Execute() {
	if err := cmdRoot.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			window.Alert(anchor.Red, "Error", err.Error())
		}
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.Is(err, downloader.ErrCancelled) {
		return exitCancelled
	}
	return exitFailure
}
