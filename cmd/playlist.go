package cmd

import (
	"github.com/spf13/cobra"
	"github.com/streambinder/mediadownloader/downloader"
)

func init() {
	cmdRoot.AddCommand(cmdPlaylist())
}

func cmdPlaylist() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Download every item of a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				video, _   = cmd.Flags().GetBool("video")
				quality, _ = cmd.Flags().GetString("quality")
				kind       = alertPlaylist
			)
			if video {
				kind = alertVideoPlaylist
			}

			service, _, err := build(cmd)
			if err != nil {
				return fail(kind, err)
			}

			ctx, cancel := jobContext(cmd, service.Session())
			defer cancel()

			if only, _ := cmd.Flags().GetBool("preview"); only {
				preview, err := service.Preview(ctx, args[0])
				if err != nil {
					return fail(kind, err)
				}
				printPreview(preview)
				return nil
			}

			var result downloader.Result
			if video {
				result = service.VideoPlaylist(ctx, args[0], quality, status("playlist"), item)
			} else {
				result = service.AudioPlaylist(ctx, args[0], status("playlist"), item)
			}
			if err := report(kind, result); err != nil {
				return err
			}
			reveal(cmd, result.Paths)
			return nil
		},
	}
	cmd.Flags().Bool("video", false, "Download items as mp4 instead of mp3")
	cmd.Flags().StringP("quality", "q", "best", "Maximum height of video items, or \"best\"")
	cmd.Flags().String("playlist-encoding", "", "Also write a playlist file (m3u, pls)")
	cmd.Flags().Bool("open", false, "Open the destination folder once done")
	cmd.Flags().Bool("preview", false, "Only show the playlist title, size and cover")
	return cmd
}

func printPreview(preview *downloader.Preview) {
	window.AnchorPrintf("%s (%d items)", preview.Title, preview.Count)
	if preview.Thumbnail != "" {
		window.Printf("%s", preview.Thumbnail)
	}
}
