package cmd

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/streambinder/mediadownloader/provider"
	"github.com/streambinder/mediadownloader/sys"
)

var errInvalidPick = errors.New("invalid pick")

func init() {
	cmdRoot.AddCommand(cmdSearch())
}

func cmdSearch() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for items, optionally downloading one of them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				limit, _   = cmd.Flags().GetInt("max")
				pick, _    = cmd.Flags().GetBool("pick")
				video, _   = cmd.Flags().GetBool("video")
				quality, _ = cmd.Flags().GetString("quality")
				query      = strings.Join(args, " ")
			)

			service, _, err := build(cmd)
			if err != nil {
				return fail(alertSearch, err)
			}

			ctx, cancel := jobContext(cmd, service.Session())
			defer cancel()

			matches, err := service.Search(ctx, query, limit)
			if err != nil {
				return fail(alertSearch, err)
			}
			if len(matches) == 0 {
				window.Printf("no result")
				return nil
			}
			for i, match := range matches {
				window.Printf("%d. %s %s %s (%d)", i+1,
					sys.Pad(match.Uploader, 20), sys.Pad(match.Title, 40), match.Link(), match.Score)
			}
			if !pick {
				return nil
			}

			choice, err := choose(matches)
			if err != nil {
				return fail(alertSearch, err)
			}
			if video {
				return report(alertVideo, service.Video(ctx, choice.Link(), quality, status("video")))
			}
			return report(alertAudio, service.Audio(ctx, choice.Link(), status("audio")))
		},
	}
	cmd.Flags().IntP("max", "m", provider.DefaultResults, "Maximum number of results")
	cmd.Flags().BoolP("pick", "p", false, "Pick a result to download")
	cmd.Flags().Bool("video", false, "Download the picked result as mp4")
	cmd.Flags().StringP("quality", "q", "best", "Maximum height of the picked video, or \"best\"")
	return cmd
}

func choose(matches []*provider.Match) (*provider.Match, error) {
	answer := window.Reads("Pick one [1-%d]:", len(matches))
	index, err := strconv.Atoi(answer)
	if err != nil || index < 1 || index > len(matches) {
		return nil, errInvalidPick
	}
	return matches[index-1], nil
}
