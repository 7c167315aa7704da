package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	cmdRoot.AddCommand(cmdVideo())
}

func cmdVideo() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Download one or more items as mp4",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			quality, _ := cmd.Flags().GetString("quality")
			service, _, err := build(cmd)
			if err != nil {
				return fail(alertVideo, err)
			}

			ctx, cancel := jobContext(cmd, service.Session())
			defer cancel()

			var paths []string
			for _, url := range args {
				result := service.Video(ctx, url, quality, status("video"))
				if err := report(alertVideo, result); err != nil {
					return err
				}
				paths = append(paths, result.Paths...)
			}
			reveal(cmd, paths)
			return nil
		},
	}
	cmd.Flags().StringP("quality", "q", "best", "Maximum height, or \"best\"")
	cmd.Flags().Bool("open", false, "Open the destination folder once done")
	return cmd
}
