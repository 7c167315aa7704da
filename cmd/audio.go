package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	cmdRoot.AddCommand(cmdAudio())
}

func cmdAudio() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Download one or more items as tagged mp3",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := build(cmd)
			if err != nil {
				return fail(alertAudio, err)
			}

			ctx, cancel := jobContext(cmd, service.Session())
			defer cancel()

			var paths []string
			for _, url := range args {
				result := service.Audio(ctx, url, status("audio"))
				if err := report(alertAudio, result); err != nil {
					return err
				}
				paths = append(paths, result.Paths...)
			}
			reveal(cmd, paths)
			return nil
		},
	}
	cmd.Flags().Bool("open", false, "Open the destination folder once done")
	return cmd
}
