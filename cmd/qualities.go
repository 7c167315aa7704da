package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmdRoot.AddCommand(cmdQualities())
}

func cmdQualities() *cobra.Command {
	return &cobra.Command{
		Use:   "qualities",
		Short: "List the video heights an item is offered at",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, _, err := build(cmd)
			if err != nil {
				return fail(alertQuality, err)
			}

			ctx, cancel := jobContext(cmd, service.Session())
			defer cancel()

			qualities, media, err := service.Qualities(ctx, args[0])
			if err != nil {
				return fail(alertQuality, err)
			}
			window.Printf("%s", media.Title)
			if len(qualities) == 0 {
				window.Printf("no video format")
				return nil
			}
			window.Printf("%s", strings.Join(qualities, " "))
			return nil
		},
	}
}
