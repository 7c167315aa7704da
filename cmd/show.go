package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/bogem/id3v2/v2"
	"github.com/spf13/cobra"
	"github.com/streambinder/mediadownloader/entity/id3"
	"github.com/streambinder/mediadownloader/lyrics"
	"github.com/streambinder/mediadownloader/sys"
)

const fallback = "<unset>"

func init() {
	cmdRoot.AddCommand(cmdShow())
}

func cmdShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the tags of a downloaded audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := id3.Open(args[0], id3v2.Options{Parse: true})
			if err != nil {
				return err
			}
			defer tag.Close()

			descriptor, text := tag.Lyrics()
			table := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 0, ' ', tabwriter.AlignRight)
			fmt.Fprintln(table, "Title\t", sys.Fallback(tag.Title(), fallback))
			fmt.Fprintln(table, "Artist\t", sys.Fallback(tag.Artist(), fallback))
			fmt.Fprintln(table, "Album\t", sys.Fallback(tag.Album(), fallback))
			fmt.Fprintln(table, "Year\t", sys.Fallback(tag.Year(), fallback))
			fmt.Fprintln(table, "Genre\t", sys.Fallback(tag.Genre(), fallback))
			fmt.Fprintln(table, "Source URL\t", sys.Fallback(tag.SourceURL(), fallback))
			fmt.Fprintln(table, "Lyrics\t", sys.Fallback(descriptor, fallback), sys.Excerpt(lyrics.GetPlain(text), 64))
			fmt.Fprintln(table, "Artwork\t", func(mimeType string, data []byte) string {
				if len(data) > 0 {
					return fmt.Sprintf("%s (%s)", mimeType, sys.HumanizeBytes(len(data)))
				}
				return fallback
			}(tag.AttachedPicture()))
			return table.Flush()
		},
	}
}
