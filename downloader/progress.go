package downloader

import (
	"fmt"

	"github.com/streambinder/mediadownloader/provider"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	messageFinished          = "Download finished."
	messagePlaylistFinished  = "Finished downloading."
	messageAudioCancelled    = "Audio Download Cancelled by User"
	messageVideoCancelled    = "Video Download Cancelled by User"
	messageAudioPLCancelled  = "Audio playlist download cancelled"
	messageVideoPLCancelled  = "Video playlist download cancelled"
	messageCompletedTemplate = "Completed %d/%d"
	messageListingTemplate   = "%s (%d items)"
)

type (
	StatusFunc func(string)
	ItemFunc   func(title, thumbnail string, index, total int, playlist string)
)

func (fn StatusFunc) notify(format string, a ...any) {
	if fn != nil {
		fn(fmt.Sprintf(format, a...))
	}
}

func (fn ItemFunc) notify(title, thumbnail string, index, total int, playlist string) {
	if fn != nil {
		fn(title, thumbnail, index, total, playlist)
	}
}

// progressText renders a transfer report, or an empty string
// for the states not worth reporting
func progressText(progress provider.Progress, prefix string, playlistItem bool) string {
	switch progress.Status {
	case provider.StatusDownloading:
		if progress.Total > 0 {
			return fmt.Sprintf("%sDownloaded %s / %s", prefix,
				sys.Megabytes(progress.Downloaded), sys.Megabytes(progress.Total))
		}
		return fmt.Sprintf("%sDownloaded %s", prefix, sys.Megabytes(progress.Downloaded))
	case provider.StatusFinished:
		return prefix + sys.Ternary(playlistItem, messagePlaylistFinished, messageFinished)
	default:
		return ""
	}
}
