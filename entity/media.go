package entity

import "strings"

type Kind int

const (
	Audio Kind = iota
	Video
)

func (kind Kind) String() string {
	switch kind {
	case Audio:
		return "audio"
	case Video:
		return "video"
	default:
		return "unknown"
	}
}

// Format is a single stream variant offered by the extraction backend
type Format struct {
	ID     string
	Ext    string
	VCodec string
	ACodec string
	Height int
}

func (format Format) HasVideo() bool {
	return format.VCodec != "" && format.VCodec != "none"
}

// Media is the typed view over what the extraction backend reports
// for a URL: a single item, a playlist or a search result set.
// Every field is optional as the upstream metadata is not trusted.
type Media struct {
	ID         string
	Title      string
	Uploader   string
	Artists    []string
	Album      string
	Year       string
	Genre      string
	Thumbnail  string
	Duration   int // in seconds
	WebpageURL string
	URL        string
	Extractor  string
	Formats    []Format
	Entries    []*Media
	Path       string // local file, once downloaded
}

// Link returns the canonical address of the item
func (media *Media) Link() string {
	if media.WebpageURL != "" {
		return media.WebpageURL
	}
	return media.URL
}

func (media *Media) IsPlaylist() bool {
	return len(media.Entries) > 0
}

// Cover returns the media thumbnail, falling back to the first entry one
func (media *Media) Cover() string {
	if media.Thumbnail != "" {
		return media.Thumbnail
	}
	for _, entry := range media.Entries {
		if entry != nil && entry.Thumbnail != "" {
			return entry.Thumbnail
		}
	}
	return ""
}

// IsVideoPlatform tells whether the reference points to the video site
// whose titles are worth splitting into artist and title
func IsVideoPlatform(reference string) bool {
	return strings.Contains(reference, "youtube") || strings.Contains(reference, "youtu.be")
}
