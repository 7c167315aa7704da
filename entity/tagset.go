package entity

import "strings"

const (
	UnknownTitle    = "Unknown Title"
	UnknownArtist   = "Unknown Artist"
	UnknownAlbum    = "Unknown Album"
	UnknownYear     = "Unknown Year"
	UnknownGenre    = "Unknown Genre"
	UnknownPlaylist = "Unknown Playlist"
)

// TagSet is what gets written into an audio file tag container
type TagSet struct {
	Title     string
	Artists   []string
	Album     string
	Year      string
	Genre     string
	CoverURL  string
	Cover     []byte
	Lyrics    string
	SourceURL string

	// set only when the title splitting heuristic fired
	FromVideoPlatform bool
	OriginalTitle     string
	DetectedArtist    string
}

// NewTagSet derives the tags for a downloaded item out of its metadata,
// applying the title heuristic when the reference points to the video site
func NewTagSet(media *Media, reference string) *TagSet {
	tags := &TagSet{
		Title:    media.Title,
		Artists:  media.Artists,
		Album:    media.Album,
		Year:     media.Year,
		Genre:    media.Genre,
		CoverURL: media.Thumbnail,
	}
	tags.SourceURL = media.Link()
	if tags.SourceURL == "" {
		tags.SourceURL = reference
	}
	if tags.Title == "" {
		tags.Title = UnknownTitle
	}
	if len(tags.Artists) == 0 && media.Uploader != "" {
		tags.Artists = []string{media.Uploader}
	}
	if tags.Album == "" {
		tags.Album = UnknownAlbum
	}
	if tags.Year == "" {
		tags.Year = UnknownYear
	}
	if tags.Genre == "" {
		tags.Genre = UnknownGenre
	}

	if title, artist, used := SplitTitle(tags.Title, IsVideoPlatform(reference)); used {
		tags.OriginalTitle = tags.Title
		tags.Title = title
		tags.DetectedArtist = artist
		tags.FromVideoPlatform = true
	}
	if len(tags.Artists) == 0 {
		if tags.DetectedArtist != "" {
			tags.Artists = []string{tags.DetectedArtist}
		} else {
			tags.Artists = []string{UnknownArtist}
		}
	}
	return tags
}

// Artist renders the artists the way they are stored in the tag container
func (tags *TagSet) Artist() string {
	return strings.Join(tags.Artists, "; ")
}

func (tags *TagSet) HasKnownArtist() bool {
	artist := tags.Artist()
	return artist != "" && !strings.EqualFold(artist, UnknownArtist)
}
