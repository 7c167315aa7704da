package processor

import (
	"context"
	"log"

	"github.com/bogem/id3v2/v2"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/entity/id3"
)

type LyricsFetcher interface {
	Fetch(ctx context.Context, title string, artists []string, videoPlatform bool) (string, bool)
}

type CoverFetcher func(ctx context.Context, url string) ([]byte, error)

// Encoder writes a TagSet into the ID3 container of an audio file,
// replacing whatever tag it carried before
type Encoder struct {
	lyrics LyricsFetcher
	cover  CoverFetcher
}

func NewEncoder(lyrics LyricsFetcher, cover CoverFetcher) *Encoder {
	return &Encoder{lyrics, cover}
}

func (encoder *Encoder) Do(ctx context.Context, path string, tags *entity.TagSet) error {
	return encoder.Tag(ctx, path, tags)
}

func (encoder *Encoder) Tag(ctx context.Context, path string, tags *entity.TagSet) error {
	tag, err := id3.Open(path, id3v2.Options{Parse: false})
	if err != nil {
		return err
	}
	defer tag.Close()
	tag.Clear()

	if tags.Lyrics == "" {
		tags.Lyrics = encoder.lookupLyrics(ctx, tags)
	}
	if tags.Lyrics != "" {
		tag.SetLyrics(tags.Lyrics)
	} else {
		log.Printf("[tagger]\tno valid lyrics found for %s", tags.Title)
	}

	title, artist := tags.Title, tags.Artist()
	if tags.FromVideoPlatform {
		if tags.Lyrics == "" {
			title = tags.OriginalTitle
		} else {
			artist = tags.DetectedArtist
		}
	}
	tag.SetTitle(title)
	tag.SetArtist(artist)
	if tags.Album != entity.UnknownAlbum {
		tag.SetAlbum(tags.Album)
	}
	tag.SetYear(tags.Year)
	if tags.Genre != entity.UnknownGenre {
		tag.SetGenre(tags.Genre)
	}
	if tags.SourceURL != "" {
		tag.SetSourceURL(tags.SourceURL)
	}

	if len(tags.Cover) == 0 {
		tags.Cover = encoder.lookupCover(ctx, tags.CoverURL)
	}
	if len(tags.Cover) > 0 {
		tag.SetAttachedPicture(tags.Cover)
	}

	return tag.Save()
}

func (encoder *Encoder) lookupLyrics(ctx context.Context, tags *entity.TagSet) string {
	if encoder.lyrics == nil {
		return ""
	}

	var (
		data string
		ok   bool
	)
	switch {
	case !tags.HasKnownArtist():
		data, ok = encoder.lyrics.Fetch(ctx, tags.Title, nil, false)
	case tags.FromVideoPlatform:
		data, ok = encoder.lyrics.Fetch(ctx, tags.Title, []string{tags.DetectedArtist}, true)
	default:
		data, ok = encoder.lyrics.Fetch(ctx, tags.Title, tags.Artists, false)
	}
	if !ok {
		return ""
	}
	return data
}

// lookupCover is best-effort: the tag is written without a picture on failure
func (encoder *Encoder) lookupCover(ctx context.Context, url string) []byte {
	if url == "" || encoder.cover == nil {
		return nil
	}

	data, err := encoder.cover(ctx, url)
	if err != nil {
		log.Printf("[tagger]\tcannot fetch cover %s: %s", url, err)
		return nil
	}
	if err := (artwork{}).do(&data); err != nil {
		log.Printf("[tagger]\tembedding cover as it is: %s", err)
	}
	return data
}
