package provider

import (
	"errors"
	"strconv"
	"strings"

	"github.com/streambinder/mediadownloader/entity"
	"github.com/tidwall/gjson"
)

var errMalformed = errors.New("malformed backend output")

func decode(data []byte) (*entity.Media, error) {
	if !gjson.ValidBytes(data) {
		return nil, errMalformed
	}
	return decodeResult(gjson.ParseBytes(data)), nil
}

func decodeResult(result gjson.Result) *entity.Media {
	media := &entity.Media{
		ID:         result.Get("id").String(),
		Title:      strings.TrimSpace(result.Get("title").String()),
		Uploader:   result.Get("uploader").String(),
		Artists:    decodeArtists(result),
		Album:      result.Get("album").String(),
		Year:       decodeYear(result),
		Genre:      decodeGenre(result),
		Thumbnail:  decodeThumbnail(result),
		Duration:   int(result.Get("duration").Float()),
		WebpageURL: result.Get("webpage_url").String(),
		URL:        result.Get("url").String(),
		Extractor:  result.Get("extractor_key").String(),
		Path:       result.Get("filepath").String(),
	}

	result.Get("formats").ForEach(func(_, value gjson.Result) bool {
		media.Formats = append(media.Formats, entity.Format{
			ID:     value.Get("format_id").String(),
			Ext:    value.Get("ext").String(),
			VCodec: value.Get("vcodec").String(),
			ACodec: value.Get("acodec").String(),
			Height: int(value.Get("height").Int()),
		})
		return true
	})

	result.Get("entries").ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			media.Entries = append(media.Entries, decodeResult(value))
		}
		return true
	})

	return media
}

// artists may come as a list or as a plain string
func decodeArtists(result gjson.Result) []string {
	var artists []string
	if list := result.Get("artists"); list.IsArray() {
		for _, artist := range list.Array() {
			if name := strings.TrimSpace(artist.String()); name != "" {
				artists = append(artists, name)
			}
		}
	}
	if len(artists) == 0 {
		if artist := strings.TrimSpace(result.Get("artist").String()); artist != "" {
			artists = []string{artist}
		}
	}
	return artists
}

func decodeYear(result gjson.Result) string {
	if year := result.Get("release_year"); year.Exists() && year.Type != gjson.Null {
		return strconv.FormatInt(year.Int(), 10)
	}
	if date := result.Get("upload_date").String(); len(date) >= 4 {
		return date[:4]
	}
	return ""
}

func decodeGenre(result gjson.Result) string {
	if genre := result.Get("genre").String(); genre != "" {
		return genre
	}
	return result.Get("genres.0").String()
}

// flat entries carry a thumbnails list only
func decodeThumbnail(result gjson.Result) string {
	if thumbnail := result.Get("thumbnail").String(); thumbnail != "" {
		return thumbnail
	}
	thumbnails := result.Get("thumbnails").Array()
	if len(thumbnails) > 0 {
		return thumbnails[len(thumbnails)-1].Get("url").String()
	}
	return ""
}
