package processor

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/streambinder/mediadownloader/entity"
	"github.com/stretchr/testify/assert"
)

type lyricsCall struct {
	title         string
	artists       []string
	videoPlatform bool
}

type staticLyrics struct {
	data  string
	calls []lyricsCall
}

func (lyrics *staticLyrics) Fetch(_ context.Context, title string, artists []string, videoPlatform bool) (string, bool) {
	lyrics.calls = append(lyrics.calls, lyricsCall{title, artists, videoPlatform})
	return lyrics.data, lyrics.data != ""
}

func testAudio(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "track.mp3")
	assert.Nil(t, os.WriteFile(path, []byte("audio data"), 0o644))
	return path
}

func testPicture(t *testing.T, width, height int) []byte {
	picture := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			picture.Set(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}

	var data bytes.Buffer
	assert.Nil(t, png.Encode(&data, picture))
	return data.Bytes()
}

func testTagSet() *entity.TagSet {
	return entity.NewTagSet(&entity.Media{
		Title:     "Artist - Song (Official Video)",
		Year:      "2019",
		Thumbnail: "http://localhost/cover.png",
	}, "https://www.youtube.com/watch?v=abc")
}
