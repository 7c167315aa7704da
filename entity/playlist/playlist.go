package playlist

import (
	"errors"
	"strings"

	"github.com/streambinder/mediadownloader/entity"
)

var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// Playlist is the set of items downloaded out of a playlist into Dir
type Playlist struct {
	Name  string
	Dir   string
	Items []*entity.Media
}

func (playlist Playlist) Encoder(encoding string) (Encoder, error) {
	var encoder Encoder
	switch strings.ToLower(encoding) {
	case "m3u":
		encoder = &M3UEncoder{}
	case "pls":
		encoder = &PLSEncoder{}
	default:
		return nil, ErrUnsupportedEncoding
	}

	if err := encoder.init(playlist.Dir, playlist.Name); err != nil {
		return nil, err
	}

	return encoder, nil
}

// Write encodes every downloaded item into a playlist file
// and returns its path
func (playlist Playlist) Write(encoding string) (string, error) {
	encoder, err := playlist.Encoder(encoding)
	if err != nil {
		return "", err
	}

	for _, item := range playlist.Items {
		if item == nil || item.Path == "" {
			continue
		}
		if err := encoder.Add(item); err != nil {
			return "", err
		}
	}
	return encoder.Target(), encoder.Close()
}
