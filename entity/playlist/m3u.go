package playlist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys"
)

type M3UEncoder struct {
	target string
	data   []byte
}

func (encoder *M3UEncoder) init(dir, name string) error {
	encoder.target = filepath.Join(dir, slug.Make(name)+".m3u")
	encoder.data = []byte("#EXTM3U\n")
	return nil
}

func (encoder *M3UEncoder) Add(media *entity.Media) error {
	if media.Path == "" {
		return fmt.Errorf("%s has not been downloaded", media.Title)
	}

	encoder.data = append(encoder.data, []byte(
		fmt.Sprintf(
			"#EXTINF:%d,%s\n%s\n",
			media.Duration,
			sys.Fallback(media.Title, sys.FileBaseStem(media.Path)),
			filepath.Base(media.Path),
		),
	)...)
	return nil
}

func (encoder *M3UEncoder) Target() string {
	return encoder.target
}

func (encoder *M3UEncoder) Close() error {
	return os.WriteFile(encoder.target, encoder.data, 0o644)
}
