package playlist

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys"
)

type PLSEncoder struct {
	target  string
	data    []byte
	entries int
}

func (encoder *PLSEncoder) init(dir, name string) error {
	encoder.target = filepath.Join(dir, slug.Make(name)+".pls")
	encoder.data = []byte(fmt.Sprintf("[%s]\n\n", name))
	encoder.entries = 0
	return nil
}

func (encoder *PLSEncoder) Add(media *entity.Media) error {
	if media.Path == "" {
		return fmt.Errorf("%s has not been downloaded", media.Title)
	}

	encoder.entries++
	encoder.data = append(encoder.data, []byte(
		fmt.Sprintf("File%d=%s\nTitle%d=%s\nLength%d=%d\n\n",
			encoder.entries,
			filepath.Base(media.Path),
			encoder.entries,
			sys.Fallback(media.Title, sys.FileBaseStem(media.Path)),
			encoder.entries,
			media.Duration,
		),
	)...)
	return nil
}

func (encoder *PLSEncoder) Target() string {
	return encoder.target
}

func (encoder *PLSEncoder) Close() error {
	encoder.data = append(encoder.data, []byte(
		fmt.Sprintf("NumberOfEntries=%d\n", encoder.entries),
	)...)
	return os.WriteFile(encoder.target, encoder.data, 0o644)
}
