package processor

import (
	"bufio"
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const artworkWidth = 500

type artwork struct{}

// do replaces data with its jpeg rendition, scaled to a fixed width
func (artwork) do(data *[]byte) error {
	image, _, err := image.Decode(bytes.NewReader(*data))
	if err != nil {
		return err
	}

	var (
		resized bytes.Buffer
		writer  = bufio.NewWriter(&resized)
	)
	if err := jpeg.Encode(writer, resize.Resize(artworkWidth, 0, image, resize.Lanczos3), nil); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	*data = resized.Bytes()
	return nil
}
