package processor

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
)

func TestArtworkDo(t *testing.T) {
	data := testPicture(t, 1000, 600)

	// testing
	assert.Nil(t, artwork{}.do(&data))
	picture, format, err := image.Decode(bytes.NewReader(data))
	assert.Nil(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 500, picture.Bounds().Dx())
	assert.Equal(t, 300, picture.Bounds().Dy())
}

func TestArtworkDoDecodeFailure(t *testing.T) {
	data := []byte("raw")

	// testing
	assert.Error(t, artwork{}.do(&data))
	assert.Equal(t, []byte("raw"), data)
}

func TestArtworkDoEncodeFailure(t *testing.T) {
	// monkey patching
	defer gomonkey.NewPatches().
		ApplyFunc(image.Decode, func(io.Reader) (image.Image, string, error) {
			return image.NewRGBA(image.Rectangle{image.Pt(0, 0), image.Pt(1, 1)}), "", nil
		}).
		ApplyFunc(jpeg.Encode, func(io.Writer, image.Image, *jpeg.Options) error {
			return errors.New("ko")
		}).
		Reset()

	// testing
	data := []byte{}
	assert.Error(t, artwork{}.do(&data), "ko")
	assert.Empty(t, data)
}
