package id3

import (
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/streambinder/mediadownloader/lyrics"
)

const (
	frameAttachedPicture      = "Attached picture"
	frameUnsynchronizedLyrics = "Unsynchronised lyrics/text transcription"
	frameUserDefinedText      = "User defined text information frame"
	frameSourceURL            = "Source URL"

	lyricsLanguage         = "eng"
	DescriptorLyrics       = "Lyrics"
	DescriptorSyncedLyrics = "Synced lyrics"
)

type Tag struct {
	id3v2.Tag
	Cache map[string]string
}

func Open(path string, options id3v2.Options) (*Tag, error) {
	tag, err := id3v2.Open(path, options)
	if err != nil {
		return nil, err
	}
	return &Tag{*tag, make(map[string]string)}, nil
}

// Clear drops every frame, so that what gets saved next
// is exactly what has been set after this call
func (tag *Tag) Clear() {
	tag.DeleteAllFrames()
	tag.Cache = make(map[string]string)
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
}

func (tag *Tag) setUserDefinedText(key, value string) {
	tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
		Encoding:    tag.DefaultEncoding(),
		Description: key,
		Value:       value,
	})
}

func (tag *Tag) userDefinedText(key string) string {
	if value, ok := tag.Cache[key]; ok {
		return value
	}

	for _, frame := range tag.GetFrames(tag.CommonID(frameUserDefinedText)) {
		frame, ok := frame.(id3v2.UserDefinedTextFrame)
		if !ok {
			continue
		}

		if tag.Cache != nil {
			tag.Cache[frame.UniqueIdentifier()] = frame.Value
		}
		if strings.EqualFold(frame.UniqueIdentifier(), key) {
			return frame.Value
		}
	}

	return ""
}

func (tag *Tag) SetSourceURL(url string) {
	tag.setUserDefinedText(frameSourceURL, url)
}

func (tag *Tag) SourceURL() string {
	return tag.userDefinedText(frameSourceURL)
}

func (tag *Tag) SetAttachedPicture(picture []byte) {
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    tag.DefaultEncoding(),
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     picture,
	})
}

func (tag *Tag) AttachedPicture() (string, []byte) {
	frame, ok := tag.GetLastFrame(tag.CommonID(frameAttachedPicture)).(id3v2.PictureFrame)
	if ok {
		return frame.MimeType, frame.Picture
	}
	return "", []byte{}
}

// SetLyrics stores the lyrics as they are, timestamps included,
// describing them as synced whenever they carry timing
func (tag *Tag) SetLyrics(data string) {
	descriptor := DescriptorLyrics
	if lyrics.IsSynced(data) {
		descriptor = DescriptorSyncedLyrics
	}

	tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
		Encoding:          tag.DefaultEncoding(),
		Language:          lyricsLanguage,
		ContentDescriptor: descriptor,
		Lyrics:            data,
	})
}

func (tag *Tag) Lyrics() (descriptor, data string) {
	frame, ok := tag.GetLastFrame(tag.CommonID(frameUnsynchronizedLyrics)).(id3v2.UnsynchronisedLyricsFrame)
	if ok {
		return frame.ContentDescriptor, frame.Lyrics
	}
	return "", ""
}

func (tag *Tag) Close() error {
	if err := tag.Tag.Close(); err != id3v2.ErrNoFile && err != nil {
		return err
	}
	return nil
}
