package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/streambinder/mediadownloader/config"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/processor"
	"github.com/streambinder/mediadownloader/provider"
	"github.com/streambinder/mediadownloader/sys"
	"github.com/stretchr/testify/assert"
)

const (
	urlSong  = "https://www.youtube.com/watch?v=song"
	urlOther = "https://www.youtube.com/watch?v=other"
	urlList  = "https://www.youtube.com/playlist?list=mixtape"
	mb       = 1024 * 1024
)

type fakeBackend struct {
	lock          sync.Mutex
	media         map[string]*entity.Media
	failing       map[string]error
	block         bool
	options       []provider.Options
	running, peak atomic.Int32
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		media: map[string]*entity.Media{
			urlSong: {
				ID: "song", Title: "Artist - Song (Official Video)", Year: "2020",
				Thumbnail: "http://localhost/song.jpg", WebpageURL: urlSong,
				Formats: []entity.Format{{ID: "137", VCodec: "avc1", Height: 1080}, {ID: "136", VCodec: "avc1", Height: 720}},
			},
			urlOther: {ID: "other", Title: "Other", Artists: []string{"Someone"}, WebpageURL: urlOther},
		},
		failing: make(map[string]error),
	}
}

func (backend *fakeBackend) lookup(reference string) (*entity.Media, error) {
	backend.lock.Lock()
	defer backend.lock.Unlock()
	if err, ok := backend.failing[reference]; ok {
		return nil, err
	}
	if media, ok := backend.media[reference]; ok {
		copied := *media
		return &copied, nil
	}
	return nil, errors.New("unsupported url: " + reference)
}

func (backend *fakeBackend) Resolve(_ context.Context, reference string) (*entity.Media, error) {
	return backend.lookup(reference)
}

func (backend *fakeBackend) ResolveFlat(_ context.Context, reference string) (*entity.Media, error) {
	return backend.lookup(reference)
}

func (backend *fakeBackend) Fetch(ctx context.Context, reference string, options provider.Options, callback func(provider.Progress) error) (*entity.Media, error) {
	current := backend.running.Add(1)
	defer backend.running.Add(-1)
	for {
		observed := backend.peak.Load()
		if current <= observed || backend.peak.CompareAndSwap(observed, current) {
			break
		}
	}

	backend.lock.Lock()
	backend.options = append(backend.options, options)
	backend.lock.Unlock()

	media, err := backend.lookup(reference)
	if err != nil {
		return nil, err
	}

	if err := callback(provider.Progress{Status: provider.StatusDownloading, Downloaded: mb, Total: 2 * mb}); err != nil {
		return nil, err
	}
	for backend.block {
		if err := callback(provider.Progress{Status: provider.StatusDownloading, Downloaded: mb}); err != nil {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
	time.Sleep(5 * time.Millisecond)

	path := strings.Replace(options.Output, outputTemplate,
		sys.Legalize(media.Title)+sys.Ternary(options.ExtractAudio, ".mp3", ".mp4"), 1)
	if err := os.WriteFile(path, []byte("data"), 0o600); err != nil {
		return nil, err
	}
	if options.WriteThumbnail {
		if err := os.WriteFile(sys.FileStem(path)+".webp", []byte("image"), 0o600); err != nil {
			return nil, err
		}
	}

	if err := callback(provider.Progress{Status: provider.StatusFinished, Downloaded: 2 * mb, Total: 2 * mb}); err != nil {
		return nil, err
	}
	media.Path = path
	return media, nil
}

type recordingProcessor struct {
	lock sync.Mutex
	tags []*entity.TagSet
	err  error
}

func (recorder *recordingProcessor) Do(_ context.Context, path string, tags *entity.TagSet) error {
	recorder.lock.Lock()
	defer recorder.lock.Unlock()
	recorder.tags = append(recorder.tags, tags)
	return recorder.err
}

type statusRecorder struct {
	lock     sync.Mutex
	messages []string
}

func (recorder *statusRecorder) record(message string) {
	recorder.lock.Lock()
	defer recorder.lock.Unlock()
	recorder.messages = append(recorder.messages, message)
}

func (recorder *statusRecorder) contains(message string) bool {
	recorder.lock.Lock()
	defer recorder.lock.Unlock()
	for _, recorded := range recorder.messages {
		if recorded == message {
			return true
		}
	}
	return false
}

func testConfig(t *testing.T) *config.Config {
	root := t.TempDir()
	cfg := config.Default()
	cfg.AudioFolder = filepath.Join(root, "Audio")
	cfg.VideoFolder = filepath.Join(root, "Video")
	return cfg
}

func testService(t *testing.T, backend provider.Backend, options ...Option) (*Service, *recordingProcessor) {
	recorder := &recordingProcessor{}
	return New(testConfig(t), backend, append([]Option{WithProcessors(recorder)}, options...)...), recorder
}

func BenchmarkAudio(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TestAudio(&testing.T{})
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	cfg.Normalize = true

	// testing
	service := New(cfg, newFakeBackend())
	assert.Len(t, service.processors, 2)
	assert.IsType(t, processor.Normalizer{}, service.processors[0])
	assert.IsType(t, &processor.Encoder{}, service.processors[1])
	assert.Equal(t, 4, service.pool.Width())
	assert.NotNil(t, service.Session())

	assert.Len(t, New(nil, newFakeBackend()).processors, 1)

	session := NewSession()
	assert.Same(t, session, New(cfg, newFakeBackend(), WithSession(session)).Session())
}

func TestAudio(t *testing.T) {
	var (
		backend           = newFakeBackend()
		service, recorder = testService(t, backend)
		status            = &statusRecorder{}
	)

	// testing
	result := service.Audio(context.Background(), urlSong, status.record)
	assert.True(t, result.OK())
	assert.Nil(t, result.Err)
	assert.Len(t, result.Paths, 1)
	assert.Equal(t, filepath.Join(service.config.AudioFolder, "Artist - Song (Official Video).mp3"), result.Paths[0])
	assert.FileExists(t, result.Paths[0])
	assert.NoFileExists(t, sys.FileStem(result.Paths[0])+".webp")
	assert.True(t, status.contains("Downloaded 1.00 MB / 2.00 MB"))
	assert.True(t, status.contains("Download finished."))

	assert.Len(t, backend.options, 1)
	assert.Equal(t, "bestaudio/best", backend.options[0].Format)
	assert.True(t, backend.options[0].ExtractAudio)
	assert.Equal(t, "mp3", backend.options[0].AudioFormat)
	assert.True(t, backend.options[0].WriteThumbnail)

	assert.Len(t, recorder.tags, 1)
	assert.Equal(t, "Song", recorder.tags[0].Title)
	assert.Equal(t, "Artist", recorder.tags[0].DetectedArtist)
	assert.True(t, recorder.tags[0].FromVideoPlatform)
	assert.Equal(t, "2020", recorder.tags[0].Year)
	assert.Equal(t, "http://localhost/song.jpg", recorder.tags[0].CoverURL)
	assert.Zero(t, service.Session().Running(entity.Audio))
}

func TestAudioProcessorFailure(t *testing.T) {
	service, recorder := testService(t, newFakeBackend())
	recorder.err = errors.New("failure")

	// testing
	result := service.Audio(context.Background(), urlSong, nil)
	assert.True(t, result.OK())
	assert.Len(t, recorder.tags, 1)
}

func TestAudioInvalidReference(t *testing.T) {
	service, _ := testService(t, newFakeBackend())

	// testing
	result := service.Audio(context.Background(), "  ", nil)
	assert.Equal(t, Failed, result.Outcome)
	assert.ErrorIs(t, result.Err, ErrEmptyReference)
	for _, reference := range []string{"not a url", "ftp://localhost/file", "https://"} {
		assert.ErrorIs(t, service.Audio(context.Background(), reference, nil).Err, ErrInvalidReference)
	}
}

func TestAudioFailure(t *testing.T) {
	var (
		backend    = newFakeBackend()
		service, _ = testService(t, backend)
	)
	backend.failing[urlSong] = errors.New("yt-dlp failed: Video unavailable")

	// testing
	result := service.Audio(context.Background(), urlSong, nil)
	assert.False(t, result.OK())
	assert.Equal(t, Failed, result.Outcome)
	assert.EqualError(t, result.Err, "yt-dlp failed: Video unavailable")
	assert.Equal(t, "yt-dlp failed: Video unavailable", result.Error())
}

func TestAudioFolderFailure(t *testing.T) {
	service, _ := testService(t, newFakeBackend())
	file := filepath.Join(t.TempDir(), "file")
	assert.Nil(t, os.WriteFile(file, []byte{}, 0o600))
	service.config.AudioFolder = filepath.Join(file, "Audio")

	// testing
	assert.Equal(t, Failed, service.Audio(context.Background(), urlSong, nil).Outcome)
}

func TestAudioCancelled(t *testing.T) {
	var (
		backend    = newFakeBackend()
		service, _ = testService(t, backend)
		status     = &statusRecorder{}
		cancelled  atomic.Int32
	)
	backend.block = true

	// testing
	result := service.Audio(context.Background(), urlSong, func(message string) {
		status.record(message)
		if cancelled.Add(1) == 1 {
			assert.Equal(t, 1, service.Session().CancelKind(entity.Audio))
		}
	})
	assert.Equal(t, Cancelled, result.Outcome)
	assert.ErrorIs(t, result.Err, ErrCancelled)
	assert.True(t, status.contains(messageAudioCancelled))
	assert.Empty(t, result.Paths)
}

func TestAudioCancelledByContext(t *testing.T) {
	var (
		backend     = newFakeBackend()
		service, _  = testService(t, backend)
		ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	)
	defer cancel()
	backend.block = true

	// testing
	assert.Equal(t, Cancelled, service.Audio(ctx, urlSong, nil).Outcome)
}

func TestAudioCancelBeforeStart(t *testing.T) {
	service, _ := testService(t, newFakeBackend())

	// testing
	assert.Zero(t, service.Session().CancelKind(entity.Audio))
	assert.True(t, service.Audio(context.Background(), urlSong, nil).OK())
}

func TestVideo(t *testing.T) {
	var (
		backend           = newFakeBackend()
		service, recorder = testService(t, backend)
		status            = &statusRecorder{}
	)

	// testing
	result := service.Video(context.Background(), urlOther, "720", status.record)
	assert.True(t, result.OK())
	assert.Equal(t, filepath.Join(service.config.VideoFolder, "Other.mp4"), result.Paths[0])
	assert.Equal(t, "bestvideo[height<=720]+bestaudio/best[height<=720]", backend.options[0].Format)
	assert.Equal(t, "mp4", backend.options[0].MergeFormat)
	assert.False(t, backend.options[0].ExtractAudio)
	assert.Empty(t, recorder.tags)
	assert.True(t, status.contains("Download finished."))
}

func TestVideoInvalidQuality(t *testing.T) {
	service, _ := testService(t, newFakeBackend())

	// testing
	assert.ErrorIs(t, service.Video(context.Background(), urlOther, "high", nil).Err, ErrInvalidQuality)
	assert.ErrorIs(t, service.Video(context.Background(), "", "best", nil).Err, ErrEmptyReference)
}

func TestVideoCancelled(t *testing.T) {
	var (
		backend    = newFakeBackend()
		service, _ = testService(t, backend)
		status     = &statusRecorder{}
	)
	backend.block = true

	// testing
	result := service.Video(context.Background(), urlOther, "best", func(message string) {
		status.record(message)
		service.Session().CancelKind(entity.Video)
	})
	assert.Equal(t, Cancelled, result.Outcome)
	assert.True(t, status.contains(messageVideoCancelled))
}

func TestVideoFormat(t *testing.T) {
	for quality, expected := range map[string]string{
		"":      "bestvideo+bestaudio/best",
		"best":  "bestvideo+bestaudio/best",
		"BEST":  "bestvideo+bestaudio/best",
		"1080":  "bestvideo[height<=1080]+bestaudio/best[height<=1080]",
		"480p":  "bestvideo[height<=480]+bestaudio/best[height<=480]",
		" 360 ": "bestvideo[height<=360]+bestaudio/best[height<=360]",
	} {
		format, err := videoFormat(quality)
		assert.Nil(t, err)
		assert.Equal(t, expected, format)
	}
	for _, quality := range []string{"0", "-720", "hd"} {
		_, err := videoFormat(quality)
		assert.ErrorIs(t, err, ErrInvalidQuality)
	}
}

func TestRemoveSidecars(t *testing.T) {
	var (
		dir  = t.TempDir()
		path = filepath.Join(dir, "track.mp3")
	)
	for _, name := range []string{"track.mp3", "track.webp", "track.jpg", "track.png", "other.webp"} {
		assert.Nil(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0o600))
	}

	// testing
	removeSidecars(path)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, "other.webp"))
	assert.NoFileExists(t, filepath.Join(dir, "track.webp"))
	assert.NoFileExists(t, filepath.Join(dir, "track.jpg"))
	assert.NoFileExists(t, filepath.Join(dir, "track.png"))
}

func TestRemoveSidecarsKeepsImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	assert.Nil(t, os.WriteFile(path, []byte{}, 0o600))

	// testing
	removeSidecars(path)
	assert.FileExists(t, path)
}
