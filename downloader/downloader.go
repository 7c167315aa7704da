package downloader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/streambinder/mediadownloader/config"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/lyrics"
	"github.com/streambinder/mediadownloader/pool"
	"github.com/streambinder/mediadownloader/processor"
	"github.com/streambinder/mediadownloader/provider"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	outputTemplate = "%(title)s.%(ext)s"
	qualityBest    = "best"
)

var sidecars = []string{".webp", ".jpg", ".png"}

// Service runs downloads against a backend, bounding playlist
// concurrency with a single pool shared across calls
type Service struct {
	backend    provider.Backend
	config     *config.Config
	pool       *pool.Pool
	session    *Session
	client     *http.Client
	processors []processor.Processor
}

type Option func(*Service)

func WithPool(pool *pool.Pool) Option {
	return func(service *Service) {
		service.pool = pool
	}
}

func WithSession(session *Session) Option {
	return func(service *Service) {
		service.session = session
	}
}

func WithClient(client *http.Client) Option {
	return func(service *Service) {
		service.client = client
	}
}

// WithProcessors replaces the steps applied to every downloaded audio file
func WithProcessors(processors ...processor.Processor) Option {
	return func(service *Service) {
		service.processors = processors
	}
}

func New(cfg *config.Config, backend provider.Backend, options ...Option) *Service {
	if cfg == nil {
		cfg = config.Default()
	}

	service := &Service{
		backend: backend,
		config:  cfg,
		pool:    pool.New(cfg.Workers),
		session: NewSession(),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.Normalize {
		service.processors = append(service.processors, processor.Normalizer{})
	}
	service.processors = append(service.processors, processor.NewEncoder(
		lyrics.New(
			lyrics.WithTimeout(cfg.Timeout),
			lyrics.WithGeniusToken(cfg.GeniusToken),
			lyrics.WithCache(cfg.LyricsCacheDir()),
		),
		service.cover,
	))

	for _, option := range options {
		option(service)
	}
	return service
}

func (service *Service) Session() *Session {
	return service.session
}

func (service *Service) cover(ctx context.Context, url string) ([]byte, error) {
	return blob(ctx, service.client, url)
}

// Audio downloads the reference as a tagged mp3 inside the audio folder
func (service *Service) Audio(ctx context.Context, reference string, onStatus StatusFunc) Result {
	if err := validateReference(reference); err != nil {
		return failed(err)
	}

	token := service.session.Start(ctx, entity.Audio)
	defer service.session.Stop(token)

	folder, err := service.config.Folder(entity.Audio)
	if err != nil {
		return failed(err)
	}

	path, err := service.audio(token.Context(), token, reference, folder, "", false, onStatus)
	return service.result(token, err, onStatus, messageAudioCancelled, path)
}

// Video downloads the reference as mp4 at the given quality
// ("best" or a maximum height) inside the video folder
func (service *Service) Video(ctx context.Context, reference, quality string, onStatus StatusFunc) Result {
	if err := validateReference(reference); err != nil {
		return failed(err)
	}
	format, err := videoFormat(quality)
	if err != nil {
		return failed(err)
	}

	token := service.session.Start(ctx, entity.Video)
	defer service.session.Stop(token)

	folder, err := service.config.Folder(entity.Video)
	if err != nil {
		return failed(err)
	}

	path, err := service.video(token.Context(), token, reference, folder, format, "", false, onStatus)
	return service.result(token, err, onStatus, messageVideoCancelled, path)
}

func (service *Service) audio(ctx context.Context, token *Token, reference, folder, prefix string, playlistItem bool, onStatus StatusFunc) (string, error) {
	media, err := service.backend.Fetch(ctx, reference, provider.Options{
		Format:         "bestaudio/best",
		Output:         filepath.Join(folder, outputTemplate),
		ExtractAudio:   true,
		AudioFormat:    "mp3",
		AudioQuality:   "320K",
		WriteThumbnail: true,
		EmbedMetadata:  true,
	}, service.progress(token, prefix, playlistItem, onStatus))
	if err != nil {
		return "", err
	}
	if media.Path == "" {
		return "", fmt.Errorf("no file produced for %s", reference)
	}

	tags := entity.NewTagSet(media, reference)
	for _, step := range service.processors {
		if err := step.Do(ctx, media.Path, tags); err != nil {
			log.Printf("[processor]\t%s: %s", media.Path, err)
		}
	}

	removeSidecars(media.Path)
	return media.Path, nil
}

func (service *Service) video(ctx context.Context, token *Token, reference, folder, format, prefix string, playlistItem bool, onStatus StatusFunc) (string, error) {
	media, err := service.backend.Fetch(ctx, reference, provider.Options{
		Format:      format,
		Output:      filepath.Join(folder, outputTemplate),
		MergeFormat: "mp4",
	}, service.progress(token, prefix, playlistItem, onStatus))
	if err != nil {
		return "", err
	}
	if media.Path == "" {
		return "", fmt.Errorf("no file produced for %s", reference)
	}
	return media.Path, nil
}

// progress forwards transfer reports and aborts the transfer
// as soon as the job gets cancelled
func (service *Service) progress(token *Token, prefix string, playlistItem bool, onStatus StatusFunc) func(provider.Progress) error {
	return func(progress provider.Progress) error {
		if token.Cancelled() {
			return ErrCancelled
		}
		if text := progressText(progress, prefix, playlistItem); text != "" {
			onStatus.notify("%s", text)
		}
		return nil
	}
}

func (service *Service) result(token *Token, err error, onStatus StatusFunc, cancelMessage string, paths ...string) Result {
	var produced []string
	for _, path := range paths {
		if path != "" {
			produced = append(produced, path)
		}
	}

	switch {
	case token.Cancelled() || errors.Is(err, ErrCancelled):
		onStatus.notify("%s", cancelMessage)
		return Result{Outcome: Cancelled, Err: ErrCancelled, Paths: produced}
	case err != nil:
		return Result{Outcome: Failed, Err: err, Paths: produced}
	default:
		return Result{Outcome: Succeeded, Paths: produced}
	}
}

func validateReference(reference string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return ErrEmptyReference
	}

	parsed, err := url.Parse(reference)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %s", ErrInvalidReference, reference)
	}
	return nil
}

func videoFormat(quality string) (string, error) {
	quality = strings.TrimSpace(strings.ToLower(quality))
	if quality == "" || quality == qualityBest {
		return "bestvideo+bestaudio/best", nil
	}

	height, err := strconv.Atoi(strings.TrimSuffix(quality, "p"))
	if err != nil || height <= 0 {
		return "", fmt.Errorf("%w: %s", ErrInvalidQuality, quality)
	}
	return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", height, height), nil
}

func removeSidecars(path string) {
	for _, ext := range sidecars {
		sidecar := sys.FileStem(path) + ext
		if sidecar == path {
			continue
		}
		if err := os.Remove(sidecar); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[downloader]\tcannot remove %s: %s", sidecar, err)
		}
	}
}
