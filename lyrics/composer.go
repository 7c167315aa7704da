package lyrics

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	DefaultTimeout = 10 * time.Second
	maxLines       = 100
	retries        = 1
	notFound       = "Lyrics not found"
)

var reSyncedPrefix = regexp.MustCompile(`^\[\d{2}:\d{2}\.\d{2}\]\s*`)

type query struct {
	title         string
	artist        string
	videoPlatform bool
}

// Resolver looks lyrics up on LRCLIB first, then on Genius
// (falling back to lyrics.ovh when the Genius page cannot be scraped)
type Resolver struct {
	lrclib    *lrclib
	genius    *genius
	lyricsOvh *lyricsOvh
	cache     string
}

type Option func(*Resolver)

// WithClient replaces the HTTP client used to reach every source
func WithClient(client *http.Client) Option {
	return func(resolver *Resolver) {
		resolver.lrclib.client = client
		resolver.genius.client = client
		resolver.lyricsOvh.client = client
	}
}

func WithTimeout(timeout time.Duration) Option {
	return WithClient(&http.Client{Timeout: timeout})
}

func WithGeniusToken(token string) Option {
	return func(resolver *Resolver) {
		resolver.genius.token = token
	}
}

// WithEndpoints overrides the base URLs of the lyrics sources
func WithEndpoints(lrclibURL, geniusURL, lyricsOvhURL string) Option {
	return func(resolver *Resolver) {
		resolver.lrclib.endpoint = lrclibURL
		resolver.genius.endpoint = geniusURL
		resolver.lyricsOvh.endpoint = lyricsOvhURL
	}
}

// WithCache stores valid lyrics as plain files inside dir
func WithCache(dir string) Option {
	return func(resolver *Resolver) {
		resolver.cache = dir
	}
}

func New(options ...Option) *Resolver {
	client := &http.Client{Timeout: DefaultTimeout}
	resolver := &Resolver{
		lrclib:    &lrclib{client: client, endpoint: lrclibEndpoint},
		genius:    &genius{client: client, endpoint: geniusEndpoint, token: os.Getenv("GENIUS_TOKEN")},
		lyricsOvh: &lyricsOvh{client: client, endpoint: lyricsOvhEndpoint},
	}
	for _, option := range options {
		option(resolver)
	}
	return resolver
}

// Fetch never fails: a miss on every source, as well as any network failure,
// just returns false
func (resolver *Resolver) Fetch(ctx context.Context, title string, artists []string, videoPlatform bool) (string, bool) {
	q := &query{title, NormalizeArtist(artists), videoPlatform}
	if !knownArtist(q.artist) {
		q.artist = ""
	}

	if lyrics, ok := resolver.cached(q); ok {
		return lyrics, true
	}

	lyrics, ok := resolver.resolve(ctx, q)
	if !ok {
		return "", false
	}

	resolver.store(q, lyrics)
	return lyrics, true
}

func (resolver *Resolver) resolve(ctx context.Context, q *query) (string, bool) {
	if q.artist != "" {
		lyrics, err := resolver.lrclib.search(ctx, q)
		if err != nil {
			log.Printf("[lyrics]\tlrclib: %s", err)
		} else if len(lyrics) > 0 {
			return string(lyrics), true
		}
	}

	url, err := resolver.genius.search(ctx, q)
	if err != nil {
		log.Printf("[lyrics]\tgenius: %s", err)
		return "", false
	} else if url == "" {
		return "", false
	}

	lyrics, err := resolver.genius.fromGeniusURL(ctx, url)
	if err != nil {
		log.Printf("[lyrics]\tgenius: %s", err)
		return "", false
	}

	if len(lyrics) == 0 {
		if lyrics, err = resolver.lyricsOvh.search(ctx, q); err != nil {
			log.Printf("[lyrics]\tlyrics.ovh: %s", err)
			return "", false
		} else if len(lyrics) == 0 {
			lyrics = []byte(notFound)
		}
	}

	if !IsValid(string(lyrics), q.title) {
		log.Printf("[lyrics]\tinvalid or unrelated lyrics for %q by %q", q.title, q.artist)
		return "", false
	}
	return string(lyrics), true
}

func (resolver *Resolver) cacheFile(q *query) string {
	if resolver.cache == "" {
		return ""
	}
	name := q.title + " " + q.artist
	if q.videoPlatform {
		name += " plain"
	}
	return filepath.Join(resolver.cache, slug.Make(name)+".txt")
}

func (resolver *Resolver) cached(q *query) (string, bool) {
	path := resolver.cacheFile(q)
	if path == "" {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return string(data), true
}

func (resolver *Resolver) store(q *query, lyrics string) {
	path := resolver.cacheFile(q)
	if path == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Printf("[lyrics]\tcache: %s", err)
		return
	}
	if err := os.WriteFile(path, []byte(lyrics), 0o600); err != nil {
		log.Printf("[lyrics]\tcache: %s", err)
	}
}

// NormalizeArtist keeps only the first of many artists
func NormalizeArtist(artists []string) string {
	if len(artists) == 0 {
		return ""
	}
	artist, _, _ := strings.Cut(artists[0], ",")
	return strings.TrimSpace(artist)
}

func knownArtist(artist string) bool {
	return artist != "" && !strings.EqualFold(artist, entity.UnknownArtist)
}

// IsValid rejects empty results, placeholders, listing pages
// and texts not mentioning the title at all
func IsValid(lyrics, title string) bool {
	if lyrics == "" || strings.Contains(lyrics, notFound) {
		return false
	}

	var lines int
	for _, line := range strings.Split(strings.TrimSpace(lyrics), "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if lines == 0 || lines > maxLines {
		return false
	}

	return strings.Contains(strings.ToLower(lyrics), strings.ToLower(title))
}

func IsSynced(data interface{}) bool {
	var lyrics string
	switch v := data.(type) {
	case string:
		lyrics = v
	case []byte:
		lyrics = string(v)
	default:
		return false
	}
	return reSyncedPrefix.MatchString(strings.Split(lyrics, "\n")[0])
}

func GetPlain(lyrics string) string {
	if IsSynced(lyrics) {
		lines := strings.Split(lyrics, "\n")
		for i, line := range lines {
			lines[i] = reSyncedPrefix.ReplaceAllString(line, "")
		}
		return strings.Join(lines, "\n")
	}
	return lyrics
}

// get runs a GET request against a source, retrying once after the wait
// a rate limited response asks for: canceled requests are reported as empty bodies
func get(ctx context.Context, client *http.Client, url string, headers ...string) ([]byte, http.Header, int, error) {
	for attempt := 0; ; attempt++ {
		body, header, status, err := fetch(ctx, client, url, headers...)
		if status != http.StatusTooManyRequests || attempt >= retries {
			return body, header, status, err
		}
		if sys.SleepUntilRetry(ctx, header) != nil {
			return nil, nil, 0, nil
		}
	}
}

func fetch(ctx context.Context, client *http.Client, url string, headers ...string) ([]byte, http.Header, int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, 0, err
	}
	for _, header := range headers {
		if key, value, ok := strings.Cut(header, ":"); ok {
			request.Header.Set(key, strings.TrimSpace(value))
		}
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, nil, 0, sys.ErrSuppress(err, context.Canceled)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, response.Header, response.StatusCode, nil
	}

	body, err := io.ReadAll(response.Body)
	return body, response.Header, response.StatusCode, err
}
