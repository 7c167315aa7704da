package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	jsoniter "github.com/json-iterator/go"
)

const lrclibEndpoint = "https://lrclib.net"

var reSyncedSpacing = regexp.MustCompile(`\[(\d{2}:\d{2}\.\d{2})\]\s+`)

type lrclib struct {
	client   *http.Client
	endpoint string
}

type lrclibResponse struct {
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
}

func (composer lrclib) search(ctx context.Context, q *query) ([]byte, error) {
	return composer.get(ctx, fmt.Sprintf("%s/api/get?track_name=%s&artist_name=%s",
		composer.endpoint,
		url.QueryEscape(q.title),
		url.QueryEscape(q.artist)), q.videoPlatform)
}

// timings coming from the video platform are not trusted,
// hence plain lyrics are preferred for those
func (composer lrclib) get(ctx context.Context, url string, plain bool) ([]byte, error) {
	body, _, status, err := get(ctx, composer.client, url)
	switch {
	case err != nil:
		return nil, err
	case status == 0 || status == http.StatusNotFound || status == http.StatusTooManyRequests:
		return nil, nil
	case status != http.StatusOK:
		return nil, fmt.Errorf("cannot fetch results on lrclib: %d %s", status, http.StatusText(status))
	}

	entry := new(lrclibResponse)
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, entry); err != nil {
		return nil, err
	}

	if len(entry.SyncedLyrics) > 0 && !plain {
		return []byte(reSyncedSpacing.ReplaceAllString(entry.SyncedLyrics, `[$1]`)), nil
	}
	if len(entry.PlainLyrics) > 0 {
		return []byte(entry.PlainLyrics), nil
	}
	return nil, nil
}
