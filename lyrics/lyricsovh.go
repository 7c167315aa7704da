package lyrics

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

const lyricsOvhEndpoint = "https://api.lyrics.ovh"

type lyricsOvh struct {
	client   *http.Client
	endpoint string
}

type ovhResponse struct {
	Lyrics string `json:"lyrics"`
}

func (composer lyricsOvh) search(ctx context.Context, q *query) ([]byte, error) {
	address := fmt.Sprintf("%s/v1/%s", composer.endpoint, url.PathEscape(q.title))
	if q.artist != "" {
		address = fmt.Sprintf("%s/v1/%s/%s", composer.endpoint, url.PathEscape(q.artist), url.PathEscape(q.title))
	}
	return composer.get(ctx, address)
}

func (composer lyricsOvh) get(ctx context.Context, url string) ([]byte, error) {
	body, _, status, err := get(ctx, composer.client, url)
	switch {
	case err != nil:
		return nil, err
	case status == 0 || status == http.StatusNotFound || status == http.StatusTooManyRequests:
		return nil, nil
	case status != http.StatusOK:
		return nil, fmt.Errorf("cannot fetch results on lyrics.ovh: %d %s", status, http.StatusText(status))
	}

	entry := new(ovhResponse)
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, entry); err != nil {
		return nil, err
	}

	return []byte(entry.Lyrics), nil
}
