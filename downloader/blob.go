package downloader

import (
	"context"
	"errors"
	"io"
	"net/http"
)

const maxBlobSize = 16 << 20

// blob pulls a small remote asset, such as a cover, in memory
func blob(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, errors.New("cannot get blob: " + response.Status)
	}

	return io.ReadAll(io.LimitReader(response.Body, maxBlobSize))
}
