package lyrics

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	jsoniter "github.com/json-iterator/go"
)

const geniusEndpoint = "https://api.genius.com"

type genius struct {
	client   *http.Client
	endpoint string
	token    string
}

type geniusSearch struct {
	Response struct {
		Hits []struct {
			Result struct {
				URL    string
				Title  string
				Artist struct {
					Name string
				} `json:"primary_artist"`
			}
		}
	}
}

// search returns the URL of the first hit, if any
func (composer genius) search(ctx context.Context, q *query) (string, error) {
	terms := q.title
	if q.artist != "" {
		terms = fmt.Sprintf("%s %s", terms, q.artist)
	}

	var (
		address              = fmt.Sprintf("%s/search?q=%s", composer.endpoint, url.QueryEscape(terms))
		body, _, status, err = get(ctx, composer.client, address,
			"Authorization: Bearer "+composer.token)
	)
	switch {
	case err != nil:
		return "", err
	case status == 0 || status == http.StatusTooManyRequests:
		return "", nil
	case status != http.StatusOK:
		return "", fmt.Errorf("cannot search lyrics on genius: %d %s", status, http.StatusText(status))
	}

	var data geniusSearch
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(body, &data); err != nil {
		return "", err
	}

	if len(data.Response.Hits) == 0 {
		return "", nil
	}
	return data.Response.Hits[0].Result.URL, nil
}

func (composer genius) fromGeniusURL(ctx context.Context, url string) ([]byte, error) {
	body, _, status, err := get(ctx, composer.client, url)
	switch {
	case err != nil:
		return nil, err
	case status == 0 || status == http.StatusTooManyRequests:
		return nil, nil
	case status != http.StatusOK:
		return nil, fmt.Errorf("cannot fetch lyrics on genius: %d %s", status, http.StatusText(status))
	}

	document, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var blocks []string
	document.Find("div[data-lyrics-container='true']").Each(func(_ int, s *goquery.Selection) {
		var data []byte
		s.Contents().Each(documentParser(&data))
		blocks = append(blocks, strings.TrimSpace(string(data)))
	})

	return []byte(strings.Join(blocks, "\n")), nil
}

func documentParser(data *[]byte) func(i int, s *goquery.Selection) {
	return func(i int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "br", "div":
			*data = append(*data, '\n')
		case "#text":
			*data = append(*data, []byte(s.Text())...)
		default:
			s.Contents().Each(documentParser(data))
		}
	}
}
