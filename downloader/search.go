package downloader

import (
	"context"
	"log"
	"strings"

	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/provider"
)

// Search looks the query up on the backend: on failure, the error
// comes along with an empty result set
func (service *Service) Search(ctx context.Context, query string, max int) ([]*provider.Match, error) {
	if strings.TrimSpace(query) == "" {
		return []*provider.Match{}, ErrEmptyReference
	}

	matches, err := provider.Search(ctx, service.backend, query, max)
	if err != nil {
		log.Printf("[search]\t%s: %s", query, err)
		return []*provider.Match{}, err
	}
	return matches, nil
}

// Qualities lists the heights the reference can be downloaded at, highest first
func (service *Service) Qualities(ctx context.Context, reference string) ([]string, *entity.Media, error) {
	if err := validateReference(reference); err != nil {
		return nil, nil, err
	}
	return provider.Qualities(ctx, service.backend, reference)
}
