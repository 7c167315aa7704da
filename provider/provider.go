package provider

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/agnivade/levenshtein"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
	DefaultResults    = 3
)

// Progress is the periodic transfer report of a fetch
type Progress struct {
	Status     string
	Downloaded int64
	Total      int64 // zero if unknown
}

// Options tells the backend how to fetch and post-process an item
type Options struct {
	Format         string
	Output         string // output path template
	ExtractAudio   bool
	AudioFormat    string
	AudioQuality   string
	WriteThumbnail bool
	EmbedMetadata  bool
	MergeFormat    string
}

// Backend is the media extraction engine
type Backend interface {
	// Resolve returns the full metadata of a reference, without downloading
	Resolve(context.Context, string) (*entity.Media, error)
	// ResolveFlat lists playlist entries without resolving each of them
	ResolveFlat(context.Context, string) (*entity.Media, error)
	// Fetch downloads the reference, reporting progress through the callback:
	// an error returned by the callback aborts the transfer and is returned back
	Fetch(context.Context, string, Options, func(Progress) error) (*entity.Media, error)
}

type Match struct {
	*entity.Media
	Score int
}

// Search resolves the query through the backend search syntax,
// scoring results by how close their title is to the query
func Search(ctx context.Context, backend Backend, query string, max int) ([]*Match, error) {
	if max <= 0 {
		max = DefaultResults
	}

	result, err := backend.Resolve(ctx, fmt.Sprintf("ytsearch%d:%s", max, query))
	if err != nil {
		return nil, err
	}

	var matches []*Match
	for _, entry := range result.Entries {
		matches = append(matches, &Match{entry, score(query, entry)})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// score goes from 0 to 100 depending on the Levenshtein distance
// between the query and the result uploader+title
func score(query string, media *entity.Media) int {
	distance := int(math.Min(
		float64(levenshtein.ComputeDistance(
			sys.UniqueFields(query),
			sys.UniqueFields(fmt.Sprintf("%s %s", media.Uploader, media.Title)),
		)),
		50.0,
	))
	return 100 - (distance * 100 / 50)
}

// Qualities lists the vertical resolutions the reference is offered at,
// highest first, along with its full metadata
func Qualities(ctx context.Context, backend Backend, url string) ([]string, *entity.Media, error) {
	media, err := backend.Resolve(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	var heights []int
	for _, format := range media.Formats {
		if format.HasVideo() && format.Height > 0 {
			heights = append(heights, format.Height)
		}
	}
	heights = sys.Dedup(heights)
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	qualities := make([]string, 0, len(heights))
	for _, height := range heights {
		qualities = append(qualities, strconv.Itoa(height))
	}
	return qualities, media, nil
}
