package entity

import (
	"regexp"
	"strings"
)

var (
	titleKeywords = []string{"official", "video", "lyric", "mashup", "audio", "-"}
	reTitleNoise  = regexp.MustCompile(`(\(.*?\)|\[.*?\])`)
)

// SplitTitle detects titles in the "Artist - Track (noise) [noise]" shape.
// It is a best-effort heuristic: multiple hyphens or titles like "24 - 7"
// will be split at the first hyphen anyway.
func SplitTitle(raw string, videoSite bool) (title, artist string, used bool) {
	if !videoSite || !hasTitleKeyword(raw) {
		return raw, "", false
	}

	artist, rest, found := strings.Cut(raw, "-")
	if !found {
		return raw, "", false
	}

	return strings.TrimSpace(reTitleNoise.ReplaceAllString(strings.TrimSpace(rest), "")),
		strings.TrimSpace(artist),
		true
}

func hasTitleKeyword(raw string) bool {
	lower := strings.ToLower(raw)
	for _, keyword := range titleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
