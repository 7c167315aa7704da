package sys

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

var legalizer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "\x00", "")

func Flatten(sentence string) string {
	return strings.ReplaceAll(slug.Make(sentence), "-", " ")
}

func UniqueFields(sentence string) string {
	return strings.Join(Dedup(strings.Fields(Flatten(sentence))), " ")
}

func Excerpt(sentence string, args ...int) string {
	sentence = strings.ReplaceAll(strings.ReplaceAll(sentence, "\n", " "), "\r", " ")

	length := First(args, 10)
	if len(sentence) > length {
		return sentence[:length]
	}

	return sentence
}

func Pad(sentence string, args ...int) string {
	sentence = Excerpt(sentence, args...)
	return fmt.Sprintf("%-*s", First(args, 10), sentence)
}

func Fallback(value, fallback string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallback
	}
	return value
}

// Legalize makes a string usable as a single path element
func Legalize(name string) string {
	name = strings.TrimSpace(legalizer.Replace(name))
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

func HumanizeBytes(bytes int) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Megabytes renders a byte count the way download progress reports it
func Megabytes(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}
