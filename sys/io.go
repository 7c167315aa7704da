package sys

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const cacheName = "mediadownloader"

func FileBaseStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func FileStem(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func CacheDirectory() string {
	path, err := xdg.CacheFile(cacheName)
	if err != nil {
		return filepath.Join(os.TempDir(), cacheName)
	}
	return path
}

func CacheFile(name string) string {
	return filepath.Join(CacheDirectory(), name)
}
