package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/pool"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	DefaultTimeout = 10 * time.Second
	DefaultYtDlp   = "yt-dlp"
	rootFolder     = "MediaDownloader"
)

// Config carries the session settings: what the configuration file
// declares, overridden by command line flags
type Config struct {
	AudioFolder      string        `yaml:"audio_folder"`
	VideoFolder      string        `yaml:"video_folder"`
	Workers          int           `yaml:"workers"`
	Timeout          time.Duration `yaml:"timeout"`
	GeniusToken      string        `yaml:"genius_token"`
	Normalize        bool          `yaml:"normalize"`
	PlaylistEncoding string        `yaml:"playlist_encoding"`
	YtDlp            string        `yaml:"ytdlp"`
	LyricsCache      bool          `yaml:"lyrics_cache"`
}

func Default() *Config {
	config := new(Config)
	config.fill()
	return config
}

func (config *Config) fill() {
	if config.Workers <= 0 {
		config.Workers = pool.DefaultWidth
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	config.YtDlp = sys.Fallback(config.YtDlp, DefaultYtDlp)
	config.GeniusToken = sys.Fallback(config.GeniusToken, os.Getenv("GENIUS_TOKEN"))
}

// DefaultFolder is where downloads of the given kind land
// when no folder has been configured
func DefaultFolder(kind entity.Kind) string {
	name := "Audio"
	if kind == entity.Video {
		name = "Video"
	}
	return filepath.Join(xdg.Home, "Downloads", rootFolder, name)
}

// Folder resolves the destination folder for the given kind, creating it if needed
func (config *Config) Folder(kind entity.Kind) (string, error) {
	folder := config.AudioFolder
	if kind == entity.Video {
		folder = config.VideoFolder
	}
	folder = sys.Fallback(folder, DefaultFolder(kind))

	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", fmt.Errorf("cannot create %s folder: %w", kind, err)
	}
	return folder, nil
}

// LyricsCacheDir returns the lyrics cache location, or an empty string if disabled
func (config *Config) LyricsCacheDir() string {
	if !config.LyricsCache {
		return ""
	}
	return sys.CacheFile("lyrics")
}
