package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/streambinder/mediadownloader/sys"
)

var reMaxVolume = regexp.MustCompile(`max_volume:\s[\-\.0-9]+\sdB`)

type FFmpegCmd struct{}

func FFmpeg() FFmpegCmd {
	return FFmpegCmd{}
}

func (FFmpegCmd) VolumeDetect(ctx context.Context, path string) (float64, error) {
	var (
		output bytes.Buffer
		cmd    = exec.CommandContext(ctx, "ffmpeg",
			"-i", path,
			"-af", "volumedetect",
			"-f", "null",
			"-y", "null",
		)
	)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return 0, errors.New(output.String())
	}

	match := reMaxVolume.FindString(output.String())
	match = strings.ReplaceAll(match, "max_volume: ", "")
	match = strings.ReplaceAll(match, " dB", "")
	volume, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, errors.New("cannot parse max_volume for given file")
	}
	return volume, nil
}

func (FFmpegCmd) VolumeAdd(ctx context.Context, path string, delta float64) error {
	if delta == 0 {
		return nil
	}

	var (
		output bytes.Buffer
		temp   = sys.FileStem(path) + ".norm" + filepath.Ext(path)
		cmd    = exec.CommandContext(ctx, "ffmpeg", // nolint:gosec
			"-i", path,
			"-af", fmt.Sprintf("volume=%.1fdB", delta),
			"-y", temp,
		)
	)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		return errors.New(output.String())
	}
	return os.Rename(temp, path)
}

// Normalize moves the peak volume of the file to 0dB
func (ffmpeg FFmpegCmd) Normalize(ctx context.Context, path string) error {
	peak, err := ffmpeg.VolumeDetect(ctx, path)
	if err != nil {
		return err
	}
	if math.IsNaN(peak) {
		return nil
	}
	return ffmpeg.VolumeAdd(ctx, path, -peak)
}
