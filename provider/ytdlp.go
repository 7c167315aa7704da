package provider

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys"
)

const (
	ytDlpBinary      = "yt-dlp"
	progressPrefix   = "progress "
	progressTemplate = "download:" + progressPrefix +
		"%(progress.status)s %(progress.downloaded_bytes)s " +
		"%(progress.total_bytes)s %(progress.total_bytes_estimate)s"
	scannerBuffer = 16 * 1024 * 1024
	errorTail     = 8
	waitDelay     = time.Second
)

// YtDlp drives the yt-dlp executable
type YtDlp struct {
	Binary string // defaults to yt-dlp from PATH
}

func NewYtDlp(binary string) *YtDlp {
	return &YtDlp{Binary: binary}
}

func (ytdlp *YtDlp) binary() string {
	return sys.Fallback(ytdlp.Binary, ytDlpBinary)
}

func (ytdlp *YtDlp) Resolve(ctx context.Context, reference string) (*entity.Media, error) {
	return ytdlp.dump(ctx, "--dump-single-json", "--no-warnings", reference)
}

func (ytdlp *YtDlp) ResolveFlat(ctx context.Context, reference string) (*entity.Media, error) {
	return ytdlp.dump(ctx, "--dump-single-json", "--no-warnings", "--flat-playlist", reference)
}

func (ytdlp *YtDlp) dump(ctx context.Context, args ...string) (*entity.Media, error) {
	var (
		stdout, stderr bytes.Buffer
		cmd            = exec.CommandContext(ctx, ytdlp.binary(), args...)
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return decode(bytes.TrimSpace(stdout.Bytes()))
}

func (ytdlp *YtDlp) Fetch(ctx context.Context, reference string, options Options, callback func(Progress) error) (*entity.Media, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		stderr bytes.Buffer
		cmd    = exec.CommandContext(ctx, ytdlp.binary(), append(fetchArgs(options), reference)...)
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	var (
		media    *entity.Media
		finished bool
		abort    error
		tail     []string
		scanner  = bufio.NewScanner(stdout)
	)
	scanner.Buffer(make([]byte, 64*1024), scannerBuffer)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, progressPrefix):
			progress := parseProgress(strings.TrimPrefix(line, progressPrefix))
			finished = finished || progress.Status == StatusFinished
			if callback != nil {
				abort = callback(progress)
			}
		case strings.HasPrefix(line, "{"):
			if decoded, err := decode([]byte(line)); err == nil {
				media = decoded
			} else {
				log.Printf("[ytdlp]\tcannot decode info line: %s", err)
			}
		case line != "":
			tail = append(tail, line)
			if len(tail) > errorTail {
				tail = tail[1:]
			}
		}
		if abort != nil {
			cancel()
			break
		}
	}

	waitErr := cmd.Wait()
	switch {
	case abort != nil:
		return nil, abort
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case waitErr != nil:
		tail = append(tail, strings.Split(strings.TrimSpace(stderr.String()), "\n")...)
		return nil, fmt.Errorf("yt-dlp failed: %w: %s", waitErr, strings.TrimSpace(strings.Join(tail, "\n")))
	case media == nil:
		return nil, errMalformed
	}

	if !finished && callback != nil {
		if err := callback(Progress{Status: StatusFinished}); err != nil {
			return nil, err
		}
	}
	return media, nil
}

func fetchArgs(options Options) []string {
	args := []string{
		"--newline", "--progress", "--no-simulate", "--no-warnings",
		"--progress-template", progressTemplate,
		"--print", "after_move:%()j",
	}
	if options.Format != "" {
		args = append(args, "--format", options.Format)
	}
	if options.Output != "" {
		args = append(args, "--output", options.Output)
	}
	if options.ExtractAudio {
		args = append(args, "--extract-audio")
	}
	if options.AudioFormat != "" {
		args = append(args, "--audio-format", options.AudioFormat)
	}
	if options.AudioQuality != "" {
		args = append(args, "--audio-quality", options.AudioQuality)
	}
	if options.WriteThumbnail {
		args = append(args, "--write-thumbnail")
	}
	if options.EmbedMetadata {
		args = append(args, "--embed-metadata")
	}
	if options.MergeFormat != "" {
		args = append(args, "--merge-output-format", options.MergeFormat)
	}
	return args
}

// parseProgress reads "<status> <downloaded> <total> <estimate>",
// with NA where the value is unknown
func parseProgress(line string) Progress {
	var (
		fields   = strings.Fields(line)
		progress = Progress{Status: sys.First(fields, "")}
	)
	if len(fields) > 1 {
		progress.Downloaded = parseBytes(fields[1])
	}
	if len(fields) > 2 {
		progress.Total = parseBytes(fields[2])
	}
	if progress.Total == 0 && len(fields) > 3 {
		progress.Total = parseBytes(fields[3])
	}
	return progress
}

func parseBytes(field string) int64 {
	value, err := strconv.ParseFloat(field, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int64(value)
}

var ErrNoBinary = errors.New("yt-dlp executable not found")

// Available tells whether the configured executable can be found
func (ytdlp *YtDlp) Available() error {
	if _, err := exec.LookPath(ytdlp.binary()); err != nil {
		return fmt.Errorf("%w: %s", ErrNoBinary, err)
	}
	return nil
}
