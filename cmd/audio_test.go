package cmd

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/streambinder/mediadownloader/config"
	"github.com/streambinder/mediadownloader/downloader"
	"github.com/stretchr/testify/assert"
)

func BenchmarkAudio(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TestCmdAudio(&testing.T{})
	}
}

func TestCmdAudio(t *testing.T) {
	output, cfg, patches := testSession(t, newFakeBackend(), "")
	defer patches.Reset()

	// testing
	assert.Nil(t, testExecute(cmdAudio(), urlSong))
	assert.FileExists(t, filepath.Join(cfg.AudioFolder, "Song.mp3"))
	assert.Contains(t, output.String(), "(audio) Downloaded 0.00 MB / 0.00 MB")
	assert.Contains(t, output.String(), "(audio) Download finished.")
	assert.Contains(t, output.String(), filepath.Join(cfg.AudioFolder, "Song.mp3"))
}

func TestCmdAudioOpen(t *testing.T) {
	var opened string
	_, cfg, patches := testSession(t, newFakeBackend(), "")
	defer patches.Reset()

	// monkey patching
	defer gomonkey.ApplyGlobalVar(&openFolder, func(path string) error {
		opened = path
		return errors.New("no desktop")
	}).Reset()

	// testing
	assert.Nil(t, testExecute(cmdAudio(), "--open", urlSong))
	assert.Equal(t, filepath.Join(cfg.AudioFolder, "Song.mp3"), opened)
}

func TestCmdAudioFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.failing = true
	output, _, patches := testSession(t, backend, "")
	defer patches.Reset()

	// testing
	err := testExecute(cmdAudio(), urlSong)
	assert.ErrorIs(t, err, errReported)
	assert.ErrorIs(t, err, errFailure)
	assert.Equal(t, exitFailure, exitCode(err))
	assert.Contains(t, output.String(), "Download Error: Failed to download audio: failure")
}

func TestCmdAudioInvalidReference(t *testing.T) {
	output, _, patches := testSession(t, newFakeBackend(), "")
	defer patches.Reset()

	// testing
	assert.ErrorIs(t, testExecute(cmdAudio(), "not a url"), downloader.ErrInvalidReference)
	assert.Contains(t, output.String(), "Download Error: ")
}

func TestCmdAudioServiceFailure(t *testing.T) {
	output, _, patches := testSession(t, newFakeBackend(), "")
	defer patches.Reset()

	// monkey patching
	defer gomonkey.ApplyGlobalVar(&newService, func(*config.Config) (*downloader.Service, error) {
		return nil, errors.New("command \"yt-dlp\" not found in PATH")
	}).Reset()

	// testing
	assert.ErrorIs(t, testExecute(cmdAudio(), urlSong), errReported)
	assert.Contains(t, output.String(), "Download Error: Failed to download audio: command \"yt-dlp\" not found in PATH")
}

func TestCmdAudioNoArgs(t *testing.T) {
	// testing
	assert.Error(t, testExecute(cmdAudio()))
}
