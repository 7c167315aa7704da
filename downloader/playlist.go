package downloader

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/entity/playlist"
	"github.com/streambinder/mediadownloader/pool"
	"github.com/streambinder/mediadownloader/sys"
)

const unknownVideoPlaylist = "unknown"

// Preview is a quick look at a playlist, with no item resolved but the first one
type Preview struct {
	Title     string
	Count     int
	Thumbnail string
}

// AudioPlaylist downloads every playlist entry as tagged mp3
// inside a folder named after the playlist
func (service *Service) AudioPlaylist(ctx context.Context, reference string, onStatus StatusFunc, onItem ItemFunc) Result {
	if err := validateReference(reference); err != nil {
		return failed(err)
	}
	return service.playlist(ctx, entity.Audio, reference, "", onStatus, onItem)
}

// VideoPlaylist downloads every playlist entry as mp4 at the given quality
func (service *Service) VideoPlaylist(ctx context.Context, reference, quality string, onStatus StatusFunc, onItem ItemFunc) Result {
	if err := validateReference(reference); err != nil {
		return failed(err)
	}
	format, err := videoFormat(quality)
	if err != nil {
		return failed(err)
	}
	return service.playlist(ctx, entity.Video, reference, format, onStatus, onItem)
}

func (service *Service) playlist(ctx context.Context, kind entity.Kind, reference, format string, onStatus StatusFunc, onItem ItemFunc) Result {
	var (
		token         = service.session.Start(ctx, kind)
		cancelMessage = sys.Ternary(kind == entity.Audio, messageAudioPLCancelled, messageVideoPLCancelled)
	)
	defer service.session.Stop(token)

	list, err := service.backend.ResolveFlat(token.Context(), reference)
	if err != nil {
		return service.result(token, err, onStatus, cancelMessage)
	}

	title := sys.Fallback(list.Title, sys.Ternary(kind == entity.Audio, entity.UnknownPlaylist, unknownVideoPlaylist))
	// both kinds land in the audio folder
	root, err := service.config.Folder(entity.Audio)
	if err != nil {
		return failed(err)
	}
	folder := filepath.Join(root, sys.Legalize(title))
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return failed(err)
	}

	if !list.IsPlaylist() {
		log.Printf("[playlist]\t%s lists no entries", reference)
	}
	log.Printf("[playlist]\t%s: %d entries over %d workers", title, len(list.Entries), service.pool.Width())
	onStatus.notify(messageListingTemplate, title, len(list.Entries))

	var (
		total     = len(list.Entries)
		items     = make([]*entity.Media, total)
		jobs      = make([]pool.Job, 0, total)
		completed atomic.Int32
		firstErr  error
		errOnce   sync.Once
	)
	for i, entry := range list.Entries {
		index, entry := i+1, entry
		jobs = append(jobs, func(ctx context.Context) error {
			if token.Cancelled() {
				return ErrCancelled
			}

			link := entry.Link()
			if link == "" {
				log.Printf("[playlist]\tskipping entry %d/%d with no url", index, total)
				return nil
			}

			media, path, err := service.playlistItem(ctx, token, kind, link, folder, format, index, total, title, onStatus, onItem)
			if err != nil {
				if token.Cancelled() {
					return ErrCancelled
				}
				log.Printf("[playlist]\t%s: %s", link, err)
				errOnce.Do(func() { firstErr = err })
				return nil
			}

			items[index-1] = &entity.Media{Title: media.Title, Duration: media.Duration, Path: path}
			onStatus.notify(messageCompletedTemplate, completed.Add(1), total)
			return nil
		})
	}

	if err := service.pool.Run(token.Context(), jobs...); err != nil && !token.Cancelled() {
		errOnce.Do(func() { firstErr = err })
	}

	var paths []string
	for _, item := range items {
		if item != nil {
			paths = append(paths, item.Path)
		}
	}

	if kind == entity.Audio && service.config.PlaylistEncoding != "" && len(paths) > 0 {
		target, err := playlist.Playlist{Name: title, Dir: folder, Items: items}.Write(service.config.PlaylistEncoding)
		if err != nil {
			log.Printf("[playlist]\tcannot write playlist file: %s", err)
		} else {
			log.Printf("[playlist]\twritten %s", target)
		}
	}

	result := service.result(token, firstErr, onStatus, cancelMessage, paths...)
	result.Completed, result.Total = int(completed.Load()), total
	return result
}

func (service *Service) playlistItem(ctx context.Context, token *Token, kind entity.Kind, link, folder, format string,
	index, total int, title string, onStatus StatusFunc, onItem ItemFunc,
) (*entity.Media, string, error) {
	media, err := service.backend.Resolve(ctx, link)
	if err != nil {
		return nil, "", err
	}
	onItem.notify(media.Title, media.Thumbnail, index, total, title)

	prefix := fmt.Sprintf("[%d/%d] ", index, total)
	if kind == entity.Audio {
		path, err := service.audio(ctx, token, link, folder, prefix, true, onStatus)
		return media, path, err
	}
	path, err := service.video(ctx, token, link, folder, format, prefix, true, onStatus)
	return media, path, err
}

// Preview resolves the playlist flat, picking a thumbnail out of
// the first entry when the playlist has none
func (service *Service) Preview(ctx context.Context, reference string) (*Preview, error) {
	if err := validateReference(reference); err != nil {
		return nil, err
	}

	list, err := service.backend.ResolveFlat(ctx, reference)
	if err != nil {
		return nil, err
	}

	preview := &Preview{
		Title:     sys.Fallback(list.Title, entity.UnknownPlaylist),
		Count:     len(list.Entries),
		Thumbnail: list.Cover(),
	}
	if preview.Thumbnail == "" && list.IsPlaylist() && list.Entries[0].Link() != "" {
		first, err := service.backend.Resolve(ctx, list.Entries[0].Link())
		if err != nil {
			log.Printf("[playlist]\tcannot resolve first entry: %s", err)
		} else {
			preview.Thumbnail = first.Thumbnail
		}
	}
	return preview, nil
}
