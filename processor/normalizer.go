package processor

import (
	"context"

	"github.com/streambinder/mediadownloader/entity"
	"github.com/streambinder/mediadownloader/sys/cmd"
)

type Normalizer struct{}

func (Normalizer) Do(ctx context.Context, path string, _ *entity.TagSet) error {
	return cmd.FFmpeg().Normalize(ctx, path)
}
