package processor

import (
	"context"

	"github.com/streambinder/mediadownloader/entity"
)

// Processor is a step applied to an audio file once it lands on disk
type Processor interface {
	Do(context.Context, string, *entity.TagSet) error
}
