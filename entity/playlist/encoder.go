package playlist

import (
	"github.com/streambinder/mediadownloader/entity"
)

type Encoder interface {
	init(dir, name string) error
	Add(*entity.Media) error
	Target() string
	Close() error
}
