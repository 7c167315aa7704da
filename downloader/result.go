package downloader

import "errors"

var (
	ErrCancelled        = errors.New("cancelled by user")
	ErrEmptyReference   = errors.New("empty reference")
	ErrInvalidReference = errors.New("reference is not an http(s) url")
	ErrInvalidQuality   = errors.New("quality must be \"best\" or a positive height")
)

type Outcome int

const (
	Succeeded Outcome = iota
	Cancelled
	Failed
)

func (outcome Outcome) String() string {
	switch outcome {
	case Succeeded:
		return "succeeded"
	case Cancelled:
		return "cancelled"
	default:
		return "failed"
	}
}

// Result tells how a download call ended. Paths lists the files
// produced, even when the call as a whole failed.
type Result struct {
	Outcome   Outcome
	Err       error
	Paths     []string
	Completed int
	Total     int
}

func (result Result) OK() bool {
	return result.Outcome == Succeeded
}

func (result Result) Error() string {
	if result.Err == nil {
		return ""
	}
	return result.Err.Error()
}

func failed(err error) Result {
	return Result{Outcome: Failed, Err: err}
}
