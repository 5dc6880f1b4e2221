package spliterrors

import (
	"github.com/cockroachdb/errors"
)

var (
	InvalidTempoMark  = errors.New("invalid_tempo")
	AudioCodecMark    = errors.New("audio_codec_error")
	JobTimeoutMark    = errors.New("job_timeout")
	FileOperationMark = errors.New("file_operation_failed")
)

type FailureKind string

const (
	InvalidTempo  FailureKind = "invalid_tempo"
	AudioCodec    FailureKind = "audio_codec"
	Timeout       FailureKind = "timeout"
	FileOperation FailureKind = "io"
	Unknown       FailureKind = "unknown"
)

// Classify maps an error onto the failure taxonomy reported per song
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, InvalidTempoMark):
		return InvalidTempo
	case errors.Is(err, JobTimeoutMark):
		return Timeout
	case errors.Is(err, AudioCodecMark):
		return AudioCodec
	case errors.Is(err, FileOperationMark):
		return FileOperation
	default:
		return Unknown
	}
}
