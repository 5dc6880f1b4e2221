package audio

import (
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

// BytesPerSample is fixed: buffers always hold signed 16-bit little-endian PCM
const BytesPerSample = 2

type Format struct {
	SampleRate int `json:"sample_rate"`
	Channels   int `json:"channels"`
}

func (f Format) Validate() error {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return cerr.Fields(cerr.F{
			"sample_rate": f.SampleRate,
			"channels":    f.Channels,
		}).Error("Audio format must have a positive sample rate and channel count")
	}

	return nil
}

func (f Format) FrameSize() int {
	return f.Channels * BytesPerSample
}

// FrameAt converts a whole millisecond offset to a frame index, rounding down
func (f Format) FrameAt(ms int64) int64 {
	return ms * int64(f.SampleRate) / 1000
}

// Buffer is a fully decoded, interleaved PCM recording
type Buffer struct {
	Format Format
	PCM    []byte
}

func NewBuffer(format Format, pcm []byte) (Buffer, error) {
	if err := format.Validate(); err != nil {
		return Buffer{}, err
	}

	if len(pcm)%format.FrameSize() != 0 {
		return Buffer{}, cerr.Fields(cerr.F{
			"byte_count": len(pcm),
			"frame_size": format.FrameSize(),
		}).Error("PCM data does not hold a whole number of frames")
	}

	return Buffer{Format: format, PCM: pcm}, nil
}

// Empty returns a zero-length buffer that frames can be appended to
func Empty(format Format, capacityFrames int64) Buffer {
	return Buffer{
		Format: format,
		PCM:    make([]byte, 0, capacityFrames*int64(format.FrameSize())),
	}
}

func (b Buffer) Frames() int64 {
	frameSize := b.Format.FrameSize()
	if frameSize == 0 {
		return 0
	}

	return int64(len(b.PCM) / frameSize)
}

func (b Buffer) DurationMs() float64 {
	if b.Format.SampleRate == 0 {
		return 0
	}

	return float64(b.Frames()) * 1000 / float64(b.Format.SampleRate)
}

// Slice returns frames [start, end) without copying
func (b Buffer) Slice(startFrame int64, endFrame int64) []byte {
	frameSize := int64(b.Format.FrameSize())
	return b.PCM[startFrame*frameSize : endFrame*frameSize]
}

func (b *Buffer) Append(pcm []byte) {
	b.PCM = append(b.PCM, pcm...)
}

func (b *Buffer) AppendSilence(frames int64) {
	silence := make([]byte, frames*int64(b.Format.FrameSize()))
	b.PCM = append(b.PCM, silence...)
}

func (b Buffer) IsSilent(startFrame int64, endFrame int64) bool {
	for _, v := range b.Slice(startFrame, endFrame) {
		if v != 0 {
			return false
		}
	}

	return true
}
