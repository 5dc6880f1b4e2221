package testing

import (
	"encoding/binary"

	"github.com/veedubyou/vocal-split/src/shared/audio"
)

// TestFormat keeps frame math easy: one frame per millisecond
var TestFormat = audio.Format{SampleRate: 1000, Channels: 2}

// RampBuffer fills every sample with a nonzero value that differs from its
// neighbours, so a misplaced or dropped frame shows up in comparisons
func RampBuffer(format audio.Format, frames int64) audio.Buffer {
	samples := frames * int64(format.Channels)
	pcm := make([]byte, samples*audio.BytesPerSample)

	for i := int64(0); i < samples; i++ {
		value := int16(i%32000) + 1
		binary.LittleEndian.PutUint16(pcm[i*audio.BytesPerSample:], uint16(value))
	}

	return audio.Buffer{Format: format, PCM: pcm}
}
