package dummy

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/vocal-split/src/shared/audio"
	"github.com/veedubyou/vocal-split/src/shared/audio/codec"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

var (
	DecodeFailure = errors.Mark(errors.New("dummy decode failure"), spliterrors.AudioCodecMark)
	EncodeFailure = errors.Mark(errors.New("dummy encode failure"), spliterrors.AudioCodecMark)
)

var _ codec.Codec = &Codec{}

// Codec treats every audio file as raw PCM in Format, so tests can write
// sample data straight into Voices.ogg and read the outputs back
type Codec struct {
	Format audio.Format

	Unavailable   bool
	PanicOnDecode bool
	DecodeDelay   time.Duration
	FailEncodeFor map[string]bool

	mutex   sync.Mutex
	Decoded []string
	Encoded map[string]audio.Buffer
}

func NewDummyCodec(format audio.Format) *Codec {
	return &Codec{
		Format:        format,
		FailEncodeFor: map[string]bool{},
		Encoded:       map[string]audio.Buffer{},
	}
}

func (c *Codec) Decode(ctx context.Context, path string) (audio.Buffer, error) {
	if c.PanicOnDecode {
		panic("dummy codec panicked")
	}

	if c.Unavailable {
		return audio.Buffer{}, DecodeFailure
	}

	// ignores cancellation while stalled, like a codec stuck in a native call
	if c.DecodeDelay > 0 {
		time.Sleep(c.DecodeDelay)
		if err := ctx.Err(); err != nil {
			return audio.Buffer{}, err
		}
	}

	pcm, err := os.ReadFile(path)
	if err != nil {
		return audio.Buffer{}, errors.Mark(err, spliterrors.AudioCodecMark)
	}

	c.mutex.Lock()
	c.Decoded = append(c.Decoded, path)
	c.mutex.Unlock()

	return audio.NewBuffer(c.Format, pcm)
}

func (c *Codec) Encode(ctx context.Context, buffer audio.Buffer, destPath string) error {
	if c.FailEncodeFor[filepath.Base(destPath)] {
		return EncodeFailure
	}

	if err := os.WriteFile(destPath, buffer.PCM, 0644); err != nil {
		return errors.Mark(err, spliterrors.AudioCodecMark)
	}

	c.mutex.Lock()
	c.Encoded[destPath] = buffer
	c.mutex.Unlock()

	return nil
}
