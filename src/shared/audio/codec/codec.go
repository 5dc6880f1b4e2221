package codec

import (
	"context"

	"github.com/veedubyou/vocal-split/src/shared/audio"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Codec
type Codec interface {
	Decode(ctx context.Context, sourcePath string) (audio.Buffer, error)
	Encode(ctx context.Context, buffer audio.Buffer, destPath string) error
}
