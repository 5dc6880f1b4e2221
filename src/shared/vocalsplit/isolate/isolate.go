package isolate

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

type outcome[T any] struct {
	value T
	err   error
}

// Future is the pending result of a single job running on its own goroutine
type Future[T any] struct {
	done <-chan outcome[T]
}

// Go starts fn on a new goroutine. A panic inside fn is recovered and surfaces
// as an audio codec error from Await instead of taking the caller down.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) Future[T] {
	done := make(chan outcome[T], 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				err := mark.Message(spliterrors.AudioCodecMark, fmt.Sprintf("Job panicked: %v", r))
				done <- outcome[T]{err: err}
			}
		}()

		value, err := fn(ctx)
		done <- outcome[T]{value: value, err: err}
	}()

	return Future[T]{done: done}
}

func (f Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case result := <-f.done:
		return result.value, result.err

	case <-ctx.Done():
		var zero T
		err := errors.Mark(ctx.Err(), spliterrors.JobTimeoutMark)
		err = errors.Mark(err, spliterrors.AudioCodecMark)
		return zero, cerr.Wrap(err).Error("Gave up waiting for the job")
	}
}

// Run executes fn on a single worker and blocks until it finishes or timeout passes.
// A timeout of zero waits indefinitely. Cancelling the context on expiry stops any
// subprocess the job started through it.
func Run[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return Go(ctx, fn).Await(ctx)
}
