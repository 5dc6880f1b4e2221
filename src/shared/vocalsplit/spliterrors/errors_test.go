package spliterrors_test

import (
	"context"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

var _ = Describe("Classify", func() {
	It("has no kind for a nil error", func() {
		Expect(spliterrors.Classify(nil)).To(BeEmpty())
	})

	It("finds marks through wrapping", func() {
		err := mark.Message(spliterrors.InvalidTempoMark, "BPM must be a positive number")
		err = cerr.Field("song_key", "Bopeebo").Wrap(err).Error("Failed to build timeline")

		Expect(spliterrors.Classify(err)).To(Equal(spliterrors.InvalidTempo))
	})

	It("classifies codec failures", func() {
		err := mark.Message(spliterrors.AudioCodecMark, "ffmpeg exited")
		Expect(spliterrors.Classify(err)).To(Equal(spliterrors.AudioCodec))
	})

	It("prefers timeout over codec when both are marked", func() {
		err := errors.Mark(context.DeadlineExceeded, spliterrors.JobTimeoutMark)
		err = errors.Mark(err, spliterrors.AudioCodecMark)

		Expect(spliterrors.Classify(err)).To(Equal(spliterrors.Timeout))
	})

	It("classifies file failures", func() {
		err := mark.Message(spliterrors.FileOperationMark, "disk full")
		Expect(spliterrors.Classify(err)).To(Equal(spliterrors.FileOperation))
	})

	It("falls back to unknown", func() {
		Expect(spliterrors.Classify(errors.New("something else"))).To(Equal(spliterrors.Unknown))
	})
})
