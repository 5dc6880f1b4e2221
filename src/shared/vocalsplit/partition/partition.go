package partition

import (
	"github.com/veedubyou/vocal-split/src/shared/audio"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/boundary"
)

type Owner string

const (
	Primary   Owner = "primary"
	Secondary Owner = "secondary"
)

// OwnerOf decides which track an interval's audio belongs to.
// A duet always goes to the secondary track, whoever the section focuses on.
func OwnerOf(interval boundary.Interval) Owner {
	if interval.IsDuet || !interval.MustHit {
		return Secondary
	}

	return Primary
}

type Assignment struct {
	boundary.Interval
	Owner Owner `json:"owner"`
}

func Assignments(intervals []boundary.Interval) []Assignment {
	assignments := make([]Assignment, 0, len(intervals))
	for _, interval := range intervals {
		assignments = append(assignments, Assignment{
			Interval: interval,
			Owner:    OwnerOf(interval),
		})
	}

	return assignments
}

type Tracks struct {
	Primary   audio.Buffer
	Secondary audio.Buffer
}

// Partition copies each interval's audio into its owner's track and pads the other
// track with the same number of silent frames. Both tracks come out exactly as long
// as the source.
func Partition(source audio.Buffer, intervals []boundary.Interval) (Tracks, error) {
	if err := source.Format.Validate(); err != nil {
		return Tracks{}, cerr.Wrap(err).Error("Cannot partition audio with an invalid format")
	}

	totalFrames := source.Frames()
	primary := audio.Empty(source.Format, totalFrames)
	secondary := audio.Empty(source.Format, totalFrames)

	cursor := int64(0)
	for i, interval := range intervals {
		endFrame := frameBoundary(source, interval.EndMs)
		if i == len(intervals)-1 {
			endFrame = totalFrames
		}

		if endFrame <= cursor {
			continue
		}

		chunk := source.Slice(cursor, endFrame)
		frames := endFrame - cursor

		switch OwnerOf(interval) {
		case Primary:
			primary.Append(chunk)
			secondary.AppendSilence(frames)
		case Secondary:
			secondary.Append(chunk)
			primary.AppendSilence(frames)
		}

		cursor = endFrame
	}

	// no intervals at all: nothing owns the audio, same as a trailing gap
	if cursor < totalFrames {
		secondary.Append(source.Slice(cursor, totalFrames))
		primary.AppendSilence(totalFrames - cursor)
	}

	if primary.Frames() != totalFrames || secondary.Frames() != totalFrames {
		return Tracks{}, cerr.Fields(cerr.F{
			"source_frames":    totalFrames,
			"primary_frames":   primary.Frames(),
			"secondary_frames": secondary.Frames(),
		}).Error("Partitioned tracks do not match the source length")
	}

	return Tracks{
		Primary:   primary,
		Secondary: secondary,
	}, nil
}

// frameBoundary truncates to a whole millisecond before converting,
// the same granularity the charts are authored against
func frameBoundary(source audio.Buffer, ms float64) int64 {
	if ms <= 0 {
		return 0
	}

	frame := source.Format.FrameAt(int64(ms))
	if frame > source.Frames() {
		return source.Frames()
	}

	return frame
}
