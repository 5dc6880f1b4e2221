package timeline

import (
	"math"

	"github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

const stepsPerBeat = 4

type AnchorMode string

const (
	// LegacyAnchor carries the step count over as a raw millisecond offset when the
	// tempo changes. Charts rendered elsewhere depend on this exact timing.
	LegacyAnchor AnchorMode = "legacy"
	// CorrectedAnchor accumulates real elapsed milliseconds across tempo changes.
	// Switching to it moves every section after the first tempo change.
	CorrectedAnchor AnchorMode = "corrected"
)

type Marker struct {
	StartMs float64 `json:"start_ms"`
	MustHit bool    `json:"must_hit"`
	IsDuet  bool    `json:"is_duet"`
}

// Build emits one marker per section, in section order.
// The markers are not guaranteed to be chronological.
func Build(sections []chartentity.Section, startingBPM float64, mode AnchorMode) ([]Marker, error) {
	stepLengthMs, err := stepLength(startingBPM)
	if err != nil {
		return nil, cerr.Wrap(err).Error("Starting BPM is unusable")
	}

	var (
		stepsSinceAnchor = 0
		anchor           = 0.0
		markers          = make([]Marker, 0, len(sections))
	)

	for i, section := range sections {
		if section.ChangesBPM() {
			errctx := cerr.Field("section_index", i)

			bpm, ok := section.BPM()
			if !ok {
				err := mark.Message(spliterrors.InvalidTempoMark, "Section changes BPM without providing one")
				return nil, errctx.Wrap(err).Error("Failed to build timeline")
			}

			newStepLengthMs, err := stepLength(bpm)
			if err != nil {
				return nil, errctx.Wrap(err).Error("Failed to build timeline")
			}

			switch mode {
			case CorrectedAnchor:
				anchor += float64(stepsSinceAnchor) * stepLengthMs
			default:
				anchor = float64(stepsSinceAnchor)
			}

			stepLengthMs = newStepLengthMs
			stepsSinceAnchor = 0
		}

		markers = append(markers, Marker{
			StartMs: anchor + float64(stepsSinceAnchor)*stepLengthMs,
			MustHit: section.MustHit(),
			IsDuet:  section.IsDuet(),
		})

		stepsSinceAnchor += section.LengthInSteps()
	}

	return markers, nil
}

func stepLength(bpm float64) (float64, error) {
	if math.IsNaN(bpm) || math.IsInf(bpm, 0) || bpm <= 0 {
		err := mark.Message(spliterrors.InvalidTempoMark, "BPM must be a positive number")
		return 0, cerr.Field("bpm", bpm).Wrap(err).Error("Cannot derive a step length")
	}

	beatLengthMs := 60000 / bpm
	return beatLengthMs / stepsPerBeat, nil
}

func ParseAnchorMode(corrected bool) AnchorMode {
	if corrected {
		return CorrectedAnchor
	}

	return LegacyAnchor
}
