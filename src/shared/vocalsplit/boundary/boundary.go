package boundary

import (
	"sort"

	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

// ClampToleranceMs snaps a marker this close to the end of the audio onto the end.
// Float drift in the tempo arithmetic would otherwise leave a sub-millisecond sliver.
const ClampToleranceMs = 1.0

type Interval struct {
	StartMs float64 `json:"start_ms"`
	EndMs   float64 `json:"end_ms"`
	MustHit bool    `json:"must_hit"`
	IsDuet  bool    `json:"is_duet"`
}

func (i Interval) DurationMs() float64 {
	return i.EndMs - i.StartMs
}

// Sequence turns markers into contiguous intervals covering [0, totalDurationMs).
func Sequence(markers []timeline.Marker, totalDurationMs float64) []Interval {
	if totalDurationMs <= 0 {
		return []Interval{}
	}

	sorted := make([]timeline.Marker, len(markers))
	copy(sorted, markers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMs < sorted[j].StartMs
	})

	for i := range sorted {
		sorted[i].StartMs = clamp(sorted[i].StartMs, totalDurationMs)
	}

	// audio before the first marker has no owner and goes to the secondary track
	if len(sorted) == 0 || sorted[0].StartMs > 0 {
		sorted = append([]timeline.Marker{{StartMs: 0}}, sorted...)
	}

	sorted = append(sorted, timeline.Marker{
		StartMs: totalDurationMs,
		MustHit: false,
		IsDuet:  false,
	})

	intervals := make([]Interval, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		current, next := sorted[i], sorted[i+1]
		if current.StartMs >= next.StartMs {
			continue
		}

		intervals = append(intervals, Interval{
			StartMs: current.StartMs,
			EndMs:   next.StartMs,
			MustHit: current.MustHit,
			IsDuet:  current.IsDuet,
		})
	}

	return intervals
}

func clamp(startMs float64, totalDurationMs float64) float64 {
	switch {
	case startMs < 0:
		return 0
	case startMs > totalDurationMs-ClampToleranceMs:
		return totalDurationMs
	default:
		return startMs
	}
}
