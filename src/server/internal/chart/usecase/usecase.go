package chartusecase

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/errors/markers"
	"github.com/veedubyou/vocal-split/src/server/internal/chart/errors"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/export"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/partition"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

type TimelinePreview struct {
	SongKey     string                 `json:"song_key"`
	Slug        string                 `json:"slug"`
	Player      string                 `json:"player"`
	Opponent    string                 `json:"opponent"`
	DurationMs  float64                `json:"duration_ms"`
	AnchorMode  timeline.AnchorMode    `json:"anchor_mode"`
	Assignments []partition.Assignment `json:"assignments"`
}

type Usecase struct {
	registry   chartentity.Registry
	anchorMode timeline.AnchorMode
}

func NewUsecase(registry chartentity.Registry, anchorMode timeline.AnchorMode) Usecase {
	return Usecase{
		registry:   registry,
		anchorMode: anchorMode,
	}
}

func (u Usecase) HasChart(songKey string) bool {
	_, ok := u.registry.Lookup(songKey)
	return ok
}

// Timeline shows which track each stretch of a song's vocals would go to,
// without touching any audio
func (u Usecase) Timeline(songKey string, durationMs float64) (TimelinePreview, *api.Error) {
	if math.IsNaN(durationMs) || math.IsInf(durationMs, 0) || durationMs <= 0 {
		return TimelinePreview{}, api.CommitError(
			errors.Newf("duration %v is not a positive number of milliseconds", durationMs),
			charterrors.BadDurationCode,
			"The duration must be a positive number of milliseconds")
	}

	chart, err := u.registry.Get(songKey)
	if err != nil {
		if markers.Is(err, chartentity.ChartNotFoundMark) {
			return TimelinePreview{}, api.CommitError(err,
				charterrors.ChartNotFoundCode,
				"No chart is registered for this song")
		}

		return TimelinePreview{}, api.CommitError(err,
			api.DefaultErrorCode,
			"Unknown error: Failed to look up the chart")
	}

	intervals, err := song.Plan(chart, durationMs, u.anchorMode)
	if err != nil {
		if markers.Is(err, spliterrors.InvalidTempoMark) {
			return TimelinePreview{}, api.CommitError(err,
				charterrors.InvalidTempoCode,
				"The chart has a tempo that can't be laid out")
		}

		return TimelinePreview{}, api.CommitError(err,
			api.DefaultErrorCode,
			"Unknown error: Failed to build the timeline")
	}

	return TimelinePreview{
		SongKey:     chart.SongKey,
		Slug:        export.Slug(chart.SongKey),
		Player:      chart.Player,
		Opponent:    chart.Opponent,
		DurationMs:  durationMs,
		AnchorMode:  u.anchorMode,
		Assignments: partition.Assignments(intervals),
	}, nil
}
