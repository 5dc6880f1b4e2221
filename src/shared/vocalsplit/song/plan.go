package song

import (
	"github.com/veedubyou/vocal-split/src/shared/audio"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/boundary"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/partition"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

// Plan lays the chart's sections over audio of the given length
func Plan(chart chartentity.Chart, durationMs float64, mode timeline.AnchorMode) ([]boundary.Interval, error) {
	markers, err := timeline.Build(chart.Sections, chart.StartingBPM, mode)
	if err != nil {
		return nil, cerr.Field("song_key", chart.SongKey).
			Wrap(err).Error("Failed to build the section timeline")
	}

	return boundary.Sequence(markers, durationMs), nil
}

func SplitAudio(chart chartentity.Chart, mixed audio.Buffer, mode timeline.AnchorMode) (partition.Tracks, error) {
	intervals, err := Plan(chart, mixed.DurationMs(), mode)
	if err != nil {
		return partition.Tracks{}, err
	}

	tracks, err := partition.Partition(mixed, intervals)
	if err != nil {
		return partition.Tracks{}, cerr.Field("song_key", chart.SongKey).
			Wrap(err).Error("Failed to partition the vocals")
	}

	return tracks, nil
}
