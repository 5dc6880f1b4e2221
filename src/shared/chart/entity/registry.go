package chartentity

import (
	"context"
	"sort"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
)

var ChartNotFoundMark = errors.New("chart_not_found")

// Registry is a read-only snapshot of charts keyed by song key.
// It is built once before any split runs and never mutated afterwards,
// so it can be shared by value without locking.
type Registry struct {
	charts map[string]Chart
}

// NewRegistry indexes charts by song key. When a key repeats, the later chart wins.
func NewRegistry(charts []Chart) Registry {
	indexed := make(map[string]Chart, len(charts))
	for _, chart := range charts {
		indexed[chart.SongKey] = chart.clone()
	}

	return Registry{charts: indexed}
}

func LoadRegistry(ctx context.Context, loader Loader) (Registry, error) {
	charts, err := loader.LoadCharts(ctx)
	if err != nil {
		return Registry{}, cerr.Wrap(err).Error("Failed to load charts for the registry")
	}

	valid := make([]Chart, 0, len(charts))
	for _, chart := range charts {
		if err := chart.Validate(); err != nil {
			cerr.Log(cerr.Wrap(err).Error("Could not create a registry entry for a chart"))
			continue
		}

		valid = append(valid, chart)
	}

	registry := NewRegistry(valid)
	log.WithField("chart_count", registry.Len()).Info("Chart registry loaded")

	return registry, nil
}

func (r Registry) Lookup(songKey string) (Chart, bool) {
	chart, ok := r.charts[songKey]
	if !ok {
		return Chart{}, false
	}

	return chart.clone(), true
}

func (r Registry) Get(songKey string) (Chart, error) {
	chart, ok := r.Lookup(songKey)
	if !ok {
		err := mark.Message(ChartNotFoundMark, "No chart registered for song")
		return Chart{}, cerr.Field("song_key", songKey).Wrap(err).Error("Failed to look up chart")
	}

	return chart, nil
}

func (r Registry) Len() int {
	return len(r.charts)
}

func (r Registry) SongKeys() []string {
	keys := make([]string, 0, len(r.charts))
	for key := range r.charts {
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys
}
