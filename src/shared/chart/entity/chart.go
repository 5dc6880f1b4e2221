package chartentity

import (
	"context"
	"math"

	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

type Chart struct {
	SongKey     string    `json:"song_key"`
	Sections    []Section `json:"sections"`
	StartingBPM float64   `json:"starting_bpm"`
	Player      string    `json:"player"`
	Opponent    string    `json:"opponent"`
}

func (c Chart) Validate() error {
	errctx := cerr.Field("song_key", c.SongKey)

	if c.SongKey == "" {
		return errctx.Error("Chart has no song key")
	}

	if c.Player == "" || c.Opponent == "" {
		return errctx.Fields(cerr.F{
			"player":   c.Player,
			"opponent": c.Opponent,
		}).Error("Chart is missing a participant name")
	}

	if math.IsNaN(c.StartingBPM) || math.IsInf(c.StartingBPM, 0) || c.StartingBPM <= 0 {
		return errctx.Field("starting_bpm", c.StartingBPM).
			Error("Chart has no usable starting BPM")
	}

	return nil
}

func (c Chart) clone() Chart {
	sections := make([]Section, len(c.Sections))
	copy(sections, c.Sections)
	c.Sections = sections
	return c
}

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Loader
type Loader interface {
	LoadCharts(ctx context.Context) ([]Chart, error)
}
