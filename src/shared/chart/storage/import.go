package chartstorage

import (
	"context"

	"github.com/apex/log"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

var (
	_ Writer = &SQLiteDB{}
	_ Writer = DynamoDB{}
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Writer
type Writer interface {
	PutChart(ctx context.Context, chart chartentity.Chart) error
}

// Import copies every valid chart from one source into another, so a
// converted JSON snapshot can seed the database backed registries
func Import(ctx context.Context, from chartentity.Loader, to Writer) (int, error) {
	charts, err := from.LoadCharts(ctx)
	if err != nil {
		return 0, cerr.Wrap(err).Error("Failed to read charts to import")
	}

	imported := 0
	for _, chart := range charts {
		if err := chart.Validate(); err != nil {
			cerr.Log(cerr.Wrap(err).Error("Skipping chart that can't be registered"))
			continue
		}

		if err := to.PutChart(ctx, chart); err != nil {
			return imported, cerr.Field("song_key", chart.SongKey).
				Wrap(err).Error("Failed to import chart")
		}

		imported++
	}

	log.WithField("imported", imported).Info("Chart import finished")
	return imported, nil
}
