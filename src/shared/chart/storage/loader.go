package chartstorage

import (
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/dynamo"
)

type closeFunc func() error

func noopClose() error { return nil }

// NewLoader returns the loader for a configured chart source, along with
// a function that releases whatever the loader holds open
func NewLoader(source config.ChartSource) (chartentity.Loader, closeFunc, error) {
	switch source := source.(type) {
	case config.FileChartSource:
		return NewFileLoader(source.Path), noopClose, nil

	case config.SQLiteChartSource:
		db, err := OpenSQLite(source.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil

	case config.DynamoChartSource:
		dynamoDB, err := dynamolib.NewDynamoDB(source.Dynamo)
		if err != nil {
			return nil, nil, cerr.Wrap(err).Error("Failed to connect to the chart table")
		}
		return NewDynamoDB(dynamoDB, source.TableName), noopClose, nil

	default:
		return nil, nil, cerr.Field("source", source).Error("Unknown chart source")
	}
}
