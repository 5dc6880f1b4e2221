package chartstorage

import (
	"context"

	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/dynamo"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/lib/jsonlib"
)

const (
	ChartsTable = "Charts"
	songKeyKey  = "song_key"
)

var _ chartentity.Loader = DynamoDB{}

type DynamoDB struct {
	dynamoDB  dynamolib.DynamoDBWrapper
	tableName string
}

func NewDynamoDB(dynamoDB dynamolib.DynamoDBWrapper, tableName string) DynamoDB {
	if tableName == "" {
		tableName = ChartsTable
	}

	return DynamoDB{
		dynamoDB:  dynamoDB,
		tableName: tableName,
	}
}

func (d DynamoDB) LoadCharts(ctx context.Context) ([]chartentity.Chart, error) {
	items := []dbChart{}
	err := d.dynamoDB.Table(d.tableName).Scan().AllWithContext(ctx, &items)
	if err != nil {
		return nil, cerr.Field("table", d.tableName).
			Wrap(mark.Wrap(err, ReadMark, "Failed to scan chart table")).
			Error("Failed to load charts")
	}

	charts := make([]chartentity.Chart, 0, len(items))
	for _, item := range items {
		chart, err := jsonlib.MapToStruct[chartentity.Chart](item)
		if err != nil {
			return nil, cerr.Field("song_key", item[songKeyKey]).
				Wrap(mark.Wrap(err, UnmarshalMark, "Failed to transform DB map to chart")).
				Error("Failed to load charts")
		}

		charts = append(charts, chart)
	}

	return charts, nil
}

func (d DynamoDB) PutChart(ctx context.Context, chart chartentity.Chart) error {
	if chart.SongKey == "" {
		return mark.Message(MarshalMark, "Chart has no song key")
	}

	dbObject, err := jsonlib.StructToMap(chart)
	if err != nil {
		return mark.Wrap(err, MarshalMark, "Failed to transform chart to a generic map object")
	}

	err = d.dynamoDB.Table(d.tableName).Put(dbObject).RunWithContext(ctx)
	if err != nil {
		return cerr.Field("song_key", chart.SongKey).
			Wrap(mark.Wrap(err, DefaultErrorMark, "Failed to put the chart in the DB")).
			Error("Failed to put chart")
	}

	return nil
}

var _ dynamo.ItemUnmarshaler = &dbChart{}

type dbChart map[string]any

func (d *dbChart) UnmarshalDynamoItem(dynamoItem map[string]*dynamodb.AttributeValue) error {
	if err := dynamolib.ValidateStringField(dynamoItem, songKeyKey); err != nil {
		return mark.Wrap(err, UnmarshalMark, "Failed to validate song key field")
	}

	plainMap := map[string]any{}
	if err := dynamo.UnmarshalItem(dynamoItem, &plainMap); err != nil {
		return mark.Wrap(err, UnmarshalMark, "Failed to unmarshal dynamo item")
	}

	*d = plainMap

	return nil
}
