package config

// ChartSource selects where the chart registry snapshot is loaded from
type ChartSource interface {
	ChartSource()
}

var _ ChartSource = FileChartSource{}

type FileChartSource struct {
	Path string
}

func (f FileChartSource) ChartSource() {}

var _ ChartSource = SQLiteChartSource{}

type SQLiteChartSource struct {
	Path string
}

func (s SQLiteChartSource) ChartSource() {}

var _ ChartSource = DynamoChartSource{}

type DynamoChartSource struct {
	Dynamo    Dynamo
	TableName string
}

func (d DynamoChartSource) ChartSource() {}
