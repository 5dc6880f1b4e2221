package registry

import (
	"path"

	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/config/dev"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/config/local"
	"github.com/veedubyou/vocal-split/src/shared/config/prod"
	"github.com/veedubyou/vocal-split/src/shared/lib/env"
)

// ChartSourceFromEnv picks the chart registry source, checking the JSON
// file first, then SQLite, then DynamoDB
func ChartSourceFromEnv() config.ChartSource {
	if filePath := envvar.GetOr(envvar.CHART_REGISTRY_PATH, ""); filePath != "" {
		return config.FileChartSource{Path: filePath}
	}

	if sqlitePath := envvar.GetOr(envvar.CHART_REGISTRY_SQLITE_PATH, ""); sqlitePath != "" {
		return config.SQLiteChartSource{Path: sqlitePath}
	}

	switch env.Get() {
	case env.Production:
		return config.DynamoChartSource{
			Dynamo: config.ProdDynamo{
				AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
				SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
				Region:          envvar.GetOr(envvar.AWS_REGION, prod.DynamoDBRegion),
			},
			TableName: envvar.GetOr(envvar.CHART_REGISTRY_DYNAMO_TABLE, prod.ChartsTableName),
		}

	case env.Development:
		if table := envvar.GetOr(envvar.CHART_REGISTRY_DYNAMO_TABLE, ""); table != "" {
			return config.DynamoChartSource{
				Dynamo:    dev.DynamoConfig,
				TableName: table,
			}
		}

		return config.FileChartSource{Path: path.Join(local.ProjectRoot(), dev.ChartRegistryFile)}

	default:
		panic("Unexpected environment")
	}
}
