package main

import (
	"context"
	"flag"
	"os"

	"github.com/apex/log"
	chartstorage "github.com/veedubyou/vocal-split/src/shared/chart/storage"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/config/dev"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/config/prod"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/dynamo"
	"github.com/veedubyou/vocal-split/src/shared/lib/env"
	"github.com/veedubyou/vocal-split/src/shared/lib/logging"
)

// seeds a chart registry database from a converted JSON snapshot:
// chartimport -from charts.json (-sqlite charts.db | -table Charts)
func main() {
	fromPath := flag.String("from", "", "JSON chart snapshot to import")
	sqlitePath := flag.String("sqlite", "", "SQLite database to import into")
	tableName := flag.String("table", "", "DynamoDB table to import into")
	flag.Parse()

	if *fromPath == "" || (*sqlitePath == "") == (*tableName == "") {
		flag.Usage()
		os.Exit(2)
	}

	environment := env.Get()
	logging.Setup(environment)

	writer, closeWriter := makeWriter(environment, *sqlitePath, *tableName)
	defer closeWriter()

	imported, err := chartstorage.Import(context.Background(), chartstorage.NewFileLoader(*fromPath), writer)
	if err != nil {
		cerr.Log(err)
		os.Exit(1)
	}

	log.WithFields(log.Fields{
		"from":     *fromPath,
		"imported": imported,
	}).Info("Charts imported")
}

func makeWriter(environment env.Environment, sqlitePath string, tableName string) (chartstorage.Writer, func()) {
	if sqlitePath != "" {
		db, err := chartstorage.OpenSQLite(sqlitePath)
		if err != nil {
			panic(err)
		}

		return db, func() { _ = db.Close() }
	}

	var dynamoConfig config.Dynamo
	switch environment {
	case env.Production:
		dynamoConfig = config.ProdDynamo{
			AccessKeyID:     envvar.MustGet(envvar.AWS_ACCESS_KEY_ID),
			SecretAccessKey: envvar.MustGet(envvar.AWS_SECRET_ACCESS_KEY),
			Region:          envvar.GetOr(envvar.AWS_REGION, prod.DynamoDBRegion),
		}
	case env.Development:
		dynamoConfig = dev.DynamoConfig
	default:
		panic("Unexpected environment")
	}

	dynamoDB, err := dynamolib.NewDynamoDB(dynamoConfig)
	if err != nil {
		panic(err)
	}

	return chartstorage.NewDynamoDB(dynamoDB, tableName), func() {}
}
