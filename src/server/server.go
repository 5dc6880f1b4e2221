package main

import (
	"strings"

	"github.com/veedubyou/vocal-split/src/server/application"
	"github.com/veedubyou/vocal-split/src/shared/config/dev"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/config/registry"
	"github.com/veedubyou/vocal-split/src/shared/lib/env"
	"github.com/veedubyou/vocal-split/src/shared/lib/logging"
)

func main() {
	environment := env.Get()
	logging.Setup(environment)

	var appConfig application.Config

	switch environment {
	case env.Production:
		commaSeparatedOrigins := envvar.MustGet(envvar.ALLOWED_FE_ORIGINS)
		allowedOrigins := strings.Split(commaSeparatedOrigins, ",")

		appConfig = application.Config{
			ChartSource:        registry.ChartSourceFromEnv(),
			RabbitMQURL:        envvar.MustGet(envvar.RABBITMQ_URL),
			RabbitMQQueueName:  envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME),
			CORSAllowedOrigins: allowedOrigins,
			CorrectedAnchors:   envvar.GetBool(envvar.VOCAL_SPLIT_CORRECTED_ANCHORS, false),
			Port:               envvar.GetOr(envvar.SERVER_PORT, ":5000"),
			Log:                true,
		}
	case env.Development:
		appConfig = application.Config{
			ChartSource:        registry.ChartSourceFromEnv(),
			RabbitMQURL:        dev.RabbitMQHost,
			RabbitMQQueueName:  dev.RabbitMQQueueName,
			CORSAllowedOrigins: []string{"*"},
			CorrectedAnchors:   envvar.GetBool(envvar.VOCAL_SPLIT_CORRECTED_ANCHORS, false),
			Port:               envvar.GetOr(envvar.SERVER_PORT, dev.ServerPort),
			Log:                true,
		}

	default:
		panic("Unexpected environment")
	}

	app := application.NewApp(appConfig)
	if err := app.Start(); err != nil {
		panic(err)
	}
}
