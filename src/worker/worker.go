package main

import (
	"context"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/config/dev"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/config/local"
	"github.com/veedubyou/vocal-split/src/shared/config/prod"
	"github.com/veedubyou/vocal-split/src/shared/config/registry"
	"github.com/veedubyou/vocal-split/src/shared/lib/env"
	"github.com/veedubyou/vocal-split/src/shared/lib/logging"
	"github.com/veedubyou/vocal-split/src/worker/application"
)

const defaultJobTimeout = 10 * time.Minute

func main() {
	environment := env.Get()
	logging.Setup(environment)

	appConfig := application.Config{
		ChartSource:      registry.ChartSourceFromEnv(),
		FFmpegBinPath:    config.FFmpegPath(),
		FFprobeBinPath:   config.FFprobePath(),
		SplitEnabled:     envvar.GetBool(envvar.VOCAL_SPLIT_ENABLED, true),
		CorrectedAnchors: envvar.GetBool(envvar.VOCAL_SPLIT_CORRECTED_ANCHORS, false),
		JobTimeout:       envvar.GetDuration(envvar.VOCAL_SPLIT_JOB_TIMEOUT, defaultJobTimeout),
	}

	switch environment {
	case env.Production:
		appConfig.CloudStorageConfig = config.ProdCloudStorage{
			StorageHost: prod.GOOGLE_STORAGE_HOST,
			SecretKey:   envvar.MustGet(envvar.GOOGLE_CLOUD_KEY),
			BucketName:  envvar.MustGet(envvar.GOOGLE_CLOUD_STORAGE_BUCKET_NAME),
		}
		appConfig.RabbitMQURL = envvar.MustGet(envvar.RABBITMQ_URL)
		appConfig.RabbitMQQueueName = envvar.MustGet(envvar.RABBITMQ_QUEUE_NAME)
		appConfig.WorkingDirPath = envvar.MustGet(envvar.VOCAL_SPLIT_WORKING_DIR_PATH)

	case env.Development:
		appConfig.CloudStorageConfig = dev.CloudStorageConfig
		appConfig.RabbitMQURL = dev.RabbitMQHost
		appConfig.RabbitMQQueueName = dev.RabbitMQQueueName
		appConfig.WorkingDirPath = path.Join(local.WorkingDir(), "worker")

	default:
		panic("Unexpected environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := application.NewApp(appConfig)
	go func() {
		<-ctx.Done()
		app.Stop()
	}()

	if err := app.Start(ctx); err != nil {
		panic(err)
	}
}
