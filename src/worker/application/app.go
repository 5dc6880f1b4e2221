package application

import (
	"context"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/shared/audio/codec"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	chartstorage "github.com/veedubyou/vocal-split/src/shared/chart/storage"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/executor"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/rabbitmq"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
	filestore "github.com/veedubyou/vocal-split/src/worker/internal/application/cloud_storage/store"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/jobs/job_router"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/jobs/split_song"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/worker"
	"github.com/veedubyou/vocal-split/src/worker/internal/lib/storagepath"
)

func must[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}

	return t
}

// ResultQueueName is where split_song_result messages for a job queue go
func ResultQueueName(jobQueueName string) string {
	return jobQueueName + "-results"
}

type App struct {
	worker    *worker.QueueWorker
	publisher *rabbitmq.QueuePublisher
}

type Config struct {
	RabbitMQURL        string
	RabbitMQQueueName  string
	CloudStorageConfig config.CloudStorage
	ChartSource        config.ChartSource

	FFmpegBinPath  string
	FFprobeBinPath string
	WorkingDirPath string

	SplitEnabled     bool
	CorrectedAnchors bool
	JobTimeout       time.Duration
}

func NewApp(config Config) App {
	consumerConn := must(amqp091.Dial(config.RabbitMQURL))
	publisher := must(rabbitmq.NewQueuePublisher(config.RabbitMQURL, ResultQueueName(config.RabbitMQQueueName)))

	queueWorker := must(worker.NewQueueWorkerFromConnection(
		consumerConn,
		config.RabbitMQQueueName,
		newJobRouter(config, publisher)))

	return App{
		worker:    queueWorker,
		publisher: publisher,
	}
}

func (a *App) Start(ctx context.Context) error {
	err := a.worker.Start(ctx)
	if err != nil {
		return cerr.Wrap(err).Error("Failed to start worker")
	}

	return nil
}

func (a *App) Stop() {
	a.worker.Stop()
	_ = a.publisher.Close()
}

func newJobRouter(config Config, publisher rabbitmq.Publisher) job_router.JobRouter {
	return job_router.NewJobRouter(publisher, newSplitSongJobHandler(config))
}

func newSplitSongJobHandler(config Config) split_song.JobHandler {
	pathGenerator := storagepath.Generator{
		Host:   config.CloudStorageConfig.GetStorageHost(),
		Bucket: config.CloudStorageConfig.GetBucket(),
	}

	fileStore := must(filestore.NewGoogleFileStore(
		config.CloudStorageConfig.GetStorageHost(),
		config.CloudStorageConfig.ClientOptions()...,
	))

	return must(split_song.NewJobHandler(
		newSplitter(config),
		fileStore,
		pathGenerator,
		config.WorkingDirPath,
	))
}

func newSplitter(config Config) song.Splitter {
	ffmpegCodec := must(codec.NewFFmpegCodec(
		config.WorkingDirPath,
		config.FFmpegBinPath,
		config.FFprobeBinPath,
		executor.BinaryFileExecutor{},
	))

	return song.NewSplitter(newRegistry(config.ChartSource), ffmpegCodec, song.Config{
		Enabled:    config.SplitEnabled,
		AnchorMode: timeline.ParseAnchorMode(config.CorrectedAnchors),
		Timeout:    config.JobTimeout,
	})
}

func newRegistry(chartSource config.ChartSource) chartentity.Registry {
	loader, closeLoader, err := chartstorage.NewLoader(chartSource)
	if err != nil {
		panic(err)
	}

	defer closeLoader()

	return must(chartentity.LoadRegistry(context.Background(), loader))
}
