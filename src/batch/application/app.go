package application

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/batch/internal/driver"
	"github.com/veedubyou/vocal-split/src/shared/audio/codec"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	chartstorage "github.com/veedubyou/vocal-split/src/shared/chart/storage"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/executor"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

type Config struct {
	ChartSource config.ChartSource

	FFmpegBinPath  string
	FFprobeBinPath string
	WorkingDirPath string

	SongsDir         string
	OutputDir        string
	ReportPath       string
	CopyInstrumental bool

	SplitEnabled     bool
	CorrectedAnchors bool
	JobTimeout       time.Duration
}

type App struct {
	config Config
}

func NewApp(config Config) App {
	return App{config: config}
}

func (a App) Run(ctx context.Context) (driver.Report, error) {
	registry, err := a.loadRegistry(ctx)
	if err != nil {
		return driver.Report{}, err
	}

	ffmpegCodec, err := codec.NewFFmpegCodec(
		a.config.WorkingDirPath,
		a.config.FFmpegBinPath,
		a.config.FFprobeBinPath,
		executor.BinaryFileExecutor{},
	)
	if err != nil {
		return driver.Report{}, cerr.Wrap(err).Error("Failed to create the audio codec")
	}

	splitter := song.NewSplitter(registry, ffmpegCodec, song.Config{
		Enabled:    a.config.SplitEnabled,
		AnchorMode: timeline.ParseAnchorMode(a.config.CorrectedAnchors),
		Timeout:    a.config.JobTimeout,
	})

	batchDriver := driver.NewDriver(splitter, driver.Options{
		SongsDir:         a.config.SongsDir,
		OutputRoot:       a.config.OutputDir,
		CopyInstrumental: a.config.CopyInstrumental,
	})

	report, err := batchDriver.Run(ctx)
	if err != nil {
		return report, cerr.Wrap(err).Error("Vocal split batch did not complete")
	}

	if a.config.ReportPath != "" {
		if err := report.WriteFile(a.config.ReportPath); err != nil {
			return report, err
		}

		log.WithField("path", a.config.ReportPath).Info("Wrote batch report")
	}

	return report, nil
}

func (a App) loadRegistry(ctx context.Context) (chartentity.Registry, error) {
	loader, closeLoader, err := chartstorage.NewLoader(a.config.ChartSource)
	if err != nil {
		return chartentity.Registry{}, cerr.Wrap(err).Error("Failed to open the chart registry")
	}

	defer func() {
		if err := closeLoader(); err != nil {
			log.WithError(err).Warn("Failed to close the chart registry")
		}
	}()

	registry, err := chartentity.LoadRegistry(ctx, loader)
	if err != nil {
		return chartentity.Registry{}, cerr.Wrap(err).Error("Failed to load the chart registry")
	}

	return registry, nil
}
