package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"time"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/batch/application"
	"github.com/veedubyou/vocal-split/src/shared/config"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/config/local"
	"github.com/veedubyou/vocal-split/src/shared/config/registry"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/env"
	"github.com/veedubyou/vocal-split/src/shared/lib/logging"
)

const defaultJobTimeout = 10 * time.Minute

func main() {
	songsDir := flag.String("songs", "", "folder holding one subfolder per song")
	outputDir := flag.String("out", "", "folder the split vocals are written to")
	reportPath := flag.String("report", "", "optional path for a JSON batch report")
	copyInst := flag.Bool("inst", true, "copy Inst.* files next to the split vocals")
	flag.Parse()

	if *songsDir == "" || *outputDir == "" {
		flag.Usage()
		os.Exit(2)
	}

	environment := env.Get()
	logging.Setup(environment)

	appConfig := application.Config{
		ChartSource:      registry.ChartSourceFromEnv(),
		FFmpegBinPath:    config.FFmpegPath(),
		FFprobeBinPath:   config.FFprobePath(),
		SongsDir:         *songsDir,
		OutputDir:        *outputDir,
		ReportPath:       *reportPath,
		CopyInstrumental: *copyInst,
		SplitEnabled:     envvar.GetBool(envvar.VOCAL_SPLIT_ENABLED, true),
		CorrectedAnchors: envvar.GetBool(envvar.VOCAL_SPLIT_CORRECTED_ANCHORS, false),
		JobTimeout:       envvar.GetDuration(envvar.VOCAL_SPLIT_JOB_TIMEOUT, defaultJobTimeout),
	}

	switch environment {
	case env.Production:
		appConfig.WorkingDirPath = envvar.MustGet(envvar.VOCAL_SPLIT_WORKING_DIR_PATH)
	case env.Development:
		appConfig.WorkingDirPath = envvar.GetOr(envvar.VOCAL_SPLIT_WORKING_DIR_PATH,
			path.Join(local.WorkingDir(), "vocal-split"))
	default:
		panic("Unexpected environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := application.NewApp(appConfig)
	report, err := app.Run(ctx)
	if err != nil {
		cerr.Log(err)
		os.Exit(1)
	}

	if report.Failed > 0 {
		log.WithField("failed", report.Failed).Warn("Some songs could not be split")
	}
}
