package song

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/shared/audio/codec"
	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/export"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/isolate"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/timeline"
)

type Config struct {
	Enabled    bool
	AnchorMode timeline.AnchorMode
	// Timeout bounds a single split job, zero waits forever
	Timeout time.Duration
}

type Request struct {
	SongKey    string
	SourceDir  string
	OutputRoot string
}

func NewSplitter(registry chartentity.Registry, codec codec.Codec, config Config) Splitter {
	return Splitter{
		registry: registry,
		codec:    codec,
		exporter: export.NewExporter(codec),
		config:   config,
	}
}

type Splitter struct {
	registry chartentity.Registry
	codec    codec.Codec
	exporter export.Exporter
	config   Config
}

type vocalFiles struct {
	mixed    string
	player   string
	opponent string
}

func (v vocalFiles) isPreSplit() bool {
	return v.player != "" && v.opponent != ""
}

// Split handles the vocals of one song folder. It never returns an error:
// every outcome is reported on the Result so one song can't stop a batch.
func (s Splitter) Split(ctx context.Context, request Request) Result {
	base := Result{
		SongKey: request.SongKey,
		Slug:    export.Slug(request.SongKey),
	}

	logger := log.WithFields(log.Fields{
		"song_key": request.SongKey,
		"slug":     base.Slug,
	})

	files, err := findVocalFiles(request.SourceDir)
	if err != nil {
		return failed(base, err, nil)
	}

	destDir := export.SongDir(request.OutputRoot, request.SongKey)
	chart, hasChart := s.registry.Lookup(request.SongKey)

	switch {
	case files.isPreSplit():
		return s.renamePreSplit(base, files, destDir, chart, hasChart, logger)

	case files.mixed == "":
		logger.Info("No vocal file in song folder")
		return skipped(base, ReasonNoVocals, nil)

	case !s.config.Enabled:
		logger.Warn("Vocal split is disabled, copying the vocal file as is")
		return s.copyUnmodified(base, ReasonSplitDisabled, files.mixed, destDir)

	case !hasChart:
		logger.Warn("No chart was found for this song so the vocal file will be copied instead")
		return s.copyUnmodified(base, ReasonNoChart, files.mixed, destDir)
	}

	logger.WithFields(log.Fields{
		"bpm":      chart.StartingBPM,
		"player":   chart.Player,
		"opponent": chart.Opponent,
	}).Info("Running vocal split")

	outputs, err := isolate.Run(ctx, s.config.Timeout, func(ctx context.Context) ([]string, error) {
		return s.splitMixed(ctx, chart, files.mixed, destDir)
	})

	if err != nil {
		err = cerr.Field("song_key", request.SongKey).Wrap(err).Error("Vocal split failed")
		return failed(base, err, outputs)
	}

	logger.Info("Vocal split finished")
	return ok(base, outputs)
}

func (s Splitter) splitMixed(ctx context.Context, chart chartentity.Chart, mixedPath string, destDir string) ([]string, error) {
	errctx := cerr.Field("source_path", mixedPath)

	mixed, err := s.codec.Decode(ctx, mixedPath)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to decode mixed vocals")
	}

	tracks, err := SplitAudio(chart, mixed, s.config.AnchorMode)
	if err != nil {
		return nil, errctx.Wrap(err).Error("Failed to split mixed vocals")
	}

	participants := export.Participants{
		Player:   chart.Player,
		Opponent: chart.Opponent,
	}

	return s.exporter.ExportTracks(ctx, destDir, filepath.Ext(mixedPath), participants, tracks)
}

func (s Splitter) renamePreSplit(base Result, files vocalFiles, destDir string, chart chartentity.Chart, hasChart bool, logger log.Interface) Result {
	if !hasChart {
		logger.Warn("Song ships separated vocals but has no chart, copying them without renaming")

		outputs := []string{}
		for _, source := range []string{files.player, files.opponent} {
			output, err := s.exporter.CopyAs(source, destDir, filepath.Base(source))
			if err != nil {
				return failed(base, err, outputs)
			}

			outputs = append(outputs, output)
		}

		return skipped(base, ReasonPreSplitNoChart, outputs)
	}

	renames := []struct {
		source      string
		participant string
	}{
		{source: files.player, participant: chart.Player},
		{source: files.opponent, participant: chart.Opponent},
	}

	outputs := []string{}
	for _, rename := range renames {
		fileName := export.VoicesFileName(rename.participant, filepath.Ext(rename.source))
		output, err := s.exporter.CopyAs(rename.source, destDir, fileName)
		if err != nil {
			return failed(base, err, outputs)
		}

		outputs = append(outputs, output)
	}

	logger.Info("Renamed separated vocals for the song's participants")
	return ok(base, outputs)
}

func (s Splitter) copyUnmodified(base Result, reason string, sourcePath string, destDir string) Result {
	output, err := s.exporter.CopyAs(sourcePath, destDir, filepath.Base(sourcePath))
	if err != nil {
		return failed(base, err, nil)
	}

	return skipped(base, reason, []string{output})
}

func findVocalFiles(sourceDir string) (vocalFiles, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		err = mark.Wrap(err, spliterrors.FileOperationMark, "Failed to read song folder")
		return vocalFiles{}, cerr.Field("source_dir", sourceDir).Wrap(err).Error("Cannot find vocal files")
	}

	files := vocalFiles{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(sourceDir, entry.Name())
		switch export.Stem(entry.Name()) {
		case export.MixedVoices:
			files.mixed = path
		case export.PlayerVoices:
			files.player = path
		case export.OpponentVoices:
			files.opponent = path
		}
	}

	return files, nil
}
