package driver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/export"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

const InstrumentalStem = "Inst"

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . SongSplitter
type SongSplitter interface {
	Split(ctx context.Context, request song.Request) song.Result
}

type Options struct {
	SongsDir   string
	OutputRoot string
	// CopyInstrumental carries Inst.* next to the split vocals
	CopyInstrumental bool
}

func NewDriver(splitter SongSplitter, options Options) Driver {
	return Driver{
		splitter: splitter,
		options:  options,
	}
}

type Driver struct {
	splitter SongSplitter
	options  Options
}

// Run splits every song folder in name order, one at a time. Per song
// failures land in the report; only an unreadable songs folder or a
// cancelled context stop the batch.
func (d Driver) Run(ctx context.Context) (Report, error) {
	entries, err := os.ReadDir(d.options.SongsDir)
	if err != nil {
		return Report{}, cerr.Field("songs_dir", d.options.SongsDir).
			Wrap(mark.Wrap(err, spliterrors.FileOperationMark, "Failed to read songs folder")).
			Error("Cannot run vocal split batch")
	}

	report := Report{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if err := ctx.Err(); err != nil {
			return report, cerr.Wrap(err).Error("Vocal split batch was cancelled")
		}

		songKey := entry.Name()
		sourceDir := filepath.Join(d.options.SongsDir, songKey)

		result := d.splitter.Split(ctx, song.Request{
			SongKey:    songKey,
			SourceDir:  sourceDir,
			OutputRoot: d.options.OutputRoot,
		})

		if d.options.CopyInstrumental {
			if err := d.copyInstrumental(songKey, sourceDir); err != nil {
				cerr.Log(err)
			}
		}

		logResult(result)
		report.Add(result)
	}

	report.Log()
	return report, nil
}

func (d Driver) copyInstrumental(songKey string, sourceDir string) error {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return cerr.Field("source_dir", sourceDir).Wrap(err).Error("Failed to list song folder")
	}

	destDir := export.SongDir(d.options.OutputRoot, songKey)
	for _, entry := range entries {
		if entry.IsDir() || export.Stem(entry.Name()) != InstrumentalStem {
			continue
		}

		if err := export.EnsureDir(destDir); err != nil {
			return err
		}

		source := filepath.Join(sourceDir, entry.Name())
		if err := export.CopyFile(source, filepath.Join(destDir, entry.Name())); err != nil {
			return cerr.Field("song_key", songKey).Wrap(err).Error("Failed to copy instrumental")
		}
	}

	return nil
}

func logResult(result song.Result) {
	logger := log.WithFields(log.Fields{
		"song_key": result.SongKey,
		"slug":     result.Slug,
		"status":   result.Status,
	})

	switch result.Status {
	case song.StatusOK:
		logger.WithField("outputs", result.Outputs).Info("Song finished")
	case song.StatusSkipped:
		logger.WithField("reason", result.Reason).Warn("Song skipped")
	case song.StatusFailed:
		logger.WithFields(cerr.CollectFields(result.Err)).
			WithField("kind", result.Kind).
			WithError(result.Err).
			Error("Song failed")
	}
}
