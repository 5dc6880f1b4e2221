package split_song

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/lib/working_dir"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/song"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
	cloudstorage "github.com/veedubyou/vocal-split/src/worker/internal/application/cloud_storage/entity"
	"github.com/veedubyou/vocal-split/src/worker/internal/lib/storagepath"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . SongSplitter
type SongSplitter interface {
	Split(ctx context.Context, request song.Request) song.Result
}

func NewJobHandler(splitter SongSplitter, fileStore cloudstorage.FileStore, pathGenerator storagepath.Generator, workingDirStr string) (JobHandler, error) {
	workingDir, err := working_dir.NewWorkingDir(workingDirStr)
	if err != nil {
		return JobHandler{}, cerr.Field("working_dir_str", workingDirStr).
			Wrap(err).Error("Failed to create working dir")
	}

	return JobHandler{
		splitter:      splitter,
		fileStore:     fileStore,
		pathGenerator: pathGenerator,
		workingDir:    workingDir,
	}, nil
}

type JobHandler struct {
	splitter      SongSplitter
	fileStore     cloudstorage.FileStore
	pathGenerator storagepath.Generator
	workingDir    working_dir.WorkingDir
}

// HandleSplitSongJob downloads the song's vocals, splits them locally and
// uploads whatever the splitter produced. A split that fails still comes
// back as a result, the error is only for jobs that could not run.
func (j JobHandler) HandleSplitSongJob(ctx context.Context, message []byte) (jobmessage.JobParams, jobmessage.ResultParams, error) {
	params, err := jobmessage.UnmarshalJobParams(message)
	if err != nil {
		return params, jobmessage.ResultParams{}, cerr.Wrap(err).Error("Invalid split song job")
	}

	errctx := cerr.Fields(cerr.F{
		"job_id":     params.JobID,
		"song_key":   params.SongKey,
		"source_url": params.SourceURL,
	})

	jobDir, cleanUp, err := j.workingDir.MakeTempDir("split-song-*")
	if err != nil {
		return params, jobmessage.ResultParams{}, errctx.Wrap(err).Error("Failed to make a temp dir for the job")
	}

	defer cleanUp()

	sourceDir := filepath.Join(jobDir, "source")
	outputRoot := filepath.Join(jobDir, "output")

	if err := j.download(ctx, params.SourceURL, sourceDir); err != nil {
		return params, jobmessage.ResultParams{}, errctx.Wrap(err).Error("Failed to download source vocals")
	}

	result := j.splitter.Split(ctx, song.Request{
		SongKey:    params.SongKey,
		SourceDir:  sourceDir,
		OutputRoot: outputRoot,
	})

	outputURLs, err := j.upload(ctx, params.DestinationPrefix, result)
	if err != nil {
		return params, jobmessage.ResultParams{}, errctx.Wrap(err).Error("Failed to upload split vocals")
	}

	log.WithFields(log.Fields{
		"job_id":   params.JobID,
		"song_key": params.SongKey,
		"status":   result.Status,
		"outputs":  len(outputURLs),
	}).Info("Split song job finished")

	return params, jobmessage.ResultParams{
		JobID:      params.JobID,
		SongKey:    params.SongKey,
		Slug:       result.Slug,
		Status:     result.Status,
		Reason:     result.Reason,
		Kind:       result.Kind,
		OutputURLs: outputURLs,
		Error:      result.Message,
	}, nil
}

func (j JobHandler) download(ctx context.Context, sourceURL string, sourceDir string) error {
	contents, err := j.fileStore.GetFile(ctx, sourceURL)
	if err != nil {
		return cerr.Wrap(err).Error("Failed to get source file from the file store")
	}

	if err := os.MkdirAll(sourceDir, os.ModePerm); err != nil {
		return mark.Wrap(err, spliterrors.FileOperationMark, "Failed to create source dir")
	}

	// the splitter finds vocals by file name so the remote name is kept
	localPath := filepath.Join(sourceDir, path.Base(sourceURL))
	if err := os.WriteFile(localPath, contents, 0644); err != nil {
		return mark.Wrap(err, spliterrors.FileOperationMark, "Failed to write source file")
	}

	return nil
}

func (j JobHandler) upload(ctx context.Context, destinationPrefix string, result song.Result) ([]string, error) {
	outputURLs := make([]string, 0, len(result.Outputs))

	for _, output := range result.Outputs {
		contents, err := os.ReadFile(output)
		if err != nil {
			return nil, cerr.Field("output", output).
				Wrap(mark.Wrap(err, spliterrors.FileOperationMark, "Failed to read output file")).
				Error("Failed to upload output")
		}

		destURL := j.pathGenerator.GeneratePath(destinationPrefix, result.Slug, filepath.Base(output))
		if err := j.fileStore.WriteFile(ctx, destURL, contents); err != nil {
			return nil, cerr.Field("dest_url", destURL).Wrap(err).Error("Failed to upload output")
		}

		outputURLs = append(outputURLs, destURL)
	}

	return outputURLs, nil
}
