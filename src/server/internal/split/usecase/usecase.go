package splitusecase

import (
	"context"
	"encoding/json"
	"path"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/server/internal/errors/api"
	"github.com/veedubyou/vocal-split/src/server/internal/split/errors"
	"github.com/veedubyou/vocal-split/src/shared/lib/rabbitmq"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/export"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
)

type SplitRequest struct {
	SourceURL         string `json:"source_url"`
	DestinationPrefix string `json:"destination_prefix"`
}

type Usecase struct {
	publisher rabbitmq.Publisher
}

func NewUsecase(publisher rabbitmq.Publisher) Usecase {
	return Usecase{
		publisher: publisher,
	}
}

func (u Usecase) EnqueueSplit(ctx context.Context, songKey string, request SplitRequest) (jobmessage.JobParams, *api.Error) {
	if request.SourceURL == "" {
		return jobmessage.JobParams{}, api.CommitError(
			errors.New("source_url is empty"),
			splitjoberrors.BadSplitRequestCode,
			"A source_url for the song's vocals is required")
	}

	// the worker finds the vocals by their file name
	if export.Stem(path.Base(request.SourceURL)) != export.MixedVoices {
		return jobmessage.JobParams{}, api.CommitError(
			errors.Newf("source_url %s is not a %s file", request.SourceURL, export.MixedVoices),
			splitjoberrors.BadSplitRequestCode,
			"The source_url must point to the song's Voices file")
	}

	params := jobmessage.JobParams{
		JobID:             uuid.NewString(),
		SongKey:           songKey,
		SourceURL:         request.SourceURL,
		DestinationPrefix: request.DestinationPrefix,
	}

	body, err := json.Marshal(params)
	if err != nil {
		return jobmessage.JobParams{}, api.CommitError(
			errors.Wrap(err, "Failed to marshal split song job"),
			api.DefaultErrorCode,
			"Unknown error: Failed to create the split job")
	}

	err = u.publisher.Publish(ctx, amqp091.Publishing{
		Type: jobmessage.JobType,
		Body: body,
	})

	if err != nil {
		return jobmessage.JobParams{}, api.CommitError(
			errors.Wrap(err, "Failed to publish split song job"),
			api.DefaultErrorCode,
			"Unknown error: Failed to queue the split job. Please try again")
	}

	log.WithFields(log.Fields{
		"job_id":   params.JobID,
		"song_key": songKey,
	}).Info("Queued split song job")

	return params, nil
}
