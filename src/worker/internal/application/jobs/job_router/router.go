package job_router

import (
	"context"
	"encoding/json"

	"github.com/apex/log"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/rabbitmq"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . SplitSongJobHandler
type SplitSongJobHandler interface {
	HandleSplitSongJob(ctx context.Context, message []byte) (jobmessage.JobParams, jobmessage.ResultParams, error)
}

type JobRouter struct {
	resultPublisher rabbitmq.Publisher
	splitHandler    SplitSongJobHandler
}

func NewJobRouter(resultPublisher rabbitmq.Publisher, splitHandler SplitSongJobHandler) JobRouter {
	return JobRouter{
		resultPublisher: resultPublisher,
		splitHandler:    splitHandler,
	}
}

func (j JobRouter) HandleMessage(ctx context.Context, message amqp091.Delivery) error {
	switch message.Type {
	case jobmessage.JobType:
		return j.handleSplitSong(ctx, message.Body)

	default:
		return cerr.Field("message_type", message.Type).Error("Message type cannot be handled")
	}
}

func (j JobRouter) handleSplitSong(ctx context.Context, body []byte) error {
	params, result, err := j.splitHandler.HandleSplitSongJob(ctx, body)
	if err != nil {
		err = cerr.Wrap(err).Error("Failed to handle split song job")

		// without a job id nobody is waiting on a result
		if params.JobID == "" {
			return err
		}

		if publishErr := j.publishResult(ctx, jobmessage.FailedResult(params, err)); publishErr != nil {
			cerr.Log(publishErr)
		}

		return err
	}

	if err := j.publishResult(ctx, result); err != nil {
		return cerr.Field("job_id", result.JobID).Wrap(err).Error("Failed to publish split song result")
	}

	return nil
}

func (j JobRouter) publishResult(ctx context.Context, result jobmessage.ResultParams) error {
	body, err := json.Marshal(result)
	if err != nil {
		return cerr.Wrap(err).Error("Failed to marshal split song result")
	}

	log.WithFields(log.Fields{
		"job_id": result.JobID,
		"status": result.Status,
	}).Info("Publishing split song result")

	return j.resultPublisher.Publish(ctx, amqp091.Publishing{
		Type: jobmessage.ResultType,
		Body: body,
	})
}
