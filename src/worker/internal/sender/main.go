package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/shared/config/dev"
	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
	"github.com/veedubyou/vocal-split/src/shared/lib/rabbitmq"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
)

// sends one split_song job to the dev queue: sender <song key> <source url>
func main() {
	if len(os.Args) != 3 {
		panic("usage: sender <song key> <source url>")
	}

	rabbitURL := envvar.GetOr(envvar.RABBITMQ_URL, dev.RabbitMQHost)

	publisher, err := rabbitmq.NewQueuePublisher(rabbitURL, dev.RabbitMQQueueName)
	if err != nil {
		panic(err)
	}
	defer publisher.Close()

	jobBody, err := json.Marshal(jobmessage.JobParams{
		JobID:             uuid.NewString(),
		SongKey:           os.Args[1],
		SourceURL:         os.Args[2],
		DestinationPrefix: "dev",
	})

	if err != nil {
		panic(err)
	}

	err = publisher.Publish(context.Background(), amqp091.Publishing{
		Type: jobmessage.JobType,
		Body: jobBody,
	})

	if err != nil {
		panic(err)
	}
}
