package worker

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

// one delivery in flight per worker process
const prefetchCount = 1

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . MessageChannel
type MessageChannel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	Close() error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, message amqp091.Delivery) error
}

type QueueWorker struct {
	channel     MessageChannel
	channelLock sync.Mutex
	handler     MessageHandler
	queueName   string
}

func NewQueueWorker(channel MessageChannel, queueName string, handler MessageHandler) *QueueWorker {
	return &QueueWorker{
		channel:   channel,
		queueName: queueName,
		handler:   handler,
	}
}

func NewQueueWorkerFromConnection(conn *amqp091.Connection, queueName string, handler MessageHandler) (*QueueWorker, error) {
	rabbitChannel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, cerr.Wrap(err).Error("Failed to get channel")
	}

	queue, err := rabbitChannel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		_ = rabbitChannel.Close()
		return nil, cerr.Wrap(err).Error("Failed to declare queue")
	}

	return NewQueueWorker(rabbitChannel, queue.Name, handler), nil
}

// Start consumes until the channel closes, handling each delivery to
// completion before acking it
func (q *QueueWorker) Start(ctx context.Context) error {
	log.Info("Starting worker")

	q.channelLock.Lock()
	if q.channel == nil {
		q.channelLock.Unlock()
		return cerr.Error("Worker has been stopped")
	}

	channel := q.channel
	defer channel.Close()

	if err := channel.Qos(prefetchCount, 0, false); err != nil {
		q.channelLock.Unlock()
		return cerr.Wrap(err).Error("Failed to set channel prefetch")
	}

	messageStream, err := channel.Consume(
		q.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	q.channelLock.Unlock()

	if err != nil {
		return cerr.Field("queue_name", q.queueName).
			Wrap(err).Error("Failed to start consuming from channel")
	}

	for message := range messageStream {
		q.handle(ctx, message)
	}

	return nil
}

func (q *QueueWorker) handle(ctx context.Context, message amqp091.Delivery) {
	logger := log.WithField("message_type", message.Type)
	logger.Info("Handling message")

	err := q.handler.HandleMessage(ctx, message)
	if err != nil {
		err = cerr.Field("message_type", message.Type).
			Wrap(err).Error("Failed to process message")

		cerr.Log(err)

		if err = message.Nack(false, false); err != nil {
			logger.Error("Failed to nack message")
		}

		return
	}

	logger.Info("Successfully processed message")
	if err = message.Ack(false); err != nil {
		logger.Error("Failed to ack message")
	}
}

func (q *QueueWorker) Stop() {
	q.channelLock.Lock()
	defer q.channelLock.Unlock()

	if q.channel == nil {
		return
	}

	_ = q.channel.Close()
	q.channel = nil
}
