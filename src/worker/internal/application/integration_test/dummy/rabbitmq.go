package dummy

import (
	"context"
	"sync"

	"github.com/rabbitmq/amqp091-go"
	"github.com/veedubyou/vocal-split/src/shared/lib/rabbitmq"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/jobmessage"
	"github.com/veedubyou/vocal-split/src/worker/internal/application/worker"
)

var (
	_ worker.MessageChannel = &RabbitMQ{}
	_ rabbitmq.Publisher    = &RabbitMQ{}
	_ amqp091.Acknowledger  = &RabbitMQ{}
)

// RabbitMQ stands in for both queues: jobs published to it are delivered to
// the consumer, results are kept aside in Results
type RabbitMQ struct {
	Unavailable bool

	mutex         sync.Mutex
	deliveryTag   uint64
	messages      chan amqp091.Delivery
	closed        bool
	PrefetchCount int
	AckCounter    int
	NackCounter   int
	Results       []amqp091.Publishing
}

func NewRabbitMQ() *RabbitMQ {
	return &RabbitMQ{
		messages: make(chan amqp091.Delivery, 100),
	}
}

func (r *RabbitMQ) Qos(prefetchCount, prefetchSize int, global bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.PrefetchCount = prefetchCount
	return nil
}

func (r *RabbitMQ) Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error) {
	if r.Unavailable {
		return nil, NetworkFailure
	}

	return r.messages, nil
}

func (r *RabbitMQ) Close() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.closed {
		r.closed = true
		close(r.messages)
	}

	return nil
}

func (r *RabbitMQ) Publish(ctx context.Context, msg amqp091.Publishing) error {
	if r.Unavailable {
		return NetworkFailure
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if msg.Type == jobmessage.ResultType {
		r.Results = append(r.Results, msg)
		return nil
	}

	if r.closed {
		return amqp091.ErrClosed
	}

	r.deliveryTag++
	r.messages <- amqp091.Delivery{
		Acknowledger: r,
		DeliveryTag:  r.deliveryTag,
		Type:         msg.Type,
		Body:         msg.Body,
	}

	return nil
}

func (r *RabbitMQ) ResultCount() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return len(r.Results)
}

func (r *RabbitMQ) PublishedResults() []amqp091.Publishing {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	results := make([]amqp091.Publishing, len(r.Results))
	copy(results, r.Results)
	return results
}

func (r *RabbitMQ) Counts() (int, int) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.AckCounter, r.NackCounter
}

func (r *RabbitMQ) Ack(tag uint64, multiple bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.AckCounter++
	return nil
}

func (r *RabbitMQ) Nack(tag uint64, multiple bool, requeue bool) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.NackCounter++
	return nil
}

func (r *RabbitMQ) Reject(tag uint64, requeue bool) error {
	return r.Nack(tag, false, requeue)
}
