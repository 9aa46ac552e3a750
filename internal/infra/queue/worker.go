package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/brunovl/leadbridge/internal/entity"
	"github.com/brunovl/leadbridge/internal/infra/http/middleware"
	"github.com/brunovl/leadbridge/internal/usecase"
)

// LeadProcessor runs the side-effect branches for one lead.
type LeadProcessor interface {
	Execute(ctx context.Context, lead entity.Lead) []usecase.EffectResult
}

type Worker struct {
	Channel   *amqp.Channel
	Processor LeadProcessor
}

func NewWorker(ch *amqp.Channel, processor LeadProcessor) *Worker {
	return &Worker{
		Channel:   ch,
		Processor: processor,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			w.handleDelivery(d)
		}
	}()

	log.Printf("[*] worker waiting on queue %q", queueName)
	<-forever
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	var lead entity.Lead
	if err := json.Unmarshal(d.Body, &lead); err != nil {
		log.Printf("[worker] invalid lead payload: %s", err)
		// Malformed message. Reject without requeue so it goes to the
		// DLQ instead of blocking the queue.
		d.Nack(false, false)
		return
	}

	log.Printf("[worker] processing lead %s (%s)", lead.ID, lead.FullName)
	results := w.Processor.Execute(context.Background(), lead)
	for _, r := range results {
		middleware.RecordSideEffect(r.Service, r.Status())
		if r.Err != nil {
			middleware.RecordIntegrationError(r.Service)
			log.Printf("[worker] %s: %s (%v)", r.Service, r.Status(), r.Err)
		} else {
			log.Printf("[worker] %s: %s", r.Service, r.Status())
		}
	}

	// Branch failures are isolated and already reported; the event
	// itself is done either way.
	d.Ack(false)
}
