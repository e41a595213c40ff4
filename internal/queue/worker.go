package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"benchmate/internal/mail"
)

const (
	workerDurable  = "email-worker"
	deliverTimeout = 30 * time.Second
)

// Worker is the long-lived consumer draining the notification queue. One
// worker instance handles one job at a time; multiple instances share the
// durable queue group so each job is delivered to a single consumer.
type Worker struct {
	bus    *Bus
	mailer mail.Mailer
}

// NewWorker returns a Worker sending through mailer.
func NewWorker(bus *Bus, mailer mail.Mailer) *Worker {
	return &Worker{bus: bus, mailer: mailer}
}

// Run subscribes and blocks until ctx is cancelled. Delivery failures are
// logged and swallowed; they never propagate to the job's producer.
func (w *Worker) Run(ctx context.Context) error {
	if w.bus == nil {
		return errors.New("nil bus")
	}

	sub, err := w.bus.js.QueueSubscribe(SubjectEmail, workerDurable, func(msg *nats.Msg) {
		w.handle(ctx, msg.Data)
		// Ack regardless of outcome: attempts=1, removeOnFail.
		_ = msg.Ack()
	},
		nats.Durable(workerDurable),
		nats.ManualAck(),
		nats.AckExplicit(),
		nats.MaxDeliver(1),
		nats.MaxAckPending(1),
	)
	if err != nil {
		return err
	}

	log.Info().Str("subject", SubjectEmail).Msg("email worker running")

	<-ctx.Done()
	return sub.Drain()
}

func (w *Worker) handle(ctx context.Context, data []byte) {
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		jobsProcessed.WithLabelValues("malformed").Inc()
		log.Error().Err(err).Msg("discarding malformed job")
		return
	}

	log.Info().Str("job", job.Name).Str("to", job.Data.To).Msg("worker received job")

	sendCtx, cancel := context.WithTimeout(ctx, deliverTimeout)
	defer cancel()

	err := w.mailer.Send(sendCtx, mail.Message{
		To:      job.Data.To,
		Subject: job.Data.Subject,
		HTML:    job.Data.HTML,
	})
	if err != nil {
		jobsProcessed.WithLabelValues("failed").Inc()
		log.Error().Err(err).Str("to", job.Data.To).Msg("email delivery failed")
		return
	}

	jobsProcessed.WithLabelValues("sent").Inc()
	log.Info().Str("to", job.Data.To).Str("subject", job.Data.Subject).Msg("email sent")
}
