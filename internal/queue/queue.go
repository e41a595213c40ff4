package queue

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/nats-io/nats.go"
)

const (
	// SubjectEmail carries "send email" jobs.
	SubjectEmail = "benchmate.notifications.email"

	streamName = "benchmate-notifications"
)

// Enqueuer accepts a job for later asynchronous delivery. The caller returns
// as soon as the job is accepted; delivery outcome is never reported back.
type Enqueuer interface {
	Enqueue(ctx context.Context, job Job) error
}

// Bus wraps a NATS JetStream connection used as the notification queue.
type Bus struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// Connect dials NATS and ensures the notification stream exists.
func Connect(url string, opts ...nats.Option) (*Bus, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	_, err = js.AddStream(&nats.StreamConfig{
		Name:     streamName,
		Subjects: []string{"benchmate.notifications.*"},
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		nc.Close()
		return nil, err
	}

	return &Bus{conn: nc, js: js}, nil
}

// Close drains the underlying NATS connection.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	if err := b.conn.Drain(); err != nil {
		b.conn.Close()
	}
}

// Enqueue appends a job to the queue. It does not await delivery.
func (b *Bus) Enqueue(ctx context.Context, job Job) error {
	if b == nil {
		return errors.New("nil bus")
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if _, err := b.js.Publish(SubjectEmail, data, nats.Context(ctx)); err != nil {
		return err
	}

	jobsEnqueued.Inc()
	return nil
}
