package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"benchmate/internal/mail"
)

type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.sent = append(f.sent, msg)
	return f.err
}

func TestNewEmailJob_Envelope(t *testing.T) {
	t.Parallel()

	job := NewEmailJob("a@x.com", "subject", "<p>hi</p>")

	data, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got["name"] != "sendVerificationEmail" {
		t.Fatalf("name = %v", got["name"])
	}
	opts := got["opts"].(map[string]any)
	if opts["attempts"] != float64(1) {
		t.Fatalf("attempts = %v, want 1", opts["attempts"])
	}
	backoff := opts["backoff"].(map[string]any)
	if backoff["type"] != "fixed" || backoff["delay"] != float64(10000) {
		t.Fatalf("backoff = %v", backoff)
	}
	if opts["removeOnComplete"] != true || opts["removeOnFail"] != true {
		t.Fatalf("remove flags = %v", opts)
	}
}

func TestWorkerHandle_Sends(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer}

	job := NewEmailJob("a@x.com", "Please Verify your email!", "<p>123456</p>")
	data, _ := json.Marshal(job)

	w.handle(context.Background(), data)

	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(mailer.sent))
	}
	if mailer.sent[0].To != "a@x.com" {
		t.Fatalf("to = %q", mailer.sent[0].To)
	}
}

func TestWorkerHandle_SwallowsDeliveryFailure(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{err: errors.New("smtp: connection refused")}
	w := &Worker{mailer: mailer}

	job := NewEmailJob("a@x.com", "s", "<p></p>")
	data, _ := json.Marshal(job)

	// Must not panic or propagate; the failure is terminal for the job.
	w.handle(context.Background(), data)

	if len(mailer.sent) != 1 {
		t.Fatalf("send attempts = %d, want 1", len(mailer.sent))
	}
}

func TestWorkerHandle_MalformedPayload(t *testing.T) {
	t.Parallel()

	mailer := &fakeMailer{}
	w := &Worker{mailer: mailer}

	w.handle(context.Background(), []byte("{not json"))

	if len(mailer.sent) != 0 {
		t.Fatalf("sent %d messages for malformed payload, want 0", len(mailer.sent))
	}
}
