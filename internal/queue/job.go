package queue

// JobSendEmail is the single job type carried by the notification queue.
const JobSendEmail = "sendVerificationEmail"

// EmailPayload is the data section of a notification job.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Backoff describes the retry delay policy. With Attempts=1 it never kicks in.
type Backoff struct {
	Type  string `json:"type"`
	Delay int    `json:"delay"`
}

// Options is the delivery policy attached to a job.
type Options struct {
	Attempts         int     `json:"attempts"`
	Backoff          Backoff `json:"backoff"`
	RemoveOnComplete bool    `json:"removeOnComplete"`
	RemoveOnFail     bool    `json:"removeOnFail"`
}

// Job is the envelope placed on the queue. The job record is discarded once
// consumed, whether delivery succeeded or not; there is no dead-letter
// retention.
type Job struct {
	Name string       `json:"name"`
	Data EmailPayload `json:"data"`
	Opts Options      `json:"opts"`
}

// NewEmailJob wraps an email in the standard envelope: a single delivery
// attempt, fixed 10-second backoff, and auto-discard on completion or failure.
func NewEmailJob(to, subject, html string) Job {
	return Job{
		Name: JobSendEmail,
		Data: EmailPayload{To: to, Subject: subject, HTML: html},
		Opts: Options{
			Attempts:         1,
			Backoff:          Backoff{Type: "fixed", Delay: 10000},
			RemoveOnComplete: true,
			RemoveOnFail:     true,
		},
	}
}
