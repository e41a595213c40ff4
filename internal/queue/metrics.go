package queue

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "benchmate_email_jobs_enqueued_total",
		Help: "Number of email jobs accepted into the notification queue.",
	})

	jobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "benchmate_email_jobs_processed_total",
		Help: "Number of email jobs consumed by the worker, by outcome.",
	}, []string{"outcome"})
)
