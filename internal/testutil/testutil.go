// Package testutil provides shared fixtures for package tests: an isolated
// in-memory database migrated to the current schema, and a recording queue.
package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"benchmate/internal/db"
	"benchmate/internal/queue"
)

// DB returns a migrated in-memory database. Each call gets its own store;
// the pool is capped at one connection so sqlite's :memory: mode does not
// silently hand out separate databases.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(context.Background(), gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return gdb
}

// QueueRecorder implements queue.Enqueuer and records accepted jobs.
type QueueRecorder struct {
	mu   sync.Mutex
	Err  error
	jobs []queue.Job
}

func (q *QueueRecorder) Enqueue(_ context.Context, job queue.Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Err != nil {
		return q.Err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

// Jobs returns a copy of everything enqueued so far.
func (q *QueueRecorder) Jobs() []queue.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]queue.Job, len(q.jobs))
	copy(out, q.jobs)
	return out
}
