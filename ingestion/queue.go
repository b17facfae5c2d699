package ingestion

import (
	"context"
	"log"
	"sync"
	"time"
)

// Ingestion statuses exposed to pollers.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusDone       = "done"
	StatusFailed     = "failed"
)

// How long a status key stays around.
const statusTTL = 24 * time.Hour

// StatusStore persists the ingestion status of a report code.
type StatusStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// StatusKey builds the status key of a report code.
func StatusKey(reportCode string) string {
	return "ingest:status:" + reportCode
}

// Ingestor runs one report ingestion end to end.
type Ingestor interface {
	IngestReport(ctx context.Context, reportCode string) error
}

// Queue runs ingestions in the background.
// Each report code is serialized through its own lock: the guard delete
// then write sequence is not safe for two overlapping runs of the same
// code. Different codes run in parallel, bounded by the semaphore.
type Queue struct {
	service Ingestor
	status  StatusStore
	mu      sync.Mutex
	locks   map[string]*codeLock
	sem     chan struct{}
	wg      sync.WaitGroup
}

// Lock of one report code, reference counted so the entry can be
// dropped once nobody waits on the code anymore.
type codeLock struct {
	mu   sync.Mutex
	refs int
}

// QueueDeps is the dependency list for the queue.
type QueueDeps struct {
	Service    Ingestor
	Status     StatusStore
	MaxWorkers int
}

// NewQueue creates a ingestion queue.
func NewQueue(deps *QueueDeps) *Queue {
	workers := deps.MaxWorkers
	if workers <= 0 {
		workers = 4
	}

	return &Queue{
		service: deps.Service,
		status:  deps.Status,
		locks:   make(map[string]*codeLock),
		sem:     make(chan struct{}, workers),
	}
}

// Enqueue starts the ingestion of a report code and returns immediately.
// The caller polls the status to know how it went.
func (q *Queue) Enqueue(reportCode string) {
	q.setStatus(reportCode, StatusPending)

	q.wg.Add(1)
	go q.run(reportCode)
}

// Wait blocks until every enqueued ingestion finished.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// Run a single ingestion, holding the code lock from fetch to commit.
func (q *Queue) run(reportCode string) {
	defer q.wg.Done()

	lock := q.acquireLock(reportCode)
	defer q.releaseLock(reportCode, lock)

	q.sem <- struct{}{}
	defer func() { <-q.sem }()

	q.setStatus(reportCode, StatusProcessing)

	if err := q.service.IngestReport(context.Background(), reportCode); err != nil {
		log.Printf("Ingestion of report %s failed: %v", reportCode, err)
		q.setStatus(reportCode, StatusFailed)
		return
	}

	q.setStatus(reportCode, StatusDone)
}

// Take the lock of a report code, creating the entry on first use.
func (q *Queue) acquireLock(reportCode string) *codeLock {
	q.mu.Lock()
	lock, exists := q.locks[reportCode]
	if !exists {
		lock = &codeLock{}
		q.locks[reportCode] = lock
	}
	lock.refs++
	q.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// Release the lock, dropping the entry once no run references it.
func (q *Queue) releaseLock(reportCode string, lock *codeLock) {
	lock.mu.Unlock()

	q.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(q.locks, reportCode)
	}
	q.mu.Unlock()
}

// Record the status, best effort.
func (q *Queue) setStatus(reportCode string, status string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := q.status.Set(ctx, StatusKey(reportCode), status, statusTTL); err != nil {
		log.Printf("Couldn't record the status of report %s: %v", reportCode, err)
	}
}
