package embed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TheLab-ms/styler/engine"
)

type saveJob struct {
	target     Target
	instanceID string
	err        error
}

func (j *saveJob) String() string {
	if j.instanceID == "" {
		return fmt.Sprintf("new %s widget", j.target.Kind())
	}
	return fmt.Sprintf("%s widget %s", j.target.Kind(), j.instanceID)
}

// AsyncSaver is a Persister that queues saves and writes them to the Store
// from a background worker. Outcomes are recorded in the event log.
type AsyncSaver struct {
	store  *Store
	events *engine.EventLogger
	queue  chan *saveJob
}

func NewAsyncSaver(store *Store, events *engine.EventLogger, depth int) *AsyncSaver {
	return &AsyncSaver{store: store, events: events, queue: make(chan *saveJob, depth)}
}

// Save enqueues the target. A full queue drops the save and records the failure.
func (a *AsyncSaver) Save(ctx context.Context, target Target, instanceID string) {
	job := &saveJob{target: target, instanceID: instanceID}
	select {
	case a.queue <- job:
	default:
		slog.Error("widget save queue is full - dropping save", "item", job)
		a.events.LogEvent(ctx, "embed", "SaveDropped", instanceID, false, "save queue is full")
	}
}

func (a *AsyncSaver) GetItem(ctx context.Context) (*saveJob, error) {
	select {
	case job := <-a.queue:
		return job, nil
	default:
		return nil, engine.ErrQueueEmpty
	}
}

func (a *AsyncSaver) ProcessItem(ctx context.Context, job *saveJob) error {
	id, err := a.store.Put(ctx, job.target, job.instanceID)
	if err != nil {
		job.err = err
		return err
	}
	job.instanceID = id
	return nil
}

func (a *AsyncSaver) UpdateItem(ctx context.Context, job *saveJob, success bool) error {
	details := string(job.target.Kind())
	if job.err != nil {
		details = job.err.Error()
	}
	a.events.LogEvent(ctx, "embed", "WidgetSaved", job.instanceID, success, details)
	return nil
}
