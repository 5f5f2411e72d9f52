package ledger

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/wisevaishu/ordersynth/pkg/storage"
	"github.com/wisevaishu/ordersynth/pkg/synth"
)

var runsBucket = []byte("runs")

// ErrRunNotFound is returned by Get for an unknown run ID
var ErrRunNotFound = errors.New("run not found")

// RunStatus is the lifecycle state of a generation run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run records one invocation of the generator.
type Run struct {
	ID         string        `json:"id"`
	Path       string        `json:"path"`
	Requested  int           `json:"requested"`
	Rows       int           `json:"rows"`
	Bytes      int64         `json:"bytes"`
	Seed       uint64        `json:"seed,omitempty"`
	Status     RunStatus     `json:"status"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at,omitzero"`
	Duration   time.Duration `json:"duration,omitempty"`
}

// Ledger keeps the history of generation runs.
type Ledger struct {
	store *storage.JSONStore
	now   func() time.Time
}

// Open opens (or creates) a bbolt-backed ledger at path
func Open(path string) (*Ledger, error) {
	backend, err := storage.NewBoltBackend(path)
	if err != nil {
		return nil, err
	}

	l, err := New(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	log.Printf("[LEDGER] Run history at %s", path)
	return l, nil
}

// New builds a ledger on any backend
func New(backend storage.Backend) (*Ledger, error) {
	if err := backend.CreateBucket(runsBucket); err != nil {
		return nil, fmt.Errorf("failed to create runs bucket: %w", err)
	}
	return &Ledger{
		store: storage.NewJSONStore(backend),
		now:   time.Now,
	}, nil
}

// NewMemory returns a ledger that forgets everything on Close
func NewMemory() *Ledger {
	l, _ := New(storage.NewMemoryBackend()) // memory buckets cannot fail
	return l
}

// Begin records a run as started and returns it
func (l *Ledger) Begin(path string, requested int, seed uint64) (*Run, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	run := &Run{
		ID:        id.String(),
		Path:      path,
		Requested: requested,
		Seed:      seed,
		Status:    RunStatusRunning,
		StartedAt: l.now(),
	}
	if err := l.save(run); err != nil {
		return nil, err
	}
	return run, nil
}

// Finish records the outcome of a run. res is ignored when runErr is set.
func (l *Ledger) Finish(run *Run, res *synth.Result, runErr error) error {
	run.FinishedAt = l.now()
	run.Duration = run.FinishedAt.Sub(run.StartedAt)

	if runErr != nil {
		run.Status = RunStatusFailed
		run.Error = runErr.Error()
	} else {
		run.Status = RunStatusCompleted
		run.Rows = res.Rows
		run.Bytes = res.Bytes
		run.Duration = res.Duration
	}

	return l.save(run)
}

// Get returns a single run
func (l *Ledger) Get(id string) (*Run, error) {
	var run Run
	found, err := l.store.GetJSON(runsBucket, []byte(id), &run)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return &run, nil
}

// List returns every recorded run, newest first. Undecodable entries are skipped.
func (l *Ledger) List() ([]*Run, error) {
	var runs []*Run
	err := l.store.ForEachJSON(runsBucket, func(k []byte, unmarshal func(v any) error) error {
		var run Run
		if err := unmarshal(&run); err != nil {
			log.Printf("[LEDGER] Warning: skipping run %s: %v", k, err)
			return nil
		}
		runs = append(runs, &run)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(runs, func(a, b *Run) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return runs, nil
}

// Close releases the underlying store
func (l *Ledger) Close() error {
	return l.store.Close()
}

func (l *Ledger) save(run *Run) error {
	if err := l.store.PutJSON(runsBucket, []byte(run.ID), run); err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}
