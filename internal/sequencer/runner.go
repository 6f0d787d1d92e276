package sequencer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

// ErrAlreadyRunning is returned when Start is called during an active run.
var ErrAlreadyRunning = errors.New("sequencer already running")

const shutdownWait = 2 * time.Second

// Runner owns the lifecycle of one run at a time: it launches the engine on
// a goroutine, hands out the cancel path and joins on shutdown.
type Runner struct {
	engine *Engine
	logger logger.Logger

	onFinished func(stats Stats, err error)

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewRunner(engine *Engine, log logger.Logger) *Runner {
	return &Runner{
		engine: engine,
		logger: log,
	}
}

// SetFinishedHandler registers a callback fired from the run goroutine after
// every run ends, whether it completed, failed or was stopped.
func (r *Runner) SetFinishedHandler(handler func(stats Stats, err error)) {
	r.onFinished = handler
}

// Start validates the sequence and launches the run goroutine, returning the
// new run's ID. The sequence is cloned so later GUI edits do not affect the
// active run.
func (r *Runner) Start(seq *models.Sequence, opts Options) (string, error) {
	if err := seq.Validate(); err != nil {
		return "", err
	}
	if len(seq.EnabledPoints()) == 0 {
		return "", ErrNoEnabledPoints
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return "", ErrAlreadyRunning
	}

	runID := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	r.running = true
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	run := seq.Clone()

	go func() {
		err := r.engine.Run(ctx, runID, run, opts)

		r.mu.Lock()
		r.running = false
		r.cancel = nil
		r.mu.Unlock()
		close(done)

		stats := r.engine.Stats()
		if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ErrNoEnabledPoints) {
			r.logger.Error("Runner", err, map[string]interface{}{"run_id": runID})
		}
		r.logger.Info("Runner", "run finished", map[string]interface{}{
			"run_id": runID,
			"loops":  stats.Loops,
			"clicks": stats.Clicks,
		})

		if r.onFinished != nil {
			r.onFinished(stats, err)
		}
	}()

	return runID, nil
}

// Stop requests cancellation of the active run, if any. It does not wait.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
}

// Wait blocks until the active run's goroutine exits or the context ends.
func (r *Runner) Wait(ctx context.Context) error {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether a run is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Stats returns the latest run snapshot.
func (r *Runner) Stats() Stats {
	return r.engine.Stats()
}

// Shutdown stops the active run and waits briefly for the goroutine to exit.
func (r *Runner) Shutdown() {
	r.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownWait)
	defer cancel()

	if err := r.Wait(ctx); err != nil {
		r.logger.Warning("Runner", "run did not stop in time", nil)
	}
}
