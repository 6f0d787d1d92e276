// Package sequencer runs a click sequence on a background goroutine: wait,
// move, verify, click, repeat, for a fixed number of loops or until the
// context is cancelled.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/mouse"
)

const (
	// settleDelay lets the cursor land before the click registers.
	settleDelay = 50 * time.Millisecond
	// adjustDelay follows a drift correction move.
	adjustDelay = 10 * time.Millisecond
	// minPointDelay is the floor for the jittered wait between clicks.
	minPointDelay = 100 * time.Millisecond
	// delayJitter is the relative spread applied to every point delay.
	delayJitter = 0.05
)

// ErrNoEnabledPoints is returned when a run starts with nothing to click.
var ErrNoEnabledPoints = errors.New("no enabled click points")

// Options carries per-run toggles and the injectable time and rand sources.
// Zero-value sources fall back to the real clock, an interruptible sleep and
// math/rand.
type Options struct {
	VerifyPosition bool
	DebugClicks    bool

	Clock   func() time.Time
	Sleeper func(context.Context, time.Duration) error
	Intn    func(int) int
	Float64 func() float64
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Sleeper == nil {
		o.Sleeper = defaultSleeper
	}
	if o.Intn == nil {
		o.Intn = rand.Intn
	}
	if o.Float64 == nil {
		o.Float64 = rand.Float64
	}
	return o
}

func defaultSleeper(ctx context.Context, wait time.Duration) error {
	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Callbacks are invoked from the run goroutine; receivers hand off to the UI
// thread themselves.
type Callbacks struct {
	OnStatus       func(status string)
	OnClick        func(index, x, y, clicks int)
	OnLoopComplete func(loop int)
}

// Stats is a snapshot of the current or most recent run.
type Stats struct {
	RunID     string
	Loops     int
	Clicks    int
	StartedAt time.Time
}

// Engine executes click sequences against a mouse controller. One engine is
// shared across runs; Stats always reflects the latest one.
type Engine struct {
	mouse  mouse.Controller
	logger logger.Logger
	cb     Callbacks

	mu    sync.RWMutex
	stats Stats
}

func NewEngine(m mouse.Controller, log logger.Logger, cb Callbacks) *Engine {
	return &Engine{
		mouse:  m,
		logger: log,
		cb:     cb,
	}
}

// Stats returns a snapshot safe to read while a run is active.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// Run executes the sequence until its loop count is exhausted or the context
// is cancelled. A cancelled run returns the context error.
func (e *Engine) Run(ctx context.Context, runID string, seq *models.Sequence, opts Options) error {
	opts = opts.withDefaults()

	e.mu.Lock()
	e.stats = Stats{RunID: runID, StartedAt: opts.Clock()}
	e.mu.Unlock()

	defer e.status("Stopped")

	e.status(fmt.Sprintf("Starting in %gs...", seq.StartDelay))
	if err := opts.Sleeper(ctx, secondsToDuration(seq.StartDelay)); err != nil {
		return err
	}

	points := seq.EnabledPoints()
	if len(points) == 0 {
		e.status("No enabled click points!")
		return ErrNoEnabledPoints
	}

	e.logger.Info("Sequencer", "run started", map[string]interface{}{
		"run_id":      runID,
		"points":      len(points),
		"loop_count":  seq.LoopCount,
		"start_delay": seq.StartDelay,
	})

	loop := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		loop++
		if seq.LoopCount > 0 && loop > seq.LoopCount {
			return nil
		}

		e.status(fmt.Sprintf("Running - Loop %d", loop))

		for i, p := range points {
			if err := e.clickPoint(ctx, i, p, opts); err != nil {
				return err
			}
		}

		e.mu.Lock()
		e.stats.Loops = loop
		e.mu.Unlock()

		if e.cb.OnLoopComplete != nil {
			e.cb.OnLoopComplete(loop)
		}
	}
}

// clickPoint moves to the point, verifies the cursor landed, clicks and
// waits the jittered delay.
func (e *Engine) clickPoint(ctx context.Context, index int, p models.ClickPoint, opts Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	x, y := p.ClickPosition(opts.Intn)
	e.mouse.Move(x, y)
	if err := opts.Sleeper(ctx, settleDelay); err != nil {
		return err
	}

	if opts.VerifyPosition {
		actualX, actualY := e.mouse.Position()
		if actualX != x || actualY != y {
			e.logger.Debug("Sequencer", "position drift corrected", map[string]interface{}{
				"intended_x": x,
				"intended_y": y,
				"actual_x":   actualX,
				"actual_y":   actualY,
			})
			e.mouse.Move(x, y)
			if err := opts.Sleeper(ctx, adjustDelay); err != nil {
				return err
			}
		}
	}

	e.mouse.Click()

	e.mu.Lock()
	e.stats.Clicks++
	clicks := e.stats.Clicks
	e.mu.Unlock()

	if opts.DebugClicks {
		finalX, finalY := e.mouse.Position()
		e.logger.Debug("Sequencer", "click performed", map[string]interface{}{
			"click":    clicks,
			"target_x": x,
			"target_y": y,
			"final_x":  finalX,
			"final_y":  finalY,
		})
	}

	if e.cb.OnClick != nil {
		e.cb.OnClick(index, x, y, clicks)
	}

	return opts.Sleeper(ctx, e.jitteredDelay(p.Delay, opts))
}

// jitteredDelay spreads the configured delay by ±5%, floored so even a
// minimal delay never becomes a tight loop.
func (e *Engine) jitteredDelay(seconds float64, opts Options) time.Duration {
	spread := seconds * delayJitter
	actual := seconds + (opts.Float64()*2-1)*spread

	d := secondsToDuration(actual)
	if d < minPointDelay {
		d = minPointDelay
	}
	return d
}

func (e *Engine) status(status string) {
	if e.cb.OnStatus != nil {
		e.cb.OnStatus(status)
	}
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
