package hotkeys

import (
	"strconv"
	"sync"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/logger"
)

const stopWait = 2 * time.Second

// Listener registers the global keyboard hook and pumps its events into the
// dispatcher. Only one listener can be active per process.
type Listener struct {
	dispatcher *Dispatcher
	logger     logger.Logger

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

func NewListener(d *Dispatcher, log logger.Logger) *Listener {
	return &Listener{
		dispatcher: d,
		logger:     log,
	}
}

// Start registers the bindings and spawns the hook event pump.
func (l *Listener) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return
	}
	l.started = true
	l.done = make(chan struct{})

	l.registerBindings()

	events := hook.Start()
	go func() {
		<-hook.Process(events)
		close(l.done)
	}()

	l.logger.Info("Hotkeys", "global hotkeys active", map[string]interface{}{
		"start": "F7", "stop": "F8", "capture": "F6", "exit_capture": "F9/Esc",
	})
}

func (l *Listener) registerBindings() {
	hook.Register(hook.KeyDown, []string{"f6"}, func(e hook.Event) {
		l.dispatcher.Capture()
	})
	hook.Register(hook.KeyDown, []string{"f7"}, func(e hook.Event) {
		l.dispatcher.Start()
	})
	hook.Register(hook.KeyDown, []string{"f8"}, func(e hook.Event) {
		l.dispatcher.Stop()
	})
	hook.Register(hook.KeyDown, []string{"f9"}, func(e hook.Event) {
		l.dispatcher.Exit()
	})
	hook.Register(hook.KeyDown, []string{"esc"}, func(e hook.Event) {
		l.dispatcher.Exit()
	})

	for i := 0; i <= 9; i++ {
		n := i
		hook.Register(hook.KeyDown, []string{strconv.Itoa(n)}, func(e hook.Event) {
			l.dispatcher.Digit(n)
		})
	}

	// Numpad digits arrive with raw keycodes the named registrations miss.
	hook.Register(hook.KeyDown, []string{}, func(e hook.Event) {
		if n, ok := numpadDigits[e.Rawcode]; ok {
			l.dispatcher.Digit(n)
		}
	})
}

// Shutdown ends the hook and waits briefly for the pump to drain.
func (l *Listener) Shutdown() {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return
	}
	done := l.done
	l.mu.Unlock()

	hook.End()

	select {
	case <-done:
	case <-time.After(stopWait):
		l.logger.Warning("Hotkeys", "hook did not stop in time", nil)
	}
}
