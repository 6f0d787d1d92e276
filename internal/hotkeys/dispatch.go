// Package hotkeys turns global key presses into app actions: start, stop and
// the rapid-add capture mode. The decode logic is separate from the OS hook
// so it can be driven directly in tests.
package hotkeys

import (
	"sync"

	"github.com/louisiaegerv/runescapeOSRS-autoclicker/internal/models"
)

// numpadDigits maps raw numpad keycodes to their digit values. These are the
// virtual-key codes the named top-row registrations do not cover.
var numpadDigits = map[uint16]int{
	96: 0, 97: 1, 98: 2, 99: 3, 100: 4,
	101: 5, 102: 6, 103: 7, 104: 8, 105: 9,
}

// Callbacks receive decoded hotkey actions. They are invoked on the hook
// goroutine and must hand off quickly.
type Callbacks struct {
	OnStart         func()                     // F7, outside rapid-add
	OnStop          func()                     // F8
	OnEnterRapidAdd func()                     // F6, first press
	OnCapture       func(delaySeconds float64) // F6 again or a digit, in rapid-add
	OnExitRapidAdd  func()                     // F9 or Esc
}

// Dispatcher holds the rapid-add state machine.
type Dispatcher struct {
	mu       sync.Mutex
	rapidAdd bool
	cb       Callbacks
}

func NewDispatcher(cb Callbacks) *Dispatcher {
	return &Dispatcher{cb: cb}
}

// RapidAdd reports whether capture mode is active.
func (d *Dispatcher) RapidAdd() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rapidAdd
}

// Capture handles F6: the first press enters rapid-add mode, further presses
// capture a point with the default delay.
func (d *Dispatcher) Capture() {
	d.mu.Lock()
	entering := !d.rapidAdd
	d.rapidAdd = true
	d.mu.Unlock()

	if entering {
		if d.cb.OnEnterRapidAdd != nil {
			d.cb.OnEnterRapidAdd()
		}
		return
	}

	if d.cb.OnCapture != nil {
		d.cb.OnCapture(models.DefaultRapidAddDelay)
	}
}

// Digit handles 0-9 while rapid-add is active, capturing a point with that
// many seconds of delay. Zero means ten seconds.
func (d *Dispatcher) Digit(n int) {
	if n < 0 || n > 9 || !d.RapidAdd() {
		return
	}

	delay := n
	if delay == 0 {
		delay = 10
	}

	if d.cb.OnCapture != nil {
		d.cb.OnCapture(float64(delay))
	}
}

// Start handles F7. Ignored while rapid-add is active so a stray press does
// not launch a run mid-capture.
func (d *Dispatcher) Start() {
	if d.RapidAdd() {
		return
	}
	if d.cb.OnStart != nil {
		d.cb.OnStart()
	}
}

// Stop handles F8.
func (d *Dispatcher) Stop() {
	if d.cb.OnStop != nil {
		d.cb.OnStop()
	}
}

// Exit handles F9 and Esc, leaving rapid-add mode.
func (d *Dispatcher) Exit() {
	d.mu.Lock()
	wasActive := d.rapidAdd
	d.rapidAdd = false
	d.mu.Unlock()

	if wasActive && d.cb.OnExitRapidAdd != nil {
		d.cb.OnExitRapidAdd()
	}
}
