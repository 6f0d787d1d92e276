package models

import (
	"time"
)

const (
	// DefaultPointDelay is the wait after a click before the next one, in seconds.
	DefaultPointDelay = 8.0
	// DefaultStartDelay gives the user time to focus the game client, in seconds.
	DefaultStartDelay = 3.0
	// DefaultRapidAddDelay is assigned to points captured via the F6 hotkey, in seconds.
	DefaultRapidAddDelay = 3.0
)

// ClickPoint represents a single click location with its settings.
type ClickPoint struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Delay       float64 `json:"delay"` // seconds to wait AFTER this click
	Randomize   bool    `json:"randomize"`
	RandomRange int     `json:"random_range"` // offset range in pixels, per axis
	Enabled     bool    `json:"enabled"`
}

// NewClickPoint creates a click point at the given coordinates with defaults.
func NewClickPoint(x, y int) ClickPoint {
	return ClickPoint{
		X:       x,
		Y:       y,
		Delay:   DefaultPointDelay,
		Enabled: true,
	}
}

// ClickPosition returns the coordinates to click, applying the random offset
// when randomization is enabled. The rand source is injected so callers can
// pin it in tests; it must behave like math/rand Intn.
func (p ClickPoint) ClickPosition(intn func(int) int) (int, int) {
	if !p.Randomize || p.RandomRange <= 0 {
		return p.X, p.Y
	}

	span := 2*p.RandomRange + 1
	offsetX := intn(span) - p.RandomRange
	offsetY := intn(span) - p.RandomRange
	return p.X + offsetX, p.Y + offsetY
}

// Sequence is a named list of click points with its run settings. LoopCount
// zero means run until stopped.
type Sequence struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDelay  float64      `json:"start_delay"`
	LoopCount   int          `json:"loop_count"`
	Points      []ClickPoint `json:"click_points"`
	SavedAt     time.Time    `json:"saved_at"`
}

// NewSequence creates an empty sequence with default run settings.
func NewSequence() *Sequence {
	return &Sequence{
		StartDelay: DefaultStartDelay,
		LoopCount:  0,
	}
}

// EnabledPoints returns the subset of points that will actually be clicked,
// in order.
func (s *Sequence) EnabledPoints() []ClickPoint {
	enabled := make([]ClickPoint, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// Clone returns a deep copy so GUI edits never alias the running sequence.
func (s *Sequence) Clone() *Sequence {
	dst := *s
	dst.Points = make([]ClickPoint, len(s.Points))
	copy(dst.Points, s.Points)
	return &dst
}
