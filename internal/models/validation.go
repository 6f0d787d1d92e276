package models

import (
	"fmt"
)

// ParameterRange defines the valid range for a numeric setting. The GUI
// sliders and the validators share these bounds.
type ParameterRange struct {
	Min  float64
	Max  float64
	Step float64
}

// Setting range keys.
const (
	RangeStartDelay  = "start_delay"
	RangeLoopCount   = "loop_count"
	RangePointDelay  = "delay"
	RangeRandomRange = "random_range"
)

// SettingRanges returns the valid ranges for all tunable settings.
func SettingRanges() map[string]ParameterRange {
	return map[string]ParameterRange{
		RangeStartDelay:  {Min: 0.5, Max: 30.0, Step: 0.5},
		RangeLoopCount:   {Min: 0, Max: 9999, Step: 1},
		RangePointDelay:  {Min: 0.1, Max: 300.0, Step: 0.1},
		RangeRandomRange: {Min: 0, Max: 50, Step: 1},
	}
}

// ValidationError represents a parameter validation error.
type ValidationError struct {
	Parameter string
	Value     interface{}
	Message   string
}

// NewValidationError creates a new validation error.
func NewValidationError(parameter string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Parameter: parameter,
		Value:     value,
		Message:   message,
	}
}

// Error returns the error message.
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for parameter '%s' with value '%v': %s",
		ve.Parameter, ve.Value, ve.Message)
}

// Validate checks the point's settings against their ranges.
func (p ClickPoint) Validate() error {
	if p.X < 0 {
		return NewValidationError("x", p.X, "coordinate below zero")
	}
	if p.Y < 0 {
		return NewValidationError("y", p.Y, "coordinate below zero")
	}
	if err := checkRange(RangePointDelay, p.Delay); err != nil {
		return err
	}
	return checkRange(RangeRandomRange, float64(p.RandomRange))
}

// Validate checks the sequence's run settings and every point. An empty
// sequence is valid; running it is rejected at start time instead.
func (s *Sequence) Validate() error {
	if err := checkRange(RangeStartDelay, s.StartDelay); err != nil {
		return err
	}
	if err := checkRange(RangeLoopCount, float64(s.LoopCount)); err != nil {
		return err
	}

	for i, p := range s.Points {
		if err := p.Validate(); err != nil {
			if ve, ok := err.(*ValidationError); ok {
				return NewValidationError(
					fmt.Sprintf("points[%d].%s", i, ve.Parameter), ve.Value, ve.Message)
			}
			return err
		}
	}

	return nil
}

func checkRange(name string, value float64) error {
	ranges := SettingRanges()
	r, ok := ranges[name]
	if !ok {
		return nil
	}

	if value < r.Min {
		return NewValidationError(name, value, "value below minimum")
	}
	if value > r.Max {
		return NewValidationError(name, value, "value above maximum")
	}
	return nil
}
