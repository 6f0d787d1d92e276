package models

import (
	"strings"
	"testing"
)

func TestClickPointValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ClickPoint)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(p *ClickPoint) {}},
		{name: "negative x", mutate: func(p *ClickPoint) { p.X = -1 }, wantErr: "'x'"},
		{name: "negative y", mutate: func(p *ClickPoint) { p.Y = -5 }, wantErr: "'y'"},
		{name: "delay below minimum", mutate: func(p *ClickPoint) { p.Delay = 0.05 }, wantErr: "'delay'"},
		{name: "delay above maximum", mutate: func(p *ClickPoint) { p.Delay = 301 }, wantErr: "'delay'"},
		{name: "delay at minimum", mutate: func(p *ClickPoint) { p.Delay = 0.1 }},
		{name: "delay at maximum", mutate: func(p *ClickPoint) { p.Delay = 300 }},
		{name: "random range above maximum", mutate: func(p *ClickPoint) { p.RandomRange = 51 }, wantErr: "'random_range'"},
		{name: "random range at maximum", mutate: func(p *ClickPoint) { p.RandomRange = 50 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := NewClickPoint(100, 100)
			tc.mutate(&p)

			err := p.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid point, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %s, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %s, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestSequenceValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Sequence)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(s *Sequence) {}},
		{name: "start delay below minimum", mutate: func(s *Sequence) { s.StartDelay = 0.4 }, wantErr: "'start_delay'"},
		{name: "start delay above maximum", mutate: func(s *Sequence) { s.StartDelay = 31 }, wantErr: "'start_delay'"},
		{name: "loop count negative", mutate: func(s *Sequence) { s.LoopCount = -1 }, wantErr: "'loop_count'"},
		{name: "loop count above maximum", mutate: func(s *Sequence) { s.LoopCount = 10000 }, wantErr: "'loop_count'"},
		{name: "loop count zero means infinite", mutate: func(s *Sequence) { s.LoopCount = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq := NewSequence()
			seq.Points = []ClickPoint{NewClickPoint(10, 10)}
			tc.mutate(seq)

			err := seq.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid sequence, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error mentioning %s, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %s, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestSequenceValidateEmptyIsValid(t *testing.T) {
	if err := NewSequence().Validate(); err != nil {
		t.Fatalf("expected empty sequence to validate, got %v", err)
	}
}

func TestSequenceValidateNamesBadPoint(t *testing.T) {
	seq := NewSequence()
	seq.Points = []ClickPoint{
		NewClickPoint(10, 10),
		{X: 20, Y: 20, Delay: 0, Enabled: true},
	}

	err := seq.Validate()
	if err == nil {
		t.Fatalf("expected error for invalid point delay")
	}
	if !strings.Contains(err.Error(), "points[1].delay") {
		t.Fatalf("expected error naming points[1].delay, got %q", err.Error())
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("delay", 0.05, "value below minimum")

	want := "validation failed for parameter 'delay' with value '0.05': value below minimum"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestSettingRangesCoverAllKeys(t *testing.T) {
	ranges := SettingRanges()

	for _, key := range []string{RangeStartDelay, RangeLoopCount, RangePointDelay, RangeRandomRange} {
		r, ok := ranges[key]
		if !ok {
			t.Fatalf("expected range for %q", key)
		}
		if r.Min >= r.Max {
			t.Fatalf("expected min < max for %q, got %g >= %g", key, r.Min, r.Max)
		}
	}
}
