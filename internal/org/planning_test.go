package org

import (
	"testing"
	"time"
)

func TestParsePlanning(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantRest string
		check    func(*Planning) bool
	}{
		{
			name:  "scheduled with time",
			input: "SCHEDULED: <2024-05-06 Mon 09:15>",
			check: func(p *Planning) bool {
				s := p.Scheduled
				return s != nil && s.Active && s.HasTime &&
					s.Date.Equal(time.Date(2024, 5, 6, 9, 15, 0, 0, time.UTC)) &&
					s.Raw == "2024-05-06 Mon 09:15"
			},
		},
		{
			name:     "all three",
			input:    "  DEADLINE: <2024-01-31 Wed> SCHEDULED: <2024-01-20 Sat +1w> CLOSED: [2024-01-21 Sun 10:00]\n\n  Body",
			wantRest: "\n  Body",
			check: func(p *Planning) bool {
				return p.Deadline != nil && !p.Deadline.HasTime &&
					p.Scheduled != nil && p.Scheduled.Raw == "2024-01-20 Sat +1w" &&
					p.Closed != nil && !p.Closed.Active && p.Closed.HasTime
			},
		},
		{
			name:  "time range keeps start",
			input: "SCHEDULED: <2024-05-06 Mon 10:00-11:30>",
			check: func(p *Planning) bool {
				return p.Scheduled.HasTime && p.Scheduled.Date.Hour() == 10
			},
		},
		{
			name:    "duplicate keyword",
			input:   "DEADLINE: <2024-01-31> DEADLINE: <2024-02-01>",
			wantErr: true,
		},
		{
			name:    "unknown keyword",
			input:   "WHEN: <2024-01-31>",
			wantErr: true,
		},
		{
			name:    "missing timestamp",
			input:   "DEADLINE:",
			wantErr: true,
		},
		{
			name:    "bad date",
			input:   "DEADLINE: <tomorrow>",
			wantErr: true,
		},
		{
			name:    "unterminated",
			input:   "DEADLINE: <2024-01-31 Wed",
			wantErr: true,
		},
		{
			name:    "trailing text",
			input:   "DEADLINE: <2024-01-31 Wed> later",
			wantErr: true,
		},
		{
			name:    "blank line",
			input:   "\nSCHEDULED: <2024-01-31>",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, p, err := ParsePlanning(tt.input)
			if tt.wantErr {
				if err != ErrNoPlanning {
					t.Fatalf("ParsePlanning() error = %v, want ErrNoPlanning", err)
				}
				if rest != tt.input || p != nil {
					t.Errorf("ParsePlanning() consumed input on failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlanning() error = %v", err)
			}
			if rest != tt.wantRest {
				t.Errorf("ParsePlanning() rest = %q, want %q", rest, tt.wantRest)
			}
			if !tt.check(p) {
				t.Errorf("ParsePlanning() check failed for %+v", p)
			}
		})
	}
}

func TestPlanning_DetachNil(t *testing.T) {
	var p *Planning
	if p.Detach() != nil {
		t.Error("Detach() of nil planning should be nil")
	}
}
