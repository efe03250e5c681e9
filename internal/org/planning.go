package org

import (
	"fmt"
	"strings"
	"time"
)

// Planning holds the timestamps of a planning line. At least one is set.
type Planning struct {
	Deadline  *Timestamp `json:"deadline,omitempty" yaml:"deadline,omitempty"`
	Scheduled *Timestamp `json:"scheduled,omitempty" yaml:"scheduled,omitempty"`
	Closed    *Timestamp `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// Timestamp is an active <...> or inactive [...] date, with optional clock.
type Timestamp struct {
	Active  bool      `json:"active" yaml:"active"`
	Date    time.Time `json:"date" yaml:"date"`
	HasTime bool      `json:"has_time" yaml:"has_time"`
	// Raw is the text between the brackets.
	Raw string `json:"raw" yaml:"raw"`
}

// ParsePlanning parses a line made only of DEADLINE:, SCHEDULED: and CLOSED:
// entries, each followed by a timestamp and used at most once. The returned
// rest starts right after the line; blank lines and indentation are kept.
func ParsePlanning(input string) (string, *Planning, error) {
	next, l := line(input)

	var p Planning
	s := strings.TrimSpace(l)
	if s == "" {
		return input, nil, ErrNoPlanning
	}

	for s != "" {
		slot, after, ok := p.slot(s)
		if !ok || *slot != nil {
			return input, nil, ErrNoPlanning
		}
		ts, after, err := parseTimestamp(strings.TrimLeft(after, " \t"))
		if err != nil {
			return input, nil, ErrNoPlanning
		}
		*slot = ts
		s = strings.TrimLeft(after, " \t")
	}

	return next, &p, nil
}

// slot picks the field named by the keyword at the start of s.
func (p *Planning) slot(s string) (**Timestamp, string, bool) {
	switch {
	case strings.HasPrefix(s, "DEADLINE:"):
		return &p.Deadline, s[len("DEADLINE:"):], true
	case strings.HasPrefix(s, "SCHEDULED:"):
		return &p.Scheduled, s[len("SCHEDULED:"):], true
	case strings.HasPrefix(s, "CLOSED:"):
		return &p.Closed, s[len("CLOSED:"):], true
	}
	return nil, s, false
}

// parseTimestamp reads "<2024-01-31 Wed 10:00 +1w>" or its [inactive] form.
// Day names, repeaters and delays are kept only in Raw.
func parseTimestamp(s string) (*Timestamp, string, error) {
	if s == "" {
		return nil, s, fmt.Errorf("empty timestamp")
	}

	var closing byte
	switch s[0] {
	case '<':
		closing = '>'
	case '[':
		closing = ']'
	default:
		return nil, s, fmt.Errorf("timestamp must start with < or [")
	}

	end := strings.IndexByte(s, closing)
	if end < 0 {
		return nil, s, fmt.Errorf("unterminated timestamp")
	}
	inner := s[1:end]

	fields := strings.Fields(inner)
	if len(fields) == 0 {
		return nil, s, fmt.Errorf("empty timestamp")
	}
	date, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return nil, s, fmt.Errorf("invalid timestamp date: %w", err)
	}

	ts := &Timestamp{Active: closing == '>', Date: date, Raw: inner}
	for _, f := range fields[1:] {
		// "10:00-11:30" keeps only the start.
		clock, _, _ := strings.Cut(f, "-")
		if c, err := time.Parse("15:04", clock); err == nil {
			ts.Date = date.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
			ts.HasTime = true
			break
		}
	}

	return ts, s[end+1:], nil
}

// Detach returns a deep copy of p; nil stays nil.
func (p *Planning) Detach() *Planning {
	if p == nil {
		return nil
	}
	return &Planning{
		Deadline:  p.Deadline.Detach(),
		Scheduled: p.Scheduled.Detach(),
		Closed:    p.Closed.Detach(),
	}
}

// Detach returns a deep copy of ts; nil stays nil.
func (ts *Timestamp) Detach() *Timestamp {
	if ts == nil {
		return nil
	}
	c := *ts
	c.Raw = strings.Clone(ts.Raw)
	return &c
}
