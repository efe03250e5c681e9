package org

import "errors"

var (
	// ErrNotHeadline is returned when the input does not start with a marker run.
	ErrNotHeadline = errors.New("input does not start with a headline marker")
	// ErrTagMismatch is returned when a drawer is present but is not a properties drawer.
	ErrTagMismatch = errors.New("drawer name mismatch")
	// ErrNoDrawer is returned when the input does not start with a complete drawer block.
	ErrNoDrawer = errors.New("no drawer block")
	// ErrNoPlanning is returned when the first line is not a planning line.
	ErrNoPlanning = errors.New("no planning line")
)
