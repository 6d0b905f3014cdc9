package gst

import "fmt"

// SentinelInInput is returned by AddString when the input already
// contains the tree's terminal sentinel byte.
type SentinelInInput struct {
	Sentinel byte
}

func (e SentinelInInput) Error() string {
	return fmt.Sprintf("input contains reserved sentinel byte %q", e.Sentinel)
}

// CapacityExhausted is returned by AddString once MaxStrings IDs have
// already been issued.
type CapacityExhausted struct {
	Max int
}

func (e CapacityExhausted) Error() string {
	return fmt.Sprintf("string capacity exhausted (max %d)", e.Max)
}

// InvariantViolation marks an internal invariant break: the driver
// found the tree in a state Ukkonen's algorithm should never produce.
// Per spec it is fatal, not recoverable; callers that hit it should
// discard the tree.
type InvariantViolation struct {
	Where string
}

func (e InvariantViolation) Error() string {
	return "gst: invariant violated in " + e.Where
}
