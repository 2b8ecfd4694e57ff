package calendar

import "errors"

var (
	// ErrValidation is returned when a record is rejected at the input boundary. The store is left untouched.
	ErrValidation = errors.New("invalid record")
	// ErrNotFound is returned when an identifier is out of range.
	ErrNotFound = errors.New("record not found")
	// ErrIndexInconsistency is returned by DateIndex.Check when the index disagrees with the events.
	ErrIndexInconsistency = errors.New("date index inconsistent with events")
)
