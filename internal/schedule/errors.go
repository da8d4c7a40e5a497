package schedule

import "errors"

var (
	// ErrAlreadyComplete signals RecordNextEvent on a closed record. Not
	// fatal; the record is returned unchanged alongside it.
	ErrAlreadyComplete = errors.New("schedule already complete")

	// ErrNothingToReverse signals ReverseLastEvent with no recorded events.
	ErrNothingToReverse = errors.New("no recorded events to reverse")

	// ErrInvalidIndex signals an event index outside [0, eventCount).
	ErrInvalidIndex = errors.New("event index out of range")

	// ErrMalformedRecord signals a stored record whose counters and arrays
	// disagree. The engine refuses to compute on such input rather than
	// guess; the caller owns repairing the stored data.
	ErrMalformedRecord = errors.New("malformed schedule record")
)
