package schedule

import "fmt"

// Mutations never modify their input; each returns a new record value with
// freshly copied slices so the caller can persist it as a whole-row write.
// In terminal states they return the record unchanged with a sentinel error,
// so calling again is a deterministic no-op.

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// padNotes returns a copy of notes normalized to exactly n slots; missing
// slots become empty strings, excess slots are dropped.
func padNotes(notes []string, n int) []string {
	out := make([]string, n)
	copy(out, notes)
	return out
}

// RecordNextEvent marks the next event complete, appending asOf to the
// actual-date history. When note is non-nil it is written into the slot of
// the event being completed in the same update; combining the two writes is
// what prevents a separately-saved note and a mark-complete from racing and
// overwriting each other's stale copy of the record.
func RecordNextEvent(r Record, asOf string, note *string) (Record, error) {
	if err := Validate(r); err != nil {
		return r, err
	}
	if _, err := ParseDate(asOf); err != nil {
		return r, err
	}
	if r.IsClosed() {
		return r, ErrAlreadyComplete
	}
	out := r
	out.ActualDates = append(cloneStrings(r.ActualDates), asOf)
	if note != nil {
		notes := padNotes(r.EventNotes, r.EventCount)
		notes[r.CompletedCount] = *note
		out.EventNotes = notes
	} else {
		out.EventNotes = cloneStrings(r.EventNotes)
	}
	out.CompletedCount++
	return out, nil
}

// ReverseLastEvent undoes the most recently recorded event. The event's note
// is retained, not rolled back, so a reversed event keeps its annotation for
// history.
func ReverseLastEvent(r Record) (Record, error) {
	if err := Validate(r); err != nil {
		return r, err
	}
	if r.CompletedCount == 0 {
		return r, ErrNothingToReverse
	}
	out := r
	out.ActualDates = cloneStrings(r.ActualDates[:len(r.ActualDates)-1])
	out.EventNotes = cloneStrings(r.EventNotes)
	out.CompletedCount--
	return out, nil
}

// ForceComplete closes the record, filling every remaining event's actual
// date with asOf and padding notes to full length. Already-closed records
// come back unchanged, so applying it twice equals applying it once.
func ForceComplete(r Record, asOf string) (Record, error) {
	if err := Validate(r); err != nil {
		return r, err
	}
	if r.IsClosed() {
		return r, nil
	}
	if _, err := ParseDate(asOf); err != nil {
		return r, err
	}
	out := r
	dates := cloneStrings(r.ActualDates)
	for len(dates) < r.EventCount {
		dates = append(dates, asOf)
	}
	out.ActualDates = dates
	out.EventNotes = padNotes(r.EventNotes, r.EventCount)
	out.CompletedCount = r.EventCount
	return out, nil
}

// SetEventNote overwrites the note for one event slot, valid for any index in
// [0, eventCount) regardless of completion state. Counters and dates are
// untouched.
func SetEventNote(r Record, index int, note string) (Record, error) {
	if err := Validate(r); err != nil {
		return r, err
	}
	if index < 0 || index >= r.EventCount {
		return r, fmt.Errorf("%w: index %d of %d events", ErrInvalidIndex, index, r.EventCount)
	}
	out := r
	notes := padNotes(r.EventNotes, r.EventCount)
	notes[index] = note
	out.EventNotes = notes
	out.ActualDates = cloneStrings(r.ActualDates)
	return out, nil
}
