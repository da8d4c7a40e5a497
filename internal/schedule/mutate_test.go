package schedule

import (
	"errors"
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestRecordNextEvent(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	out, err := RecordNextEvent(r, "2024-01-03", nil)
	if err != nil {
		t.Fatalf("RecordNextEvent: %v", err)
	}
	if out.CompletedCount != 1 {
		t.Errorf("CompletedCount = %d, want 1", out.CompletedCount)
	}
	if len(out.ActualDates) != 1 || out.ActualDates[0] != "2024-01-03" {
		t.Errorf("ActualDates = %v, want [2024-01-03]", out.ActualDates)
	}
	if r.CompletedCount != 0 || len(r.ActualDates) != 0 {
		t.Error("input record must not be mutated")
	}
}

func TestRecordNextEventWithNote(t *testing.T) {
	r := weeklyLoan(4, 1, []string{"2024-01-01"})
	out, err := RecordNextEvent(r, "2024-01-08", strPtr("wired early"))
	if err != nil {
		t.Fatalf("RecordNextEvent: %v", err)
	}
	if len(out.EventNotes) != 4 {
		t.Errorf("EventNotes length = %d, want padded to 4", len(out.EventNotes))
	}
	if out.EventNotes[1] != "wired early" {
		t.Errorf("note slot 1 = %q, want %q", out.EventNotes[1], "wired early")
	}
	if out.EventNotes[0] != "" || out.EventNotes[2] != "" {
		t.Error("other note slots must stay empty")
	}
}

func TestRecordNextEventWithoutNoteLeavesNotesAlone(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	r.EventNotes = []string{"first"}
	out, err := RecordNextEvent(r, "2024-01-01", nil)
	if err != nil {
		t.Fatalf("RecordNextEvent: %v", err)
	}
	if !reflect.DeepEqual(out.EventNotes, []string{"first"}) {
		t.Errorf("EventNotes = %v, want untouched [first]", out.EventNotes)
	}
}

func TestRecordNextEventOnClosed(t *testing.T) {
	r := weeklyLoan(2, 2, []string{"2024-01-01", "2024-01-08"})
	out, err := RecordNextEvent(r, "2024-01-15", nil)
	if !errors.Is(err, ErrAlreadyComplete) {
		t.Errorf("err = %v, want ErrAlreadyComplete", err)
	}
	if !reflect.DeepEqual(out, r) {
		t.Error("closed record must come back unchanged")
	}
}

func TestReverseRetainsNote(t *testing.T) {
	// Record-with-note then reverse: everything rolls back except the
	// reversed event's note, which is kept for history.
	r := weeklyLoan(4, 0, nil)
	recorded, err := RecordNextEvent(r, "2024-01-02", strPtr("partial cash"))
	if err != nil {
		t.Fatalf("RecordNextEvent: %v", err)
	}
	reversed, err := ReverseLastEvent(recorded)
	if err != nil {
		t.Fatalf("ReverseLastEvent: %v", err)
	}
	if reversed.CompletedCount != r.CompletedCount {
		t.Errorf("CompletedCount = %d, want %d", reversed.CompletedCount, r.CompletedCount)
	}
	if len(reversed.ActualDates) != 0 {
		t.Errorf("ActualDates = %v, want empty", reversed.ActualDates)
	}
	if len(reversed.EventNotes) == 0 || reversed.EventNotes[0] != "partial cash" {
		t.Errorf("EventNotes = %v, note must survive reversal", reversed.EventNotes)
	}
}

func TestReverseOnEmpty(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	out, err := ReverseLastEvent(r)
	if !errors.Is(err, ErrNothingToReverse) {
		t.Errorf("err = %v, want ErrNothingToReverse", err)
	}
	if !reflect.DeepEqual(out, r) {
		t.Error("record must come back unchanged")
	}
}

func TestForceComplete(t *testing.T) {
	r := weeklyLoan(4, 1, []string{"2024-01-01"})
	r.EventNotes = []string{"opening"}
	out, err := ForceComplete(r, "2024-02-01")
	if err != nil {
		t.Fatalf("ForceComplete: %v", err)
	}
	if out.CompletedCount != 4 {
		t.Errorf("CompletedCount = %d, want 4", out.CompletedCount)
	}
	want := []string{"2024-01-01", "2024-02-01", "2024-02-01", "2024-02-01"}
	if !reflect.DeepEqual(out.ActualDates, want) {
		t.Errorf("ActualDates = %v, want %v", out.ActualDates, want)
	}
	if !reflect.DeepEqual(out.EventNotes, []string{"opening", "", "", ""}) {
		t.Errorf("EventNotes = %v, want padded with empties", out.EventNotes)
	}
}

func TestForceCompleteIdempotent(t *testing.T) {
	r := weeklyLoan(4, 1, []string{"2024-01-01"})
	once, err := ForceComplete(r, "2024-02-01")
	if err != nil {
		t.Fatalf("ForceComplete: %v", err)
	}
	twice, err := ForceComplete(once, "2024-03-15")
	if err != nil {
		t.Fatalf("ForceComplete again: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second ForceComplete changed the record: %v vs %v", once, twice)
	}
}

func TestSetEventNoteRoundTrip(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	r.EventNotes = []string{"a", "b"}
	out, err := SetEventNote(r, 2, "x")
	if err != nil {
		t.Fatalf("SetEventNote: %v", err)
	}
	want := []string{"a", "b", "x", ""}
	if !reflect.DeepEqual(out.EventNotes, want) {
		t.Errorf("EventNotes = %v, want %v", out.EventNotes, want)
	}
	if out.CompletedCount != r.CompletedCount || len(out.ActualDates) != len(r.ActualDates) {
		t.Error("SetEventNote must not touch counters or dates")
	}
}

func TestSetEventNoteInvalidIndex(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	for _, idx := range []int{-1, 4, 99} {
		if _, err := SetEventNote(r, idx, "x"); !errors.Is(err, ErrInvalidIndex) {
			t.Errorf("index %d: err = %v, want ErrInvalidIndex", idx, err)
		}
	}
}

func TestMutationsRefuseMalformedRecord(t *testing.T) {
	r := weeklyLoan(4, 2, []string{"2024-01-01"}) // counter/history mismatch
	if _, err := RecordNextEvent(r, "2024-01-08", nil); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("RecordNextEvent err = %v, want ErrMalformedRecord", err)
	}
	if _, err := ReverseLastEvent(r); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("ReverseLastEvent err = %v, want ErrMalformedRecord", err)
	}
	if _, err := ForceComplete(r, "2024-01-08"); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("ForceComplete err = %v, want ErrMalformedRecord", err)
	}
	if _, err := SetEventNote(r, 0, "x"); !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("SetEventNote err = %v, want ErrMalformedRecord", err)
	}
}

func TestInvariantsAfterEveryMutation(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	var err error
	for i := 0; i < 4; i++ {
		r, err = RecordNextEvent(r, addDays("2024-01-01", i*7), nil)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if err := Validate(r); err != nil {
			t.Fatalf("invariants broken after record %d: %v", i, err)
		}
	}
	r, err = ReverseLastEvent(r)
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if err := Validate(r); err != nil {
		t.Fatalf("invariants broken after reverse: %v", err)
	}
	r, err = ForceComplete(r, "2024-02-01")
	if err != nil {
		t.Fatalf("force complete: %v", err)
	}
	if err := Validate(r); err != nil {
		t.Fatalf("invariants broken after force complete: %v", err)
	}
}
