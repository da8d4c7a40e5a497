package schedule

import "fmt"

// Kind selects the due-this-week strategy. Loans use strict week containment;
// reserves additionally count a past-due date as due and suppress on the day
// the last deduction was recorded. The asymmetry is deliberate.
type Kind int

const (
	KindLoan Kind = iota
	KindReserve
)

// Record is the generic schedule shape shared by loans and reserves.
// CompletedCount is the authoritative counter; ActualDates must match its
// length after every mutation.
type Record struct {
	Principal      float64
	EventAmount    float64
	EventCount     int
	CompletedCount int
	Start          string
	FrequencyDays  int
	ActualDates    []string
	EventNotes     []string
	ProviderFee    float64
}

// State is the derived view of a record at a given asOf date.
type State struct {
	NextDue      string
	Closed       bool
	OverdueCount int
	DueThisWeek  bool
	DueNow       bool
	Remaining    float64
}

// Validate checks the invariants every calculator and mutation relies on.
// All failures wrap ErrMalformedRecord.
func Validate(r Record) error {
	if r.EventCount < 1 {
		return fmt.Errorf("%w: event count %d", ErrMalformedRecord, r.EventCount)
	}
	if r.CompletedCount < 0 || r.CompletedCount > r.EventCount {
		return fmt.Errorf("%w: completed count %d of %d", ErrMalformedRecord, r.CompletedCount, r.EventCount)
	}
	if len(r.ActualDates) != r.CompletedCount {
		return fmt.Errorf("%w: %d actual dates for completed count %d", ErrMalformedRecord, len(r.ActualDates), r.CompletedCount)
	}
	if r.FrequencyDays < 1 {
		return fmt.Errorf("%w: frequency %d days", ErrMalformedRecord, r.FrequencyDays)
	}
	if _, err := ParseDate(r.Start); err != nil {
		return fmt.Errorf("%w: start date: %v", ErrMalformedRecord, err)
	}
	for _, d := range r.ActualDates {
		if _, err := ParseDate(d); err != nil {
			return fmt.Errorf("%w: actual date: %v", ErrMalformedRecord, err)
		}
	}
	return nil
}

// IsClosed reports whether every scheduled event has been recorded.
func (r Record) IsClosed() bool {
	return r.CompletedCount >= r.EventCount
}

// NextDue returns the next nominal due date, or ok=false once the record is
// closed. When actual dates exist the schedule rebases off the most recent
// one (catch-up semantics), so a late payment does not compound lateness for
// the events after it. The record must satisfy Validate.
func NextDue(r Record) (date string, ok bool) {
	if r.IsClosed() {
		return "", false
	}
	if n := len(r.ActualDates); n > 0 {
		return addDays(r.ActualDates[n-1], r.FrequencyDays), true
	}
	return addDays(r.Start, r.CompletedCount*r.FrequencyDays), true
}

// DueThisWeek reports whether the record's next due date falls in the
// Monday-to-Sunday week containing asOf. For reserves a past-due date also
// counts, and the record is not due on the day its last deduction was
// recorded; loans use strict containment only.
func DueThisWeek(r Record, k Kind, asOf string) bool {
	due, ok := NextDue(r)
	if !ok {
		return false
	}
	if k == KindReserve {
		if n := len(r.ActualDates); n > 0 && SameDay(r.ActualDates[n-1], asOf) {
			return false
		}
		if due <= asOf {
			return true
		}
	}
	start, end := WeekBounds(asOf)
	return WithinRange(due, start, end)
}

// DueNow reports whether a reserve's next deduction is due on or before asOf,
// suppressed on the day the last deduction was recorded.
func DueNow(r Record, asOf string) bool {
	due, ok := NextDue(r)
	if !ok {
		return false
	}
	if n := len(r.ActualDates); n > 0 && SameDay(r.ActualDates[n-1], asOf) {
		return false
	}
	return due <= asOf
}

// OverdueCount counts events whose nominal due date, on the original
// start + k*frequency calendar, has passed by asOf without being completed.
// It deliberately ignores the catch-up rebasing NextDue applies: overdue
// reflects distance behind the nominal plan and must not be fooled by a
// single late-but-caught-up payment.
func OverdueCount(r Record, asOf string) int {
	if r.IsClosed() {
		return 0
	}
	start, err := ParseDate(r.Start)
	if err != nil {
		return 0
	}
	today, err := ParseDate(asOf)
	if err != nil {
		return 0
	}
	days := int(today.Sub(start).Hours() / 24)
	if days <= 0 {
		return 0
	}
	// Event #k is due at start + k*frequency; count those strictly before asOf.
	dueByNow := (days-1)/r.FrequencyDays + 1
	if dueByNow > r.EventCount {
		dueByNow = r.EventCount
	}
	overdue := dueByNow - r.CompletedCount
	if overdue < 0 {
		return 0
	}
	return overdue
}

// Remaining returns the balance still to be recovered, floored at zero.
func Remaining(r Record) float64 {
	rem := r.Principal - float64(r.CompletedCount)*r.EventAmount
	if rem < 0 {
		return 0
	}
	return rem
}

// EffectivePrincipal returns the principal with the provider fee blended in.
// Reserves carry no fee, so for them this equals the principal.
func EffectivePrincipal(r Record) float64 {
	return r.Principal + r.ProviderFee
}

// EventAmountFor derives the per-event amount from a principal, provider fee
// and event count. A count below one divides by one, matching how records are
// normalized at the store boundary.
func EventAmountFor(principal, providerFee float64, eventCount int) float64 {
	if eventCount < 1 {
		eventCount = 1
	}
	return (principal + providerFee) / float64(eventCount)
}

// Compute validates the record and derives its full state at asOf.
// DueNow is only populated for reserves.
func Compute(r Record, k Kind, asOf string) (State, error) {
	if err := Validate(r); err != nil {
		return State{}, err
	}
	due, _ := NextDue(r)
	st := State{
		NextDue:      due,
		Closed:       r.IsClosed(),
		OverdueCount: OverdueCount(r, asOf),
		DueThisWeek:  DueThisWeek(r, k, asOf),
		Remaining:    Remaining(r),
	}
	if k == KindReserve {
		st.DueNow = DueNow(r, asOf)
	}
	return st, nil
}
