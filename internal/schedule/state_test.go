package schedule

import "testing"

func weeklyLoan(count, completed int, actual []string) Record {
	return Record{
		Principal:      1000,
		EventAmount:    250,
		EventCount:     count,
		CompletedCount: completed,
		Start:          "2024-01-01",
		FrequencyDays:  7,
		ActualDates:    actual,
	}
}

func TestNextDueFreshSchedule(t *testing.T) {
	// Scenario: no payments yet, next due is the original start date.
	r := weeklyLoan(4, 0, nil)
	due, ok := NextDue(r)
	if !ok || due != "2024-01-01" {
		t.Errorf("NextDue = (%q, %v), want (2024-01-01, true)", due, ok)
	}
}

func TestNextDueFollowsLastActualDate(t *testing.T) {
	r := weeklyLoan(4, 2, []string{"2024-01-01", "2024-01-08"})
	due, ok := NextDue(r)
	if !ok || due != "2024-01-15" {
		t.Errorf("NextDue = (%q, %v), want (2024-01-15, true)", due, ok)
	}
}

func TestNextDueRebasesOffLatePayment(t *testing.T) {
	// A late payment rebases the next due date off the actual date,
	// not the rigid calendar.
	r := weeklyLoan(4, 1, []string{"2024-01-20"})
	due, ok := NextDue(r)
	if !ok || due != "2024-01-27" {
		t.Errorf("NextDue after late payment = (%q, %v), want (2024-01-27, true)", due, ok)
	}
}

func TestNextDueNoneIffClosed(t *testing.T) {
	open := weeklyLoan(4, 3, []string{"2024-01-01", "2024-01-08", "2024-01-15"})
	if _, ok := NextDue(open); !ok {
		t.Error("open record should have a next due date")
	}
	closed := weeklyLoan(4, 4, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"})
	if due, ok := NextDue(closed); ok {
		t.Errorf("closed record should have no next due date, got %q", due)
	}
}

func TestOverdueCountAgainstOriginalCalendar(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		actual    []string
		asOf      string
		want      int
	}{
		{"before start", 0, nil, "2023-12-25", 0},
		{"on start date nothing passed yet", 0, nil, "2024-01-01", 0},
		{"two events behind", 0, nil, "2024-01-15", 2},
		{"caught up", 2, []string{"2024-01-01", "2024-01-08"}, "2024-01-15", 0},
		{"far future clamps to remaining", 1, []string{"2024-01-01"}, "2025-06-01", 3},
		{"day after first due", 0, nil, "2024-01-02", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := weeklyLoan(4, tt.completed, tt.actual)
			if got := OverdueCount(r, tt.asOf); got != tt.want {
				t.Errorf("OverdueCount(asOf=%s) = %d, want %d", tt.asOf, got, tt.want)
			}
		})
	}
}

func TestOverdueIgnoresCatchUpRebasing(t *testing.T) {
	// One late payment on Jan 20 rebases NextDue to Jan 27, but overdue
	// still counts against the original calendar: events #1 and #2 (Jan 8,
	// Jan 15) passed with only one completion on the books.
	r := weeklyLoan(4, 1, []string{"2024-01-20"})
	if got := OverdueCount(r, "2024-01-21"); got != 2 {
		t.Errorf("OverdueCount = %d, want 2 (original calendar, not rebased)", got)
	}
	due, _ := NextDue(r)
	if due != "2024-01-27" {
		t.Errorf("NextDue = %q, want rebased 2024-01-27", due)
	}
}

func TestOverduePlusCompletedNeverExceedsEventCount(t *testing.T) {
	for completed := 0; completed <= 4; completed++ {
		actual := make([]string, completed)
		for i := range actual {
			actual[i] = addDays("2024-01-01", i*7)
		}
		r := weeklyLoan(4, completed, actual)
		for _, asOf := range []string{"2023-01-01", "2024-01-01", "2024-02-01", "2030-01-01"} {
			if got := OverdueCount(r, asOf); got+completed > 4 {
				t.Errorf("completed=%d asOf=%s: overdue %d + completed exceeds event count", completed, asOf, got)
			}
		}
	}
}

func TestDueThisWeekLoanStrictContainment(t *testing.T) {
	// asOf Wednesday 2024-01-17, week is Jan 15 - Jan 21.
	asOf := "2024-01-17"

	inWeek := weeklyLoan(4, 2, []string{"2024-01-01", "2024-01-11"}) // next due Jan 18
	if !DueThisWeek(inWeek, KindLoan, asOf) {
		t.Error("loan due inside the week should be due this week")
	}

	overdue := weeklyLoan(4, 0, nil) // next due Jan 1, long past
	if DueThisWeek(overdue, KindLoan, asOf) {
		t.Error("overdue loan outside the week must NOT count as due this week")
	}

	future := weeklyLoan(4, 1, []string{"2024-01-16"}) // next due Jan 23
	if DueThisWeek(future, KindLoan, asOf) {
		t.Error("loan due next week should not be due this week")
	}
}

func TestDueThisWeekReserveFoldsInOverdue(t *testing.T) {
	asOf := "2024-01-17"

	overdue := weeklyLoan(4, 0, nil) // next due Jan 1, long past
	if !DueThisWeek(overdue, KindReserve, asOf) {
		t.Error("overdue reserve must count as due this week")
	}

	justRecorded := weeklyLoan(4, 1, []string{asOf}) // deducted today, next due Jan 24
	if DueThisWeek(justRecorded, KindReserve, asOf) {
		t.Error("reserve deducted today must not re-trigger as due")
	}

	future := weeklyLoan(4, 1, []string{"2024-01-16"}) // next due Jan 23
	if DueThisWeek(future, KindReserve, asOf) {
		t.Error("reserve due next week should not be due this week")
	}
}

func TestDueThisWeekClosed(t *testing.T) {
	closed := weeklyLoan(2, 2, []string{"2024-01-01", "2024-01-08"})
	for _, k := range []Kind{KindLoan, KindReserve} {
		if DueThisWeek(closed, k, "2024-01-17") {
			t.Errorf("closed record (kind %d) should never be due", k)
		}
	}
}

func TestDueNow(t *testing.T) {
	asOf := "2024-01-17"

	overdue := weeklyLoan(4, 0, nil)
	if !DueNow(overdue, asOf) {
		t.Error("past-due reserve should be due now")
	}

	justRecorded := weeklyLoan(4, 1, []string{asOf})
	if DueNow(justRecorded, asOf) {
		t.Error("reserve deducted today should not be due now")
	}

	dueToday := weeklyLoan(4, 1, []string{"2024-01-10"}) // next due Jan 17 == asOf
	if !DueNow(dueToday, asOf) {
		t.Error("reserve due exactly today should be due now")
	}

	closed := weeklyLoan(2, 2, []string{"2024-01-01", "2024-01-08"})
	if DueNow(closed, asOf) {
		t.Error("closed reserve should not be due now")
	}
}

func TestRemaining(t *testing.T) {
	// Reserve of 1000 over 4 deductions, two recorded.
	r := Record{
		Principal:      1000,
		EventAmount:    250,
		EventCount:     4,
		CompletedCount: 2,
		Start:          "2024-01-01",
		FrequencyDays:  7,
		ActualDates:    []string{"2024-01-01", "2024-01-08"},
	}
	if got := Remaining(r); got != 500 {
		t.Errorf("Remaining = %v, want 500", got)
	}

	// Fee-inflated installments can overshoot the principal; floor at zero.
	over := Record{
		Principal:      1000,
		EventAmount:    220,
		EventCount:     5,
		CompletedCount: 5,
		Start:          "2024-01-01",
		FrequencyDays:  7,
		ActualDates:    []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"},
		ProviderFee:    100,
	}
	if got := Remaining(over); got != 0 {
		t.Errorf("Remaining = %v, want 0 (floored)", got)
	}
}

func TestEventAmountBlendsProviderFee(t *testing.T) {
	if got := EventAmountFor(1000, 100, 5); got != 220 {
		t.Errorf("EventAmountFor(1000, 100, 5) = %v, want 220", got)
	}
	if got := EventAmountFor(1000, 0, 4); got != 250 {
		t.Errorf("EventAmountFor(1000, 0, 4) = %v, want 250", got)
	}
}

func TestEffectivePrincipal(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	r.ProviderFee = 100
	if got := EffectivePrincipal(r); got != 1100 {
		t.Errorf("EffectivePrincipal = %v, want 1100", got)
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{"zero event count", func(r *Record) { r.EventCount = 0 }},
		{"negative completed", func(r *Record) { r.CompletedCount = -1; r.ActualDates = nil }},
		{"completed beyond count", func(r *Record) { r.CompletedCount = 9 }},
		{"dates shorter than counter", func(r *Record) { r.ActualDates = nil }},
		{"dates longer than counter", func(r *Record) { r.ActualDates = append(r.ActualDates, "2024-02-01") }},
		{"zero frequency", func(r *Record) { r.FrequencyDays = 0 }},
		{"garbage start date", func(r *Record) { r.Start = "January 1st" }},
		{"garbage actual date", func(r *Record) { r.ActualDates[0] = "01/01/2024" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := weeklyLoan(4, 2, []string{"2024-01-01", "2024-01-08"})
			tt.mutate(&r)
			if err := Validate(r); err == nil {
				t.Error("Validate should reject the record")
			}
		})
	}
}

func TestComputeRefusesMalformed(t *testing.T) {
	r := weeklyLoan(4, 2, []string{"2024-01-01"}) // counter disagrees with history
	if _, err := Compute(r, KindLoan, "2024-01-17"); err == nil {
		t.Error("Compute should refuse a malformed record")
	}
}

func TestComputeState(t *testing.T) {
	r := weeklyLoan(4, 0, nil)
	st, err := Compute(r, KindLoan, "2024-01-15")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if st.Closed {
		t.Error("record should be open")
	}
	if st.NextDue != "2024-01-01" {
		t.Errorf("NextDue = %q, want 2024-01-01", st.NextDue)
	}
	if st.OverdueCount != 2 {
		t.Errorf("OverdueCount = %d, want 2", st.OverdueCount)
	}
	if st.Remaining != 1000 {
		t.Errorf("Remaining = %v, want 1000", st.Remaining)
	}
	if st.DueNow {
		t.Error("DueNow should stay false for loans")
	}
}
