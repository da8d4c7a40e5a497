package report

import (
	"testing"

	"github.com/truledger/loanboard/internal/schedule"
)

func rec(amount float64, count, completed int, actual []string) schedule.Record {
	return schedule.Record{
		Principal:      amount * float64(count),
		EventAmount:    amount,
		EventCount:     count,
		CompletedCount: completed,
		Start:          "2024-01-15",
		FrequencyDays:  7,
		ActualDates:    actual,
	}
}

func TestWeekDueTotal(t *testing.T) {
	asOf := "2024-01-17" // week Jan 15 - Jan 21
	records := []schedule.Record{
		rec(100, 4, 0, nil), // due Jan 15, in week
		rec(250, 4, 0, nil), // due Jan 15, in week
		{ // due Jan 23, outside week
			Principal: 400, EventAmount: 100, EventCount: 4, CompletedCount: 1,
			Start: "2024-01-15", FrequencyDays: 7, ActualDates: []string{"2024-01-16"},
		},
		rec(500, 2, 2, []string{"2024-01-15", "2024-01-16"}), // closed
	}
	total, count := WeekDueTotal(records, schedule.KindLoan, asOf)
	if total != 350 || count != 2 {
		t.Errorf("WeekDueTotal = (%v, %d), want (350, 2)", total, count)
	}
}

func TestWeekDueTotalReserveCountsOverdue(t *testing.T) {
	asOf := "2024-03-01"
	records := []schedule.Record{rec(100, 4, 0, nil)} // due Jan 15, long past
	loanTotal, _ := WeekDueTotal(records, schedule.KindLoan, asOf)
	if loanTotal != 0 {
		t.Errorf("loan strategy should exclude overdue, got %v", loanTotal)
	}
	resTotal, resCount := WeekDueTotal(records, schedule.KindReserve, asOf)
	if resTotal != 100 || resCount != 1 {
		t.Errorf("reserve strategy should include overdue, got (%v, %d)", resTotal, resCount)
	}
}

func TestWeekDueTotalCentsStayExact(t *testing.T) {
	// 0.1 + 0.2 style float drift must not leak into the total.
	records := make([]schedule.Record, 10)
	for i := range records {
		records[i] = rec(0.1, 4, 0, nil)
	}
	total, _ := WeekDueTotal(records, schedule.KindLoan, "2024-01-17")
	if total != 1.0 {
		t.Errorf("total = %v, want exactly 1.0", total)
	}
}

func TestOutstandingTotal(t *testing.T) {
	records := []schedule.Record{
		rec(250, 4, 2, []string{"2024-01-15", "2024-01-22"}), // 500 left
		rec(100, 4, 0, nil),                                  // 400 left
		rec(500, 2, 2, []string{"2024-01-15", "2024-01-16"}), // closed, skipped
	}
	if got := OutstandingTotal(records); got != 900 {
		t.Errorf("OutstandingTotal = %v, want 900", got)
	}
}

func TestWeekRangeLabel(t *testing.T) {
	if got := WeekRangeLabel("2024-01-17"); got != "15 Jan – 21 Jan" {
		t.Errorf("WeekRangeLabel = %q, want %q", got, "15 Jan – 21 Jan")
	}
	// Sunday belongs to the week ending that day.
	if got := WeekRangeLabel("2024-01-21"); got != "15 Jan – 21 Jan" {
		t.Errorf("WeekRangeLabel on Sunday = %q, want %q", got, "15 Jan – 21 Jan")
	}
}

func TestBreakdown(t *testing.T) {
	records := make([]schedule.Record, 9)
	labels := make([]string, 9)
	for i := range records {
		records[i] = rec(100, 4, 0, nil)
		labels[i] = "client"
	}
	records[3] = rec(100, 2, 2, []string{"2024-01-15", "2024-01-22"}) // closed

	slices := Breakdown(labels, records)
	if len(slices) != 8 {
		t.Fatalf("len(slices) = %d, want 8 (closed record skipped)", len(slices))
	}
	for i, s := range slices {
		if s.Color != Palette[i%len(Palette)] {
			t.Errorf("slice %d color = %q, want cyclic %q", i, s.Color, Palette[i%len(Palette)])
		}
		if s.Remaining != 400 {
			t.Errorf("slice %d remaining = %v, want 400", i, s.Remaining)
		}
	}
	// Eighth slice wraps around the 7-color palette.
	if slices[7].Color != Palette[0] {
		t.Errorf("palette should cycle, slice 7 color = %q", slices[7].Color)
	}
}
