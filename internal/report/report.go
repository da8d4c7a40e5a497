// Package report folds collections of schedules into portfolio aggregates.
// Money totals are summed with decimals and rounded to cents so large
// portfolios don't accumulate float noise.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/schedule"
)

// Palette is the cyclic color assignment for portfolio breakdown slices.
var Palette = []string{"#4f8ef7", "#7c5cfc", "#2ecc8f", "#f75f5f", "#f7c34f", "#f77f4f", "#4fc3f7"}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// WeekDueTotal sums the per-event amount of every record due in the week
// containing asOf, under the given kind's due strategy.
func WeekDueTotal(records []schedule.Record, k schedule.Kind, asOf string) (total float64, count int) {
	sum := decimal.Zero
	for _, r := range records {
		if schedule.DueThisWeek(r, k, asOf) {
			sum = sum.Add(decimal.NewFromFloat(r.EventAmount))
			count++
		}
	}
	return toFloat(sum), count
}

// OutstandingTotal sums the remaining balance of every open record.
func OutstandingTotal(records []schedule.Record) float64 {
	sum := decimal.Zero
	for _, r := range records {
		if r.IsClosed() {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(schedule.Remaining(r)))
	}
	return toFloat(sum)
}

// WeekRangeLabel renders the Monday-to-Sunday week containing asOf for
// display, e.g. "15 Jan – 21 Jan".
func WeekRangeLabel(asOf string) string {
	start, end := schedule.WeekBounds(asOf)
	return shortDate(start) + " – " + shortDate(end)
}

func shortDate(d string) string {
	t, err := schedule.ParseDate(d)
	if err != nil {
		return d
	}
	return t.Format("02 Jan")
}

// Breakdown pairs each open record's remaining balance with a palette color
// by position. labels must run parallel to records.
func Breakdown(labels []string, records []schedule.Record) []models.BreakdownSlice {
	slices := make([]models.BreakdownSlice, 0, len(records))
	for i, r := range records {
		if r.IsClosed() {
			continue
		}
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		slices = append(slices, models.BreakdownSlice{
			Label:     label,
			Remaining: schedule.Remaining(r),
			Color:     Palette[len(slices)%len(Palette)],
		})
	}
	return slices
}
