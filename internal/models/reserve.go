package models

import "github.com/truledger/loanboard/internal/schedule"

// Reserve represents a periodic deduction schedule
type Reserve struct {
	ID             int64    `json:"id"`
	OwnerID        string   `json:"owner_id"`
	Client         string   `json:"client"`
	Amount         float64  `json:"amount"`
	Installments   int      `json:"installments"`
	Date           string   `json:"date"` // Format: YYYY-MM-DD
	FreqDays       int      `json:"freq_days"`
	Note           string   `json:"note"`
	PaidCount      int      `json:"paid_count"`
	DeductionDates []string `json:"deduction_dates"`
	DeductionNotes []string `json:"deduction_notes"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// PerDeduction is the amount taken per deduction: amount / installments.
func (r *Reserve) PerDeduction() float64 {
	return schedule.EventAmountFor(r.Amount, 0, r.Installments)
}

// Schedule returns the generic schedule view of the reserve.
func (r *Reserve) Schedule() schedule.Record {
	return schedule.Record{
		Principal:      r.Amount,
		EventAmount:    r.PerDeduction(),
		EventCount:     r.Installments,
		CompletedCount: r.PaidCount,
		Start:          r.Date,
		FrequencyDays:  r.FreqDays,
		ActualDates:    r.DeductionDates,
		EventNotes:     r.DeductionNotes,
	}
}

// ApplySchedule writes a mutated schedule record back onto the reserve.
func (r *Reserve) ApplySchedule(rec schedule.Record) {
	r.PaidCount = rec.CompletedCount
	r.DeductionDates = rec.ActualDates
	r.DeductionNotes = rec.EventNotes
}
