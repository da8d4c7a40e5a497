package models

import (
	"strings"

	"github.com/truledger/loanboard/internal/schedule"
)

// DefaultProvider is the display label used when a loan has no custom
// provider name.
const DefaultProvider = "TruFunding"

// Loan represents an installment loan
type Loan struct {
	ID                int64    `json:"id"`
	OwnerID           string   `json:"owner_id"`
	Client            string   `json:"client"`
	Ref               string   `json:"ref"`
	Total             float64  `json:"total"`
	Installment       float64  `json:"installment"`
	PaidCount         int      `json:"paid_count"`
	TotalInstallments int      `json:"total_installments"`
	StartDate         string   `json:"start_date"` // Format: YYYY-MM-DD
	FreqDays          int      `json:"freq_days"`
	PaymentDates      []string `json:"payment_dates"`
	PaymentNotes      []string `json:"payment_notes"`
	Note              string   `json:"note"`
	ProviderType      string   `json:"provider_type"`
	ProviderName      string   `json:"provider_name"`
	FactoringFee      float64  `json:"factoring_fee"`
	Hidden            bool     `json:"hidden"`
	CreatedAt         string   `json:"created_at"`
	UpdatedAt         string   `json:"updated_at"`
}

// Schedule returns the generic schedule view of the loan.
func (l *Loan) Schedule() schedule.Record {
	return schedule.Record{
		Principal:      l.Total,
		EventAmount:    l.Installment,
		EventCount:     l.TotalInstallments,
		CompletedCount: l.PaidCount,
		Start:          l.StartDate,
		FrequencyDays:  l.FreqDays,
		ActualDates:    l.PaymentDates,
		EventNotes:     l.PaymentNotes,
		ProviderFee:    l.FactoringFee,
	}
}

// ApplySchedule writes a mutated schedule record back onto the loan.
func (l *Loan) ApplySchedule(rec schedule.Record) {
	l.PaidCount = rec.CompletedCount
	l.PaymentDates = rec.ActualDates
	l.PaymentNotes = rec.EventNotes
}

// ProviderDisplay returns the provider label: the custom name when the
// provider type is Other and a name is set, the default otherwise.
func (l *Loan) ProviderDisplay() string {
	if l.ProviderType == "Other" {
		if name := strings.TrimSpace(l.ProviderName); name != "" {
			return name
		}
	}
	return DefaultProvider
}

// EffectiveTotal is total plus factoring fee, for display.
func (l *Loan) EffectiveTotal() float64 {
	return l.Total + l.FactoringFee
}

// BasePerInstallment is the per-installment amount before the factoring fee.
func (l *Loan) BasePerInstallment() float64 {
	n := l.TotalInstallments
	if n < 1 {
		n = 1
	}
	return l.Total / float64(n)
}

// FeePerInstallment is the factoring fee share of each installment.
func (l *Loan) FeePerInstallment() float64 {
	n := l.TotalInstallments
	if n < 1 {
		n = 1
	}
	return l.FactoringFee / float64(n)
}
