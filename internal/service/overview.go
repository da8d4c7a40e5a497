package service

import (
	"context"
	"sort"

	"github.com/truledger/loanboard/internal/metrics"
	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/report"
	"github.com/truledger/loanboard/internal/schedule"
)

const upcomingLimit = 6

// Overview folds the caller's portfolio into the weekly dashboard aggregates
// as of the given date (today when empty).
func (s *Service) Overview(ctx context.Context, asOf string) (*models.Overview, error) {
	if asOf == "" {
		asOf = schedule.Today()
	}
	loans, err := s.Loans(ctx)
	if err != nil {
		return nil, err
	}
	reserves, err := s.Reserves(ctx)
	if err != nil {
		return nil, err
	}

	loanRecs := make([]schedule.Record, len(loans))
	labels := make([]string, len(loans))
	active, closed := 0, 0
	for i := range loans {
		loanRecs[i] = loans[i].Schedule()
		labels[i] = loans[i].Client
		if loanRecs[i].IsClosed() {
			closed++
		} else {
			active++
		}
	}
	reserveRecs := make([]schedule.Record, len(reserves))
	openReserves := 0
	for i := range reserves {
		reserveRecs[i] = reserves[i].Schedule()
		if !reserveRecs[i].IsClosed() {
			openReserves++
		}
	}
	metrics.OpenRecords.WithLabelValues("loan").Set(float64(active))
	metrics.OpenRecords.WithLabelValues("reserve").Set(float64(openReserves))

	weekDue, weekCount := report.WeekDueTotal(loanRecs, schedule.KindLoan, asOf)
	reserveDue, reserveCount := report.WeekDueTotal(reserveRecs, schedule.KindReserve, asOf)

	ov := &models.Overview{
		WeekLabel:        report.WeekRangeLabel(asOf),
		TotalOutstanding: report.OutstandingTotal(loanRecs),
		ActiveLoans:      active,
		ClosedLoans:      closed,
		WeekDueAmount:    weekDue,
		WeekDueCount:     weekCount,
		ReserveDueAmount: reserveDue,
		ReserveDueCount:  reserveCount,
		Upcoming:         upcomingLoans(loans, asOf),
		Breakdown:        report.Breakdown(labels, loanRecs),
	}
	return ov, nil
}

// upcomingLoans lists open loans not due this week, soonest first, capped.
func upcomingLoans(loans []models.Loan, asOf string) []models.UpcomingLoan {
	var upcoming []models.UpcomingLoan
	for i := range loans {
		rec := loans[i].Schedule()
		if rec.IsClosed() || schedule.DueThisWeek(rec, schedule.KindLoan, asOf) {
			continue
		}
		due, ok := schedule.NextDue(rec)
		if !ok {
			continue
		}
		upcoming = append(upcoming, models.UpcomingLoan{
			LoanID:  loans[i].ID,
			Client:  loans[i].Client,
			Amount:  loans[i].Installment,
			NextDue: due,
		})
	}
	sort.Slice(upcoming, func(i, j int) bool { return upcoming[i].NextDue < upcoming[j].NextDue })
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return upcoming
}
