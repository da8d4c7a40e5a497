// Package export renders a portfolio statement as XML for download.
package export

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/report"
	"github.com/truledger/loanboard/internal/schedule"
)

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// PortfolioXML builds an XML statement of every loan and reserve with its
// schedule state as of the given date.
func PortfolioXML(loans []models.Loan, reserves []models.Reserve, asOf string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("portfolio")
	root.CreateAttr("as_of", asOf)
	root.CreateAttr("week", report.WeekRangeLabel(asOf))

	loansEl := root.CreateElement("loans")
	loanRecs := make([]schedule.Record, len(loans))
	for i := range loans {
		l := &loans[i]
		rec := l.Schedule()
		loanRecs[i] = rec

		el := loansEl.CreateElement("loan")
		el.CreateAttr("id", fmt.Sprintf("%d", l.ID))
		el.CreateElement("client").SetText(l.Client)
		el.CreateElement("ref").SetText(l.Ref)
		el.CreateElement("provider").SetText(l.ProviderDisplay())
		el.CreateElement("total").SetText(money(l.Total))
		el.CreateElement("effective_total").SetText(money(l.EffectiveTotal()))
		el.CreateElement("installment").SetText(money(l.Installment))
		el.CreateElement("paid").SetText(fmt.Sprintf("%d of %d", l.PaidCount, l.TotalInstallments))
		el.CreateElement("remaining").SetText(money(schedule.Remaining(rec)))
		if due, ok := schedule.NextDue(rec); ok {
			el.CreateElement("next_due").SetText(due)
		}
		if overdue := schedule.OverdueCount(rec, asOf); overdue > 0 {
			el.CreateElement("overdue").SetText(fmt.Sprintf("%d", overdue))
		}
	}

	reservesEl := root.CreateElement("reserves")
	reserveRecs := make([]schedule.Record, len(reserves))
	for i := range reserves {
		r := &reserves[i]
		rec := r.Schedule()
		reserveRecs[i] = rec

		el := reservesEl.CreateElement("reserve")
		el.CreateAttr("id", fmt.Sprintf("%d", r.ID))
		el.CreateElement("client").SetText(r.Client)
		el.CreateElement("amount").SetText(money(r.Amount))
		el.CreateElement("per_deduction").SetText(money(r.PerDeduction()))
		el.CreateElement("deducted").SetText(fmt.Sprintf("%d of %d", r.PaidCount, r.Installments))
		el.CreateElement("remaining").SetText(money(schedule.Remaining(rec)))
		if due, ok := schedule.NextDue(rec); ok {
			el.CreateElement("next_due").SetText(due)
		}
	}

	totals := root.CreateElement("totals")
	totals.CreateElement("loans_outstanding").SetText(money(report.OutstandingTotal(loanRecs)))
	totals.CreateElement("reserves_outstanding").SetText(money(report.OutstandingTotal(reserveRecs)))
	weekDue, _ := report.WeekDueTotal(loanRecs, schedule.KindLoan, asOf)
	totals.CreateElement("due_this_week").SetText(money(weekDue))

	doc.Indent(2)
	return doc.WriteToBytes()
}
