package export

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/truledger/loanboard/internal/models"
)

func TestPortfolioXML(t *testing.T) {
	loans := []models.Loan{{
		ID:                1,
		Client:            "Acme Co",
		Ref:               "L-100",
		Total:             1000,
		Installment:       220,
		PaidCount:         1,
		TotalInstallments: 5,
		StartDate:         "2024-01-01",
		FreqDays:          7,
		PaymentDates:      []string{"2024-01-01"},
		ProviderType:      models.DefaultProvider,
		FactoringFee:      100,
	}}
	reserves := []models.Reserve{{
		ID:           2,
		Client:       "Beta LLC",
		Amount:       1000,
		Installments: 4,
		Date:         "2024-01-15",
		FreqDays:     7,
		PaidCount:    2,
		DeductionDates: []string{
			"2024-01-15", "2024-01-22",
		},
	}}

	out, err := PortfolioXML(loans, reserves, "2024-01-17")
	if err != nil {
		t.Fatalf("PortfolioXML: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(out); err != nil {
		t.Fatalf("output is not well-formed XML: %v", err)
	}

	root := doc.SelectElement("portfolio")
	if root == nil {
		t.Fatal("missing portfolio root element")
	}
	if got := root.SelectAttrValue("as_of", ""); got != "2024-01-17" {
		t.Errorf("as_of = %q, want 2024-01-17", got)
	}

	loan := root.FindElement("./loans/loan")
	if loan == nil {
		t.Fatal("missing loan element")
	}
	if got := loan.SelectElement("remaining").Text(); got != "780.00" {
		t.Errorf("loan remaining = %q, want 780.00", got)
	}
	if got := loan.SelectElement("effective_total").Text(); got != "1100.00" {
		t.Errorf("effective_total = %q, want 1100.00", got)
	}
	if got := loan.SelectElement("next_due").Text(); got != "2024-01-08" {
		t.Errorf("loan next_due = %q, want 2024-01-08", got)
	}
	if loan.SelectElement("overdue") == nil {
		t.Error("loan overdue element should be present for a behind-schedule loan")
	}

	res := root.FindElement("./reserves/reserve")
	if res == nil {
		t.Fatal("missing reserve element")
	}
	if got := res.SelectElement("per_deduction").Text(); got != "250.00" {
		t.Errorf("per_deduction = %q, want 250.00", got)
	}
	if got := res.SelectElement("remaining").Text(); got != "500.00" {
		t.Errorf("reserve remaining = %q, want 500.00", got)
	}

	if got := root.FindElement("./totals/loans_outstanding").Text(); got != "780.00" {
		t.Errorf("loans_outstanding = %q, want 780.00", got)
	}
}
