package models

// Overview represents the portfolio dashboard aggregates for one week
type Overview struct {
	WeekLabel        string           `json:"week_label"`
	TotalOutstanding float64          `json:"total_outstanding"`
	ActiveLoans      int              `json:"active_loans"`
	ClosedLoans      int              `json:"closed_loans"`
	WeekDueAmount    float64          `json:"week_due_amount"`
	WeekDueCount     int              `json:"week_due_count"`
	ReserveDueAmount float64          `json:"reserve_due_amount"`
	ReserveDueCount  int              `json:"reserve_due_count"`
	Upcoming         []UpcomingLoan   `json:"upcoming"`
	Breakdown        []BreakdownSlice `json:"breakdown"`
}

// UpcomingLoan is an open loan not due this week, with its next due date
type UpcomingLoan struct {
	LoanID  int64   `json:"loan_id"`
	Client  string  `json:"client"`
	Amount  float64 `json:"amount"`
	NextDue string  `json:"next_due"`
}

// BreakdownSlice pairs a record's remaining balance with a stable display
// color from the cyclic palette
type BreakdownSlice struct {
	Label     string  `json:"label"`
	Remaining float64 `json:"remaining"`
	Color     string  `json:"color"`
}
