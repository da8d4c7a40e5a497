package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/truledger/loanboard/internal/models"
)

const loanColumns = `id, owner_id, client, COALESCE(ref, ''), total, installment,
	paid_count, total_installments, start_date, freq_days, payment_dates,
	payment_notes, COALESCE(note, ''), provider_type, COALESCE(provider_name, ''),
	factoring_fee, hidden, created_at, updated_at`

func scanLoan(row interface{ Scan(...any) error }) (*models.Loan, error) {
	l := &models.Loan{}
	var dates, notes pq.StringArray
	err := row.Scan(&l.ID, &l.OwnerID, &l.Client, &l.Ref, &l.Total, &l.Installment,
		&l.PaidCount, &l.TotalInstallments, &l.StartDate, &l.FreqDays, &dates,
		&notes, &l.Note, &l.ProviderType, &l.ProviderName, &l.FactoringFee,
		&l.Hidden, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.PaymentDates = []string(dates)
	l.PaymentNotes = normalizeNotes(notes, l.TotalInstallments)
	return l, nil
}

// normalizeNotes pads or trims a stored note array to exactly n slots.
func normalizeNotes(notes []string, n int) []string {
	out := make([]string, n)
	copy(out, notes)
	return out
}

// Loans retrieves all loans for an owner, ordered by id
func (r *Repository) Loans(ownerID string) ([]models.Loan, error) {
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE owner_id = $1 ORDER BY id`, loanColumns)
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	var loans []models.Loan
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, *l)
	}
	return loans, rows.Err()
}

// LoanByID retrieves a single loan scoped to its owner
func (r *Repository) LoanByID(id int64, ownerID string) (*models.Loan, error) {
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE id = $1 AND owner_id = $2`, loanColumns)
	l, err := scanLoan(r.db.QueryRow(query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("loan %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find loan: %w", err)
	}
	return l, nil
}

// CreateLoan creates a new loan in the database
func (r *Repository) CreateLoan(l *models.Loan) error {
	query := `
		INSERT INTO loans (owner_id, client, ref, total, installment, paid_count,
			total_installments, start_date, freq_days, payment_dates, payment_notes,
			note, provider_type, provider_name, factoring_fee, hidden, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, l.OwnerID, l.Client, l.Ref, l.Total, l.Installment,
		l.PaidCount, l.TotalInstallments, l.StartDate, l.FreqDays,
		pq.Array(l.PaymentDates), pq.Array(normalizeNotes(l.PaymentNotes, l.TotalInstallments)),
		l.Note, l.ProviderType, l.ProviderName, l.FactoringFee, l.Hidden).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// UpdateLoan replaces a loan row with the given record state
func (r *Repository) UpdateLoan(l *models.Loan) error {
	query := `
		UPDATE loans
		SET client = $1, ref = $2, total = $3, installment = $4, paid_count = $5,
			total_installments = $6, start_date = $7, freq_days = $8,
			payment_dates = $9, payment_notes = $10, note = $11, provider_type = $12,
			provider_name = $13, factoring_fee = $14, hidden = $15,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $16 AND owner_id = $17
		RETURNING updated_at`
	err := r.db.QueryRow(query, l.Client, l.Ref, l.Total, l.Installment, l.PaidCount,
		l.TotalInstallments, l.StartDate, l.FreqDays, pq.Array(l.PaymentDates),
		pq.Array(normalizeNotes(l.PaymentNotes, l.TotalInstallments)), l.Note,
		l.ProviderType, l.ProviderName, l.FactoringFee, l.Hidden, l.ID, l.OwnerID).
		Scan(&l.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("loan %d not found", l.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	return nil
}

// DeleteLoan removes a loan row
func (r *Repository) DeleteLoan(id int64, ownerID string) error {
	if _, err := r.db.Exec(`DELETE FROM loans WHERE id = $1 AND owner_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}
	return nil
}
