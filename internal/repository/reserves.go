package repository

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/truledger/loanboard/internal/models"
)

const reserveColumns = `id, owner_id, client, amount, installments, date,
	freq_days, COALESCE(note, ''), paid_count, deduction_dates, deduction_notes,
	created_at, updated_at`

func scanReserve(row interface{ Scan(...any) error }) (*models.Reserve, error) {
	res := &models.Reserve{}
	var dates, notes pq.StringArray
	err := row.Scan(&res.ID, &res.OwnerID, &res.Client, &res.Amount, &res.Installments,
		&res.Date, &res.FreqDays, &res.Note, &res.PaidCount, &dates, &notes,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.DeductionDates = []string(dates)
	res.DeductionNotes = normalizeNotes(notes, res.Installments)
	return res, nil
}

// Reserves retrieves all reserves for an owner, ordered by id
func (r *Repository) Reserves(ownerID string) ([]models.Reserve, error) {
	query := fmt.Sprintf(`SELECT %s FROM reserves WHERE owner_id = $1 ORDER BY id`, reserveColumns)
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reserves: %w", err)
	}
	defer rows.Close()

	var reserves []models.Reserve
	for rows.Next() {
		res, err := scanReserve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reserve: %w", err)
		}
		reserves = append(reserves, *res)
	}
	return reserves, rows.Err()
}

// ReserveByID retrieves a single reserve scoped to its owner
func (r *Repository) ReserveByID(id int64, ownerID string) (*models.Reserve, error) {
	query := fmt.Sprintf(`SELECT %s FROM reserves WHERE id = $1 AND owner_id = $2`, reserveColumns)
	res, err := scanReserve(r.db.QueryRow(query, id, ownerID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reserve %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reserve: %w", err)
	}
	return res, nil
}

// CreateReserve creates a new reserve in the database
func (r *Repository) CreateReserve(res *models.Reserve) error {
	query := `
		INSERT INTO reserves (owner_id, client, amount, installments, date, freq_days,
			note, paid_count, deduction_dates, deduction_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, res.OwnerID, res.Client, res.Amount, res.Installments,
		res.Date, res.FreqDays, res.Note, res.PaidCount, pq.Array(res.DeductionDates),
		pq.Array(normalizeNotes(res.DeductionNotes, res.Installments))).
		Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reserve: %w", err)
	}
	return nil
}

// UpdateReserve replaces a reserve row with the given record state
func (r *Repository) UpdateReserve(res *models.Reserve) error {
	query := `
		UPDATE reserves
		SET client = $1, amount = $2, installments = $3, date = $4, freq_days = $5,
			note = $6, paid_count = $7, deduction_dates = $8, deduction_notes = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $10 AND owner_id = $11
		RETURNING updated_at`
	err := r.db.QueryRow(query, res.Client, res.Amount, res.Installments, res.Date,
		res.FreqDays, res.Note, res.PaidCount, pq.Array(res.DeductionDates),
		pq.Array(normalizeNotes(res.DeductionNotes, res.Installments)), res.ID, res.OwnerID).
		Scan(&res.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("reserve %d not found", res.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to update reserve: %w", err)
	}
	return nil
}

// DeleteReserve removes a reserve row
func (r *Repository) DeleteReserve(id int64, ownerID string) error {
	if _, err := r.db.Exec(`DELETE FROM reserves WHERE id = $1 AND owner_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete reserve: %w", err)
	}
	return nil
}
