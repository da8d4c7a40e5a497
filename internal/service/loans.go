package service

import (
	"context"

	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/schedule"
)

// Loans lists all loans in the caller's scope
func (s *Service) Loans(ctx context.Context) ([]models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Loans(ownerID)
}

// Loan retrieves a single loan in the caller's scope
func (s *Service) Loan(ctx context.Context, id int64) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.LoanByID(id, ownerID)
}

// CreateLoan creates a loan, deriving defaults the same way records are
// normalized on read: weekly frequency, installment from total plus
// factoring fee over the installment count.
func (s *Service) CreateLoan(ctx context.Context, l *models.Loan) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	l.OwnerID = ownerID
	if l.FreqDays == 0 {
		l.FreqDays = 7
	}
	if l.ProviderType == "" {
		l.ProviderType = models.DefaultProvider
	}
	if l.Installment == 0 {
		l.Installment = schedule.EventAmountFor(l.Total, l.FactoringFee, l.TotalInstallments)
	}
	if err := schedule.Validate(l.Schedule()); err != nil {
		return nil, err
	}
	if err := s.repo.CreateLoan(l); err != nil {
		return nil, err
	}
	s.log.Infof("Loan created for %s: %s (%d installments)", ownerID, l.Client, l.TotalInstallments)
	return l, nil
}

// UpdateLoan replaces a loan after checking schedule invariants
func (s *Service) UpdateLoan(ctx context.Context, l *models.Loan) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	l.OwnerID = ownerID
	if err := schedule.Validate(l.Schedule()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateLoan(l); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLoan removes a loan
func (s *Service) DeleteLoan(ctx context.Context, id int64) error {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteLoan(id, ownerID)
}

// MarkLoanPaid records the next installment as paid on asOf (today when
// empty), optionally writing a note for the installment in the same update.
// Returns schedule.ErrAlreadyComplete, with the loan unchanged, when the
// loan is already fully paid.
func (s *Service) MarkLoanPaid(ctx context.Context, id int64, asOf string, note *string) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.repo.LoanByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if asOf == "" {
		asOf = schedule.Today()
	}
	rec, err := schedule.RecordNextEvent(loan.Schedule(), asOf, note)
	if err != nil {
		return loan, err
	}
	loan.ApplySchedule(rec)
	if err := s.repo.UpdateLoan(loan); err != nil {
		return nil, err
	}
	s.log.Infof("Loan %d payment %d/%d recorded on %s", id, loan.PaidCount, loan.TotalInstallments, asOf)
	return loan, nil
}

// ReverseLoanPayment undoes the most recent payment. The installment's note
// is retained. Returns schedule.ErrNothingToReverse when no payments exist.
func (s *Service) ReverseLoanPayment(ctx context.Context, id int64) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.repo.LoanByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	rec, err := schedule.ReverseLastEvent(loan.Schedule())
	if err != nil {
		return loan, err
	}
	loan.ApplySchedule(rec)
	if err := s.repo.UpdateLoan(loan); err != nil {
		return nil, err
	}
	s.log.Infof("Loan %d payment reversed, now %d/%d", id, loan.PaidCount, loan.TotalInstallments)
	return loan, nil
}

// CloseLoan fast-forwards the loan to fully paid, filling remaining payment
// dates with asOf (today when empty). Closing an already-closed loan is a
// no-op.
func (s *Service) CloseLoan(ctx context.Context, id int64, asOf string) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.repo.LoanByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if asOf == "" {
		asOf = schedule.Today()
	}
	rec, err := schedule.ForceComplete(loan.Schedule(), asOf)
	if err != nil {
		return loan, err
	}
	loan.ApplySchedule(rec)
	if err := s.repo.UpdateLoan(loan); err != nil {
		return nil, err
	}
	s.log.Infof("Loan %d closed on %s", id, asOf)
	return loan, nil
}

// SetLoanPaymentNote overwrites the note for one installment slot.
// Returns schedule.ErrInvalidIndex for an index outside the schedule.
func (s *Service) SetLoanPaymentNote(ctx context.Context, id int64, index int, note string) (*models.Loan, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	loan, err := s.repo.LoanByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	rec, err := schedule.SetEventNote(loan.Schedule(), index, note)
	if err != nil {
		return loan, err
	}
	loan.ApplySchedule(rec)
	if err := s.repo.UpdateLoan(loan); err != nil {
		return nil, err
	}
	return loan, nil
}
