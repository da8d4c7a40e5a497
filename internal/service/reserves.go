package service

import (
	"context"

	"github.com/truledger/loanboard/internal/models"
	"github.com/truledger/loanboard/internal/schedule"
)

// Reserves lists all reserves in the caller's scope
func (s *Service) Reserves(ctx context.Context) ([]models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.Reserves(ownerID)
}

// Reserve retrieves a single reserve in the caller's scope
func (s *Service) Reserve(ctx context.Context, id int64) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ReserveByID(id, ownerID)
}

// CreateReserve creates a reserve with weekly frequency by default
func (s *Service) CreateReserve(ctx context.Context, res *models.Reserve) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	res.OwnerID = ownerID
	if res.FreqDays == 0 {
		res.FreqDays = 7
	}
	if err := schedule.Validate(res.Schedule()); err != nil {
		return nil, err
	}
	if err := s.repo.CreateReserve(res); err != nil {
		return nil, err
	}
	s.log.Infof("Reserve created for %s: %s (%d deductions)", ownerID, res.Client, res.Installments)
	return res, nil
}

// UpdateReserve replaces a reserve after checking schedule invariants
func (s *Service) UpdateReserve(ctx context.Context, res *models.Reserve) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	res.OwnerID = ownerID
	if err := schedule.Validate(res.Schedule()); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateReserve(res); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteReserve removes a reserve
func (s *Service) DeleteReserve(ctx context.Context, id int64) error {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteReserve(id, ownerID)
}

// MarkReserveDeducted records the next deduction on asOf (today when empty),
// optionally writing its note in the same update.
func (s *Service) MarkReserveDeducted(ctx context.Context, id int64, asOf string, note *string) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.ReserveByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if asOf == "" {
		asOf = schedule.Today()
	}
	rec, err := schedule.RecordNextEvent(res.Schedule(), asOf, note)
	if err != nil {
		return res, err
	}
	res.ApplySchedule(rec)
	if err := s.repo.UpdateReserve(res); err != nil {
		return nil, err
	}
	s.log.Infof("Reserve %d deduction %d/%d recorded on %s", id, res.PaidCount, res.Installments, asOf)
	return res, nil
}

// ReverseReserveDeduction undoes the most recent deduction, retaining its note
func (s *Service) ReverseReserveDeduction(ctx context.Context, id int64) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.ReserveByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	rec, err := schedule.ReverseLastEvent(res.Schedule())
	if err != nil {
		return res, err
	}
	res.ApplySchedule(rec)
	if err := s.repo.UpdateReserve(res); err != nil {
		return nil, err
	}
	s.log.Infof("Reserve %d deduction reversed, now %d/%d", id, res.PaidCount, res.Installments)
	return res, nil
}

// CloseReserve fast-forwards the reserve to fully deducted
func (s *Service) CloseReserve(ctx context.Context, id int64, asOf string) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.ReserveByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	if asOf == "" {
		asOf = schedule.Today()
	}
	rec, err := schedule.ForceComplete(res.Schedule(), asOf)
	if err != nil {
		return res, err
	}
	res.ApplySchedule(rec)
	if err := s.repo.UpdateReserve(res); err != nil {
		return nil, err
	}
	s.log.Infof("Reserve %d closed on %s", id, asOf)
	return res, nil
}

// SetReserveDeductionNote overwrites the note for one deduction slot
func (s *Service) SetReserveDeductionNote(ctx context.Context, id int64, index int, note string) (*models.Reserve, error) {
	ownerID, err := s.ownerScope(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.repo.ReserveByID(id, ownerID)
	if err != nil {
		return nil, err
	}
	rec, err := schedule.SetEventNote(res.Schedule(), index, note)
	if err != nil {
		return res, err
	}
	res.ApplySchedule(rec)
	if err := s.repo.UpdateReserve(res); err != nil {
		return nil, err
	}
	return res, nil
}
