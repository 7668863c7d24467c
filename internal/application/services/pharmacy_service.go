package services

import (
	"context"
	"fmt"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// PharmacyAPI is the slice of the hospital client the pharmacist
// workflow uses
type PharmacyAPI interface {
	ListPendingPrescriptions(ctx context.Context) ([]entities.OutcomeRecord, error)
	UpdatePrescriptionStatus(ctx context.Context, outcomeID int64, status entities.PrescriptionStatus) error
}

// PharmacyService drives the pharmacist's dispensing queue. Each row
// updates independently; the upstream is last-write-wins and stale
// reads persist until the next fetch.
type PharmacyService struct {
	api PharmacyAPI
}

// NewPharmacyService creates a new pharmacy service
func NewPharmacyService(api PharmacyAPI) *PharmacyService {
	return &PharmacyService{api: api}
}

// Pending returns the outcome records still awaiting dispensing
func (s *PharmacyService) Pending(ctx context.Context) ([]entities.OutcomeRecord, error) {
	return s.api.ListPendingPrescriptions(ctx)
}

// UpdateStatus pushes one record's new prescription status upstream
// and, on success, returns the list with that row patched in place.
// No other row is touched.
func (s *PharmacyService) UpdateStatus(ctx context.Context, records []entities.OutcomeRecord, outcomeID int64, status entities.PrescriptionStatus) ([]entities.OutcomeRecord, error) {
	if !validPrescriptionStatus(status) {
		return records, apperrors.NewValidationError(fmt.Sprintf("unknown prescription status %q", status))
	}

	if err := s.api.UpdatePrescriptionStatus(ctx, outcomeID, status); err != nil {
		return records, err
	}

	patched := make([]entities.OutcomeRecord, len(records))
	copy(patched, records)
	for i := range patched {
		if patched[i].ID == outcomeID {
			patched[i].PrescriptionStatus = status
		}
	}
	return patched, nil
}

func validPrescriptionStatus(status entities.PrescriptionStatus) bool {
	for _, known := range entities.PrescriptionStatuses {
		if status == known {
			return true
		}
	}
	return false
}
