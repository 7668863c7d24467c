package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

type mockPharmacyAPI struct {
	mock.Mock
}

func (m *mockPharmacyAPI) ListPendingPrescriptions(ctx context.Context) ([]entities.OutcomeRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.OutcomeRecord), args.Error(1)
}

func (m *mockPharmacyAPI) UpdatePrescriptionStatus(ctx context.Context, outcomeID int64, status entities.PrescriptionStatus) error {
	return m.Called(ctx, outcomeID, status).Error(0)
}

func pendingRecords() []entities.OutcomeRecord {
	return []entities.OutcomeRecord{
		{ID: 1, PrescriptionStatus: entities.PrescriptionPending},
		{ID: 2, PrescriptionStatus: entities.PrescriptionPending},
	}
}

func TestUpdateStatusPatchesOnlyTheTargetRow(t *testing.T) {
	api := new(mockPharmacyAPI)
	api.On("UpdatePrescriptionStatus", mock.Anything, int64(1), entities.PrescriptionDispensed).Return(nil)

	svc := NewPharmacyService(api)
	patched, err := svc.UpdateStatus(context.Background(), pendingRecords(), 1, entities.PrescriptionDispensed)
	require.NoError(t, err)
	assert.Equal(t, entities.PrescriptionDispensed, patched[0].PrescriptionStatus)
	assert.Equal(t, entities.PrescriptionPending, patched[1].PrescriptionStatus)
}

func TestUpdateStatusFailureLeavesListUntouched(t *testing.T) {
	api := new(mockPharmacyAPI)
	api.On("UpdatePrescriptionStatus", mock.Anything, int64(1), entities.PrescriptionCancelled).
		Return(apperrors.NewUpstreamError("hospital api unreachable", nil))

	svc := NewPharmacyService(api)
	records := pendingRecords()
	got, err := svc.UpdateStatus(context.Background(), records, 1, entities.PrescriptionCancelled)
	require.Error(t, err)
	assert.Equal(t, entities.PrescriptionPending, got[0].PrescriptionStatus)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	api := new(mockPharmacyAPI)
	svc := NewPharmacyService(api)

	_, err := svc.UpdateStatus(context.Background(), pendingRecords(), 1, entities.PrescriptionStatus("SHIPPED"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	api.AssertNotCalled(t, "UpdatePrescriptionStatus", mock.Anything, mock.Anything, mock.Anything)
}
