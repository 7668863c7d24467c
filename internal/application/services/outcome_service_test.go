package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/infrastructure/clients/hospital"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

type mockOutcomeAPI struct {
	mock.Mock
}

func (m *mockOutcomeAPI) GetAppointment(ctx context.Context, appointmentID int64) (*entities.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *mockOutcomeAPI) ListDoctorCompleted(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Appointment), args.Error(1)
}

func (m *mockOutcomeAPI) UpdateAppointmentStatus(ctx context.Context, appointmentID int64, status entities.AppointmentStatus) error {
	return m.Called(ctx, appointmentID, status).Error(0)
}

func (m *mockOutcomeAPI) CreateOutcome(ctx context.Context, req hospital.OutcomeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockOutcomeAPI) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	return m.Called(ctx, appointmentID).Error(0)
}

func (m *mockOutcomeAPI) ListPatientOutcomes(ctx context.Context, patientID int64) ([]entities.OutcomeRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.OutcomeRecord), args.Error(1)
}

func completedAppointment() *entities.Appointment {
	return &entities.Appointment{
		AppointmentID: 11,
		DoctorID:      3,
		PatientID:     7,
		Status:        entities.AppointmentCompleted,
		StartTime:     "2026-08-20T09:00",
	}
}

func TestFinalizeCreatesOutcomeThenRemovesAppointment(t *testing.T) {
	api := new(mockOutcomeAPI)
	api.On("GetAppointment", mock.Anything, int64(11)).Return(completedAppointment(), nil)
	api.On("CreateOutcome", mock.Anything, hospital.OutcomeRequest{
		DoctorID:            3,
		PatientID:           7,
		AppointmentDateTime: "2026-08-20T09:00",
		Diagnosis:           "flu",
		Prescription:        "rest",
		Notes:               "follow up in a week",
	}).Return(nil)
	api.On("DeleteAppointment", mock.Anything, int64(11)).Return(nil)

	svc := NewOutcomeService(api)
	err := svc.Finalize(context.Background(), FinalizeRequest{
		AppointmentID: 11,
		Diagnosis:     "flu",
		Prescription:  "rest",
		Notes:         "follow up in a week",
	})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestFinalizePartialFailureIsTyped(t *testing.T) {
	api := new(mockOutcomeAPI)
	api.On("GetAppointment", mock.Anything, int64(11)).Return(completedAppointment(), nil)
	api.On("CreateOutcome", mock.Anything, mock.Anything).Return(nil)
	api.On("DeleteAppointment", mock.Anything, int64(11)).
		Return(apperrors.NewUpstreamError("hospital api unreachable", nil))

	svc := NewOutcomeService(api)
	err := svc.Finalize(context.Background(), FinalizeRequest{
		AppointmentID: 11,
		Diagnosis:     "flu",
		Prescription:  "rest",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypePartial, apperrors.TypeOf(err))
	assert.Contains(t, err.Error(), "11")
}

func TestFinalizeRejectsNonCompletedAppointment(t *testing.T) {
	api := new(mockOutcomeAPI)
	api.On("GetAppointment", mock.Anything, int64(11)).Return(&entities.Appointment{
		AppointmentID: 11,
		Status:        entities.AppointmentBooked,
	}, nil)

	svc := NewOutcomeService(api)
	err := svc.Finalize(context.Background(), FinalizeRequest{AppointmentID: 11, Diagnosis: "flu", Prescription: "rest"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	api.AssertNotCalled(t, "CreateOutcome", mock.Anything, mock.Anything)
}

func TestAcceptAndDeclineRequireRequestedState(t *testing.T) {
	api := new(mockOutcomeAPI)
	api.On("GetAppointment", mock.Anything, int64(5)).Return(&entities.Appointment{
		AppointmentID: 5,
		Status:        entities.AppointmentRequested,
	}, nil)
	api.On("UpdateAppointmentStatus", mock.Anything, int64(5), entities.AppointmentBooked).Return(nil)

	svc := NewOutcomeService(api)
	require.NoError(t, svc.Accept(context.Background(), 5))
	api.AssertExpectations(t)

	api2 := new(mockOutcomeAPI)
	api2.On("GetAppointment", mock.Anything, int64(6)).Return(&entities.Appointment{
		AppointmentID: 6,
		Status:        entities.AppointmentCancelled,
	}, nil)

	err := NewOutcomeService(api2).Decline(context.Background(), 6)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeConflict, apperrors.TypeOf(err))
	api2.AssertNotCalled(t, "UpdateAppointmentStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestMarkCompleted(t *testing.T) {
	api := new(mockOutcomeAPI)
	api.On("GetAppointment", mock.Anything, int64(8)).Return(&entities.Appointment{
		AppointmentID: 8,
		Status:        entities.AppointmentBooked,
	}, nil)
	api.On("UpdateAppointmentStatus", mock.Anything, int64(8), entities.AppointmentCompleted).Return(nil)

	svc := NewOutcomeService(api)
	require.NoError(t, svc.MarkCompleted(context.Background(), 8))
	api.AssertExpectations(t)
}
