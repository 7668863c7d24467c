package services

import (
	"context"
	"fmt"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/infrastructure/clients/hospital"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// OutcomeAPI is the slice of the hospital client the doctor-side
// consultation workflow uses
type OutcomeAPI interface {
	GetAppointment(ctx context.Context, appointmentID int64) (*entities.Appointment, error)
	ListDoctorCompleted(ctx context.Context, doctorID int64) ([]entities.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID int64, status entities.AppointmentStatus) error
	CreateOutcome(ctx context.Context, req hospital.OutcomeRequest) error
	DeleteAppointment(ctx context.Context, appointmentID int64) error
	ListPatientOutcomes(ctx context.Context, patientID int64) ([]entities.OutcomeRecord, error)
}

// OutcomeService drives the doctor's consultation workflow: deciding
// on requests, completing visits and finalizing them into outcome
// records.
type OutcomeService struct {
	api OutcomeAPI
}

// NewOutcomeService creates a new outcome service
func NewOutcomeService(api OutcomeAPI) *OutcomeService {
	return &OutcomeService{api: api}
}

// FinalizeRequest is the diagnosis form a doctor submits for a
// completed appointment
type FinalizeRequest struct {
	AppointmentID int64  `json:"appointmentId" validate:"required"`
	Diagnosis     string `json:"diagnosis" validate:"required"`
	Prescription  string `json:"prescription" validate:"required"`
	Notes         string `json:"notes"`
}

// Accept approves a REQUESTED appointment
func (s *OutcomeService) Accept(ctx context.Context, appointmentID int64) error {
	return s.decide(ctx, appointmentID, entities.AppointmentBooked)
}

// Decline rejects a REQUESTED appointment
func (s *OutcomeService) Decline(ctx context.Context, appointmentID int64) error {
	return s.decide(ctx, appointmentID, entities.AppointmentDeclined)
}

func (s *OutcomeService) decide(ctx context.Context, appointmentID int64, status entities.AppointmentStatus) error {
	appt, err := s.api.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.Status != entities.AppointmentRequested {
		return apperrors.NewConflictError(
			fmt.Sprintf("appointment %d is %s, not awaiting a decision", appointmentID, appt.Status))
	}
	return s.api.UpdateAppointmentStatus(ctx, appointmentID, status)
}

// MarkCompleted moves a BOOKED appointment to COMPLETED after the
// visit took place
func (s *OutcomeService) MarkCompleted(ctx context.Context, appointmentID int64) error {
	appt, err := s.api.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.Status != entities.AppointmentBooked {
		return apperrors.NewConflictError(
			fmt.Sprintf("appointment %d is %s, not booked", appointmentID, appt.Status))
	}
	return s.api.UpdateAppointmentStatus(ctx, appointmentID, entities.AppointmentCompleted)
}

// Completed lists the doctor's appointments awaiting finalization
func (s *OutcomeService) Completed(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	return s.api.ListDoctorCompleted(ctx, doctorID)
}

// Finalize turns a completed appointment into an outcome record and
// removes the appointment, as one operation. When the record is
// created but the removal fails, the error is typed PARTIAL and names
// the orphaned appointment instead of hiding the split.
func (s *OutcomeService) Finalize(ctx context.Context, req FinalizeRequest) error {
	appt, err := s.api.GetAppointment(ctx, req.AppointmentID)
	if err != nil {
		return err
	}
	if appt.Status != entities.AppointmentCompleted {
		return apperrors.NewConflictError(
			fmt.Sprintf("appointment %d is %s, not completed", req.AppointmentID, appt.Status))
	}

	err = s.api.CreateOutcome(ctx, hospital.OutcomeRequest{
		DoctorID:            appt.DoctorID,
		PatientID:           appt.PatientID,
		AppointmentDateTime: appt.StartTime,
		Diagnosis:           req.Diagnosis,
		Prescription:        req.Prescription,
		Notes:               req.Notes,
	})
	if err != nil {
		return err
	}

	if err := s.api.DeleteAppointment(ctx, req.AppointmentID); err != nil {
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Int64("appointment_id", req.AppointmentID).
			Msg("outcome recorded but appointment removal failed")
		return apperrors.NewPartialError(
			fmt.Sprintf("outcome recorded, but appointment %d was not removed", req.AppointmentID), err)
	}
	return nil
}

// PatientHistory returns the outcome records of a patient's past
// visits
func (s *OutcomeService) PatientHistory(ctx context.Context, patientID int64) ([]entities.OutcomeRecord, error) {
	return s.api.ListPatientOutcomes(ctx, patientID)
}
