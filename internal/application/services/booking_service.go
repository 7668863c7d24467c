package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/infrastructure/clients/hospital"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// rescheduleWindow is how far before the start an appointment must be
// for the patient to still move or cancel it
const rescheduleWindow = 72 * time.Hour

// slotDuration is the fixed length of every bookable interval
const slotDuration = 30 * time.Minute

// BookingAPI is the slice of the hospital client the booking flows use
type BookingAPI interface {
	ListDoctors(ctx context.Context) ([]entities.Doctor, error)
	ListDaySlots(ctx context.Context, doctorID int64, date string) ([]entities.Slot, error)
	RequestAppointment(ctx context.Context, req hospital.AppointmentRequest) error
	GetAppointment(ctx context.Context, appointmentID int64) (*entities.Appointment, error)
	RescheduleAppointment(ctx context.Context, req hospital.RescheduleRequest) error
	CancelAppointment(ctx context.Context, appointmentID int64) error
}

// BookingService owns appointment booking, rescheduling and
// cancellation on behalf of patients
type BookingService struct {
	api BookingAPI
	now func() time.Time
}

// NewBookingService creates a new booking service
func NewBookingService(api BookingAPI) *BookingService {
	return &BookingService{api: api, now: time.Now}
}

// SearchDoctors filters a fetched doctor list by case-insensitive
// name substring
func SearchDoctors(doctors []entities.Doctor, query string) []entities.Doctor {
	if query == "" {
		return doctors
	}
	needle := strings.ToLower(query)
	matched := make([]entities.Doctor, 0, len(doctors))
	for _, doctor := range doctors {
		if strings.Contains(strings.ToLower(doctor.Name), needle) {
			matched = append(matched, doctor)
		}
	}
	return matched
}

// SlotEnd returns the clock label 30 minutes after the slot's start.
// The arithmetic stays on the wall clock so no timezone can shift the
// interval across the date.
func SlotEnd(slotTime string) (string, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(slotTime, "%d:%d", &hour, &minute); err != nil {
		return "", apperrors.NewValidationError(fmt.Sprintf("malformed slot time %q", slotTime))
	}
	minute += 30
	if minute >= 60 {
		minute -= 60
		hour++
	}
	if hour >= 24 {
		return "", apperrors.NewValidationError(fmt.Sprintf("slot %q would end past midnight", slotTime))
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// BuildInterval turns an ISO date and a slot label into the start and
// end timestamps the hospital API expects
func BuildInterval(date, slotTime string) (start, end string, err error) {
	endClock, err := SlotEnd(slotTime)
	if err != nil {
		return "", "", err
	}
	return date + "T" + slotTime, date + "T" + endClock, nil
}

// RescheduleEligible reports whether the appointment may still be
// moved or cancelled: booked, and at least three days out
func RescheduleEligible(appt *entities.Appointment, now time.Time) bool {
	if appt.Status != entities.AppointmentBooked {
		return false
	}
	start, err := appt.Start()
	if err != nil {
		return false
	}
	return start.Sub(now) >= rescheduleWindow
}

// Slots fetches the day's slots for a doctor. A fetch failure yields
// an empty list together with the error, so callers can tell "no
// availability" apart from "fetch failed".
func (s *BookingService) Slots(ctx context.Context, doctorID int64, date string) ([]entities.Slot, error) {
	slots, err := s.api.ListDaySlots(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// Book submits a booking request for the chosen slot. The interval is
// built from the date and the slot label; no retry on failure.
func (s *BookingService) Book(ctx context.Context, patientID, doctorID int64, date, slotTime string) error {
	start, end, err := BuildInterval(date, slotTime)
	if err != nil {
		return err
	}
	return s.api.RequestAppointment(ctx, hospital.AppointmentRequest{
		DoctorID:  doctorID,
		PatientID: patientID,
		StartTime: start,
		EndTime:   end,
	})
}

// Reschedule moves an existing appointment to a new slot. Eligibility
// is re-checked here, not just when the list was rendered, so a
// window that closed in between is caught.
func (s *BookingService) Reschedule(ctx context.Context, appointmentID int64, date, slotTime string) error {
	appt, err := s.api.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !RescheduleEligible(appt, s.now()) {
		return apperrors.NewConflictError("appointment can no longer be rescheduled")
	}

	start, end, err := BuildInterval(date, slotTime)
	if err != nil {
		return err
	}
	return s.api.RescheduleAppointment(ctx, hospital.RescheduleRequest{
		AppointmentID: appointmentID,
		NewStartTime:  start,
		NewEndTime:    end,
	})
}

// Cancel cancels an appointment under the same eligibility rule as
// rescheduling
func (s *BookingService) Cancel(ctx context.Context, appointmentID int64) error {
	appt, err := s.api.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if !RescheduleEligible(appt, s.now()) {
		return apperrors.NewConflictError("appointment can no longer be cancelled")
	}
	return s.api.CancelAppointment(ctx, appointmentID)
}

// BookingStage is where a booking flow currently is
type BookingStage string

const (
	StageChoosingDoctor BookingStage = "CHOOSING_DOCTOR"
	StageChoosingDate   BookingStage = "CHOOSING_DATE"
	StageChoosingSlot   BookingStage = "CHOOSING_SLOT"
	StageConfirmed      BookingStage = "CONFIRMED"
)

// BookingFlow walks a patient through doctor, date and slot choice.
// It holds the transient state the workflow accumulates; nothing here
// outlives the flow.
type BookingFlow struct {
	svc *BookingService

	Stage   BookingStage
	Doctors []entities.Doctor
	Doctor  *entities.Doctor
	Page    CalendarPage
	Date    string
	Slots   []entities.Slot
	SlotErr error
	Slot    *entities.Slot
}

// StartBooking opens a flow in the doctor-choosing stage with the
// full doctor list loaded
func (s *BookingService) StartBooking(ctx context.Context) (*BookingFlow, error) {
	doctors, err := s.api.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	return &BookingFlow{
		svc:     s,
		Stage:   StageChoosingDoctor,
		Doctors: doctors,
	}, nil
}

// Search narrows the visible doctor list without refetching
func (f *BookingFlow) Search(query string) []entities.Doctor {
	return SearchDoctors(f.Doctors, query)
}

// SelectDoctor moves to date choice, opening the calendar on the
// current month
func (f *BookingFlow) SelectDoctor(doctorID int64) error {
	if f.Stage != StageChoosingDoctor {
		return apperrors.NewConflictError("doctor already chosen")
	}
	for i := range f.Doctors {
		if f.Doctors[i].ID == doctorID {
			f.Doctor = &f.Doctors[i]
			f.Page = CurrentCalendarPage(f.svc.now())
			f.Stage = StageChoosingDate
			return nil
		}
	}
	return apperrors.NewNotFoundError("doctor not in the fetched list")
}

// NextMonth pages the calendar forward without refetching anything
func (f *BookingFlow) NextMonth() { f.Page = f.Page.Next() }

// PrevMonth pages the calendar backward without refetching anything
func (f *BookingFlow) PrevMonth() { f.Page = f.Page.Prev() }

// SelectDate fixes the date and fetches the day's slots. Padding cells
// of the grid are not dates and are rejected. When the fetch fails the
// slot list is cleared and the error kept, so the empty day is still
// distinguishable from a failed load.
func (f *BookingFlow) SelectDate(ctx context.Context, day int) error {
	if f.Stage != StageChoosingDate && f.Stage != StageChoosingSlot {
		return apperrors.NewConflictError("no doctor chosen yet")
	}
	if day < 1 || day > f.Page.Days() {
		return apperrors.NewValidationError(
			fmt.Sprintf("day %d is not in %s %d", day, f.Page.Month, f.Page.Year))
	}

	f.Date = f.Page.DateOf(day)
	f.Slot = nil
	f.Stage = StageChoosingSlot

	slots, err := f.svc.Slots(ctx, f.Doctor.ID, f.Date)
	if err != nil {
		f.Slots = nil
		f.SlotErr = err
		return nil
	}
	f.Slots = slots
	f.SlotErr = nil
	return nil
}

// SelectSlot stores the chosen slot. Choosing a slot that is not
// AVAILABLE is a no-op.
func (f *BookingFlow) SelectSlot(slotTime string) {
	for i := range f.Slots {
		if f.Slots[i].Time == slotTime && f.Slots[i].Selectable() {
			f.Slot = &f.Slots[i]
			return
		}
	}
}

// Confirm submits the booking for the chosen slot and closes the flow
func (f *BookingFlow) Confirm(ctx context.Context, patientID int64) error {
	if f.Stage != StageChoosingSlot || f.Slot == nil {
		return apperrors.NewConflictError("no slot chosen")
	}
	if err := f.svc.Book(ctx, patientID, f.Doctor.ID, f.Date, f.Slot.Time); err != nil {
		return err
	}
	f.Stage = StageConfirmed
	return nil
}
