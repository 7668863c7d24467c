package services

import (
	"context"
	"sort"
	"strings"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// HistoryAPI is the slice of the hospital client the history views use
type HistoryAPI interface {
	ListPatientAppointments(ctx context.Context, patientID int64) ([]entities.Appointment, error)
	ListDoctorBooked(ctx context.Context, doctorID int64) ([]entities.Appointment, error)
	ListDoctorCompleted(ctx context.Context, doctorID int64) ([]entities.Appointment, error)
	ListDoctorRequested(ctx context.Context, doctorID int64) ([]entities.Appointment, error)
}

// HistoryService serves the appointment list views with their
// in-memory filtering and sorting. All filtering happens over the
// fetched list; nothing is pushed upstream.
type HistoryService struct {
	api HistoryAPI
}

// NewHistoryService creates a new history service
func NewHistoryService(api HistoryAPI) *HistoryService {
	return &HistoryService{api: api}
}

// AppointmentFilter narrows an appointment list. Empty fields do not
// constrain; set fields combine conjunctively.
type AppointmentFilter struct {
	DoctorName string                     `json:"doctorName"`
	Status     entities.AppointmentStatus `json:"status"`
	Date       string                     `json:"date"`
}

func (f AppointmentFilter) matches(appt entities.Appointment) bool {
	if f.DoctorName != "" && appt.DoctorName != f.DoctorName {
		return false
	}
	if f.Status != "" && appt.Status != f.Status {
		return false
	}
	if f.Date != "" && !strings.HasPrefix(appt.StartTime, f.Date) {
		return false
	}
	return true
}

// FilterAppointments returns the records matching every set field
func FilterAppointments(appts []entities.Appointment, filter AppointmentFilter) []entities.Appointment {
	matched := make([]entities.Appointment, 0, len(appts))
	for _, appt := range appts {
		if filter.matches(appt) {
			matched = append(matched, appt)
		}
	}
	return matched
}

// SortChronological orders appointments by start time. The wall-clock
// strings sort lexicographically in chronological order, so no
// parsing is needed.
func SortChronological(appts []entities.Appointment, ascending bool) {
	sort.SliceStable(appts, func(i, j int) bool {
		if ascending {
			return appts[i].StartTime < appts[j].StartTime
		}
		return appts[i].StartTime > appts[j].StartTime
	})
}

// PatientHistory returns a patient's appointments, filtered and
// sorted, with DECLINED records split out so the dashboard can ask
// for acknowledgement.
func (s *HistoryService) PatientHistory(ctx context.Context, patientID int64, filter AppointmentFilter, ascending bool) (appts, declined []entities.Appointment, err error) {
	all, err := s.api.ListPatientAppointments(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}

	for _, appt := range all {
		if appt.Status == entities.AppointmentDeclined {
			declined = append(declined, appt)
		}
	}

	appts = FilterAppointments(all, filter)
	SortChronological(appts, ascending)
	return appts, declined, nil
}

// DoctorSchedule returns a doctor's booked appointments in
// chronological order
func (s *HistoryService) DoctorSchedule(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	appts, err := s.api.ListDoctorBooked(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	SortChronological(appts, true)
	return appts, nil
}

// DoctorRequests returns the booking requests awaiting the doctor's
// decision
func (s *HistoryService) DoctorRequests(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	return s.api.ListDoctorRequested(ctx, doctorID)
}
