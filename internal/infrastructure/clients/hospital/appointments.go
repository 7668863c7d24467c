package hospital

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// AppointmentRequest books a new appointment against an open slot
type AppointmentRequest struct {
	DoctorID  int64  `json:"doctorId"`
	PatientID int64  `json:"patientId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// RescheduleRequest moves an existing appointment to a new slot
type RescheduleRequest struct {
	AppointmentID int64  `json:"appointmentId"`
	NewStartTime  string `json:"newStartTime"`
	NewEndTime    string `json:"newEndTime"`
}

// GetAppointment returns a single appointment by id
func (c *Client) GetAppointment(ctx context.Context, appointmentID int64) (*entities.Appointment, error) {
	var appt entities.Appointment
	path := fmt.Sprintf("/appointments/%d", appointmentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListPatientAppointments returns a patient's appointments across all
// states
func (c *Client) ListPatientAppointments(ctx context.Context, patientID int64) ([]entities.Appointment, error) {
	var appts []entities.Appointment
	path := fmt.Sprintf("/appointments/patients/%d", patientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// ListDoctorBooked returns a doctor's upcoming booked appointments
func (c *Client) ListDoctorBooked(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	return c.listDoctorAppointments(ctx, "booked", doctorID)
}

// ListDoctorCompleted returns a doctor's completed appointments
func (c *Client) ListDoctorCompleted(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	return c.listDoctorAppointments(ctx, "completed", doctorID)
}

// ListDoctorRequested returns appointment requests awaiting the
// doctor's accept or decline decision
func (c *Client) ListDoctorRequested(ctx context.Context, doctorID int64) ([]entities.Appointment, error) {
	return c.listDoctorAppointments(ctx, "requested", doctorID)
}

func (c *Client) listDoctorAppointments(ctx context.Context, state string, doctorID int64) ([]entities.Appointment, error) {
	var appts []entities.Appointment
	path := fmt.Sprintf("/appointments/doctors/%s/%d", state, doctorID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// RequestAppointment places a booking request for a slot
func (c *Client) RequestAppointment(ctx context.Context, req AppointmentRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/appointments/request", nil, req, nil)
}

// CancelAppointment cancels an appointment
func (c *Client) CancelAppointment(ctx context.Context, appointmentID int64) error {
	path := fmt.Sprintf("/appointments/%d/cancel", appointmentID)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
}

// RescheduleAppointment moves an appointment to a new slot
func (c *Client) RescheduleAppointment(ctx context.Context, req RescheduleRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/appointments/reschedule", nil, req, nil)
}

// UpdateAppointmentStatus sets the appointment's lifecycle state, used
// by doctors to accept or decline requests
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID int64, status entities.AppointmentStatus) error {
	path := fmt.Sprintf("/appointments/%d/status", appointmentID)
	query := url.Values{"status": {string(status)}}
	return c.doJSON(ctx, http.MethodPut, path, query, nil, nil)
}

// DeleteAppointment removes an appointment record
func (c *Client) DeleteAppointment(ctx context.Context, appointmentID int64) error {
	path := fmt.Sprintf("/appointments/%d", appointmentID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
