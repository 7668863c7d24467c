package entities

import "time"

// AppointmentStatus mirrors the upstream appointment lifecycle
type AppointmentStatus string

const (
	AppointmentAvailable AppointmentStatus = "AVAILABLE"
	AppointmentRequested AppointmentStatus = "REQUESTED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentBooked    AppointmentStatus = "BOOKED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentDeclined  AppointmentStatus = "DECLINED"
)

// Appointment is an upstream appointment record as the patient or
// doctor views see it. StartTime/EndTime carry no zone: the upstream
// API exchanges local wall-clock timestamps ("2006-01-02T15:04").
type Appointment struct {
	AppointmentID int64             `json:"appointmentId"`
	PatientID     int64             `json:"patientId,omitempty"`
	DoctorID      int64             `json:"doctorId,omitempty"`
	PatientName   string            `json:"patientName,omitempty"`
	DoctorName    string            `json:"doctorName,omitempty"`
	Status        AppointmentStatus `json:"status"`
	StartTime     string            `json:"startTime"`
	EndTime       string            `json:"endTime"`
}

// apptTimeLayout is the wall-clock layout used by the upstream API
const apptTimeLayout = "2006-01-02T15:04"

// Start parses the appointment's start timestamp. Seconds are
// tolerated because some upstream serializers append them.
func (a *Appointment) Start() (time.Time, error) {
	if t, err := time.Parse(apptTimeLayout, a.StartTime); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", a.StartTime)
}

// SlotStatus mirrors the upstream per-slot state
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
)

// Slot is one half-hour interval of a doctor's day, derived
// server-side; the gateway treats it as read-only.
type Slot struct {
	Time   string     `json:"time"`
	Status SlotStatus `json:"status"`
}

// Selectable reports whether the slot can be chosen in the booking flow
func (s Slot) Selectable() bool {
	return s.Status == SlotAvailable
}

// TimeRange is one weekday's working hours on a doctor's schedule
type TimeRange struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Availability is a doctor's weekly schedule plus one-off exceptions
type Availability struct {
	DoctorID         int64                `json:"doctorId"`
	WeeklySchedule   map[string]TimeRange `json:"weeklySchedule"`
	UnavailableSlots []string             `json:"unavailableSlots"`
}
