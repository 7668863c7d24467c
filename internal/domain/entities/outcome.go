package entities

// PrescriptionStatus tracks a prescription through the pharmacy
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "PENDING"
	PrescriptionDispensed PrescriptionStatus = "DISPENSED"
	PrescriptionCancelled PrescriptionStatus = "CANCELLED"
)

// PrescriptionStatuses lists the states a pharmacist may set
var PrescriptionStatuses = []PrescriptionStatus{
	PrescriptionPending,
	PrescriptionDispensed,
	PrescriptionCancelled,
}

// OutcomeRecord is the record a doctor files when finalizing a
// completed appointment. Creating one deletes the source appointment
// upstream.
type OutcomeRecord struct {
	ID                  int64              `json:"id"`
	DoctorID            int64              `json:"doctorId,omitempty"`
	PatientID           int64              `json:"patientId,omitempty"`
	DoctorName          string             `json:"doctorName,omitempty"`
	PatientName         string             `json:"patientName,omitempty"`
	AppointmentDateTime string             `json:"appointmentDateTime"`
	Diagnosis           string             `json:"diagnosis"`
	Prescription        string             `json:"prescription"`
	PrescriptionStatus  PrescriptionStatus `json:"prescriptionStatus"`
	Notes               string             `json:"notes,omitempty"`
}
