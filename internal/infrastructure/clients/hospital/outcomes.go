package hospital

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// OutcomeRequest records the result of a completed consultation
type OutcomeRequest struct {
	DoctorID            int64  `json:"doctorId"`
	PatientID           int64  `json:"patientId"`
	AppointmentDateTime string `json:"appointmentDateTime"`
	Diagnosis           string `json:"diagnosis"`
	Prescription        string `json:"prescription"`
	Notes               string `json:"notes"`
}

// CreateOutcome stores an appointment outcome record
func (c *Client) CreateOutcome(ctx context.Context, req OutcomeRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/outcomes", nil, req, nil)
}

// ListPatientOutcomes returns a patient's medical history
func (c *Client) ListPatientOutcomes(ctx context.Context, patientID int64) ([]entities.OutcomeRecord, error) {
	var records []entities.OutcomeRecord
	path := fmt.Sprintf("/outcomes/patients/%d", patientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListPendingPrescriptions returns outcomes whose prescriptions still
// await dispensing
func (c *Client) ListPendingPrescriptions(ctx context.Context) ([]entities.OutcomeRecord, error) {
	var records []entities.OutcomeRecord
	if err := c.doJSON(ctx, http.MethodGet, "/outcomes/pharmacist/pending", nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdatePrescriptionStatus sets the dispensing state of an outcome's
// prescription
func (c *Client) UpdatePrescriptionStatus(ctx context.Context, outcomeID int64, status entities.PrescriptionStatus) error {
	path := fmt.Sprintf("/outcomes/%d/status", outcomeID)
	query := url.Values{"prescriptionStatus": {string(status)}}
	return c.doJSON(ctx, http.MethodPut, path, query, nil, nil)
}
