package hospital

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// ListDoctors returns every doctor profile
func (c *Client) ListDoctors(ctx context.Context) ([]entities.Doctor, error) {
	var doctors []entities.Doctor
	if err := c.doJSON(ctx, http.MethodGet, "/doctors", nil, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// GetDoctor returns a single doctor profile
func (c *Client) GetDoctor(ctx context.Context, doctorID int64) (*entities.Doctor, error) {
	var doctor entities.Doctor
	path := fmt.Sprintf("/doctors/%d", doctorID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// UpdateDoctor replaces a doctor profile
func (c *Client) UpdateDoctor(ctx context.Context, doctorID int64, doctor entities.Doctor) error {
	path := fmt.Sprintf("/doctors/%d", doctorID)
	return c.doJSON(ctx, http.MethodPut, path, nil, doctor, nil)
}

// ListPatients returns every patient profile
func (c *Client) ListPatients(ctx context.Context) ([]entities.Patient, error) {
	var patients []entities.Patient
	if err := c.doJSON(ctx, http.MethodGet, "/patients", nil, nil, &patients); err != nil {
		return nil, err
	}
	return patients, nil
}

// GetPatient returns a single patient profile
func (c *Client) GetPatient(ctx context.Context, patientID int64) (*entities.Patient, error) {
	var patient entities.Patient
	path := fmt.Sprintf("/patients/%d", patientID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

// UpdatePatient replaces a patient profile
func (c *Client) UpdatePatient(ctx context.Context, patientID int64, patient entities.Patient) error {
	path := fmt.Sprintf("/patients/%d", patientID)
	return c.doJSON(ctx, http.MethodPut, path, nil, patient, nil)
}

// ListPharmacists returns every pharmacist profile
func (c *Client) ListPharmacists(ctx context.Context) ([]entities.Pharmacist, error) {
	var pharmacists []entities.Pharmacist
	if err := c.doJSON(ctx, http.MethodGet, "/pharmacists", nil, nil, &pharmacists); err != nil {
		return nil, err
	}
	return pharmacists, nil
}

// GetPharmacist returns a single pharmacist profile
func (c *Client) GetPharmacist(ctx context.Context, pharmacistID int64) (*entities.Pharmacist, error) {
	var pharmacist entities.Pharmacist
	path := fmt.Sprintf("/pharmacists/%d", pharmacistID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &pharmacist); err != nil {
		return nil, err
	}
	return &pharmacist, nil
}

// UpdatePharmacist replaces a pharmacist profile
func (c *Client) UpdatePharmacist(ctx context.Context, pharmacistID int64, pharmacist entities.Pharmacist) error {
	path := fmt.Sprintf("/pharmacists/%d", pharmacistID)
	return c.doJSON(ctx, http.MethodPut, path, nil, pharmacist, nil)
}

// GetAdmin returns a single admin profile
func (c *Client) GetAdmin(ctx context.Context, adminID int64) (*entities.Profile, error) {
	var admin entities.Profile
	path := fmt.Sprintf("/admins/%d", adminID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateAdmin replaces an admin profile
func (c *Client) UpdateAdmin(ctx context.Context, adminID int64, admin entities.Profile) error {
	path := fmt.Sprintf("/admins/%d", adminID)
	return c.doJSON(ctx, http.MethodPut, path, nil, admin, nil)
}

// ListInactiveUsers returns accounts awaiting admin activation
func (c *Client) ListInactiveUsers(ctx context.Context) ([]entities.InactiveUser, error) {
	var users []entities.InactiveUser
	if err := c.doJSON(ctx, http.MethodGet, "/admins/inactive-users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ActivateAccount flips an inactive account to active
func (c *Client) ActivateAccount(ctx context.Context, userID int64) error {
	body := map[string]int64{"userId": userID}
	return c.doJSON(ctx, http.MethodPost, "/admins/activate-account", nil, body, nil)
}

// DeleteAccount removes an account entirely
func (c *Client) DeleteAccount(ctx context.Context, userID int64) error {
	body := map[string]int64{"userId": userID}
	return c.doJSON(ctx, http.MethodDelete, "/admins/delete-account", nil, body, nil)
}
