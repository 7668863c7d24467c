package handlers

import (
	"context"
	"net/http"

	"github.com/carebridge/hms-gateway/internal/api/middleware"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// ProfileAPI is the slice of the hospital client the profile
// endpoints use
type ProfileAPI interface {
	GetDoctor(ctx context.Context, doctorID int64) (*entities.Doctor, error)
	UpdateDoctor(ctx context.Context, doctorID int64, doctor entities.Doctor) error
	GetPatient(ctx context.Context, patientID int64) (*entities.Patient, error)
	UpdatePatient(ctx context.Context, patientID int64, patient entities.Patient) error
	GetPharmacist(ctx context.Context, pharmacistID int64) (*entities.Pharmacist, error)
	UpdatePharmacist(ctx context.Context, pharmacistID int64, pharmacist entities.Pharmacist) error
	GetAdmin(ctx context.Context, adminID int64) (*entities.Profile, error)
	UpdateAdmin(ctx context.Context, adminID int64, admin entities.Profile) error
}

// ProfileHandler serves the signed-in user's own profile, dispatching
// on the session role
type ProfileHandler struct {
	api ProfileAPI
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(api ProfileAPI) *ProfileHandler {
	return &ProfileHandler{api: api}
}

// Get handles GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var profile any
	var err error
	switch identity.Role {
	case entities.RoleDoctor:
		profile, err = h.api.GetDoctor(r.Context(), identity.UserID)
	case entities.RolePatient:
		profile, err = h.api.GetPatient(r.Context(), identity.UserID)
	case entities.RolePharmacist:
		profile, err = h.api.GetPharmacist(r.Context(), identity.UserID)
	default:
		profile, err = h.api.GetAdmin(r.Context(), identity.UserID)
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, profile)
}

// Update handles PUT /api/profile. The body shape follows the
// session role; the path carries no id, so users can only write their
// own record.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var err error
	switch identity.Role {
	case entities.RoleDoctor:
		var doctor entities.Doctor
		if err = decodeJSON(r, &doctor); err == nil {
			doctor.ID = identity.UserID
			err = h.api.UpdateDoctor(r.Context(), identity.UserID, doctor)
		}
	case entities.RolePatient:
		var patient entities.Patient
		if err = decodeJSON(r, &patient); err == nil {
			patient.ID = identity.UserID
			err = h.api.UpdatePatient(r.Context(), identity.UserID, patient)
		}
	case entities.RolePharmacist:
		var pharmacist entities.Pharmacist
		if err = decodeJSON(r, &pharmacist); err == nil {
			pharmacist.ID = identity.UserID
			err = h.api.UpdatePharmacist(r.Context(), identity.UserID, pharmacist)
		}
	default:
		var admin entities.Profile
		if err = decodeJSON(r, &admin); err == nil {
			admin.ID = identity.UserID
			err = h.api.UpdateAdmin(r.Context(), identity.UserID, admin)
		}
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
