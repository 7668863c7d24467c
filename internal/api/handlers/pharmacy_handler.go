package handlers

import (
	"net/http"

	"github.com/carebridge/hms-gateway/internal/application/services"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// PharmacyHandler serves the pharmacist dashboard's dispensing queue
type PharmacyHandler struct {
	pharmacy *services.PharmacyService
}

// NewPharmacyHandler creates a new pharmacy handler
func NewPharmacyHandler(pharmacy *services.PharmacyService) *PharmacyHandler {
	return &PharmacyHandler{pharmacy: pharmacy}
}

// Pending handles GET /api/prescriptions/pending
func (h *PharmacyHandler) Pending(w http.ResponseWriter, r *http.Request) {
	records, err := h.pharmacy.Pending(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// UpdateStatus handles PUT /api/prescriptions/{id}/status. The
// response echoes the refreshed pending list with the row patched.
func (h *PharmacyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	outcomeID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid prescription id")
		return
	}

	var req struct {
		Status entities.PrescriptionStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}

	records, err := h.pharmacy.Pending(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	patched, err := h.pharmacy.UpdateStatus(r.Context(), records, outcomeID, req.Status)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": patched,
		"count":   len(patched),
	})
}
