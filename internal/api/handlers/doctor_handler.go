package handlers

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/carebridge/hms-gateway/internal/api/middleware"
	"github.com/carebridge/hms-gateway/internal/application/services"
)

// DoctorHandler serves the doctor dashboard: the schedule, pending
// requests, consultation outcomes and weekly availability
type DoctorHandler struct {
	history  *services.HistoryService
	outcomes *services.OutcomeService
	accounts *services.AccountService
	validate *validator.Validate
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(history *services.HistoryService, outcomes *services.OutcomeService, accounts *services.AccountService, validate *validator.Validate) *DoctorHandler {
	return &DoctorHandler{
		history:  history,
		outcomes: outcomes,
		accounts: accounts,
		validate: validate,
	}
}

// Schedule handles GET /api/doctor/schedule
func (h *DoctorHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	appts, err := h.history.DoctorSchedule(r.Context(), identity.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Requests handles GET /api/doctor/requests
func (h *DoctorHandler) Requests(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	appts, err := h.history.DoctorRequests(r.Context(), identity.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Accept handles POST /api/appointments/{id}/accept
func (h *DoctorHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.outcomes.Accept)
}

// Decline handles POST /api/appointments/{id}/decline
func (h *DoctorHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.outcomes.Decline)
}

// Complete handles POST /api/appointments/{id}/complete
func (h *DoctorHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.outcomes.MarkCompleted)
}

func (h *DoctorHandler) decide(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, appointmentID int64) error) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	if err := op(r.Context(), appointmentID); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Completed handles GET /api/doctor/completed
func (h *DoctorHandler) Completed(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	appts, err := h.outcomes.Completed(r.Context(), identity.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Finalize handles POST /api/outcomes
func (h *DoctorHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req services.FinalizeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.outcomes.Finalize(r.Context(), req); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// GetAvailability handles GET /api/doctor/availability
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	availability, err := h.accounts.Availability(r.Context(), identity.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if availability == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{"configured": false})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"configured":   true,
		"availability": availability,
	})
}

// SetAvailability handles PUT /api/doctor/availability
func (h *DoctorHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var form services.AvailabilityForm
	if err := decodeJSON(r, &form); err != nil {
		respondWithAppError(w, err)
		return
	}
	form.DoctorID = identity.UserID

	if err := h.accounts.SetAvailability(r.Context(), form); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
