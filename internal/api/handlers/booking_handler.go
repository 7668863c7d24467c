package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carebridge/hms-gateway/internal/api/middleware"
	"github.com/carebridge/hms-gateway/internal/application/services"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// BookingHandler serves the patient dashboard: doctor search, the
// booking calendar, slots and appointment management
type BookingHandler struct {
	booking  *services.BookingService
	history  *services.HistoryService
	outcomes *services.OutcomeService
	validate *validator.Validate
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(booking *services.BookingService, history *services.HistoryService, outcomes *services.OutcomeService, validate *validator.Validate) *BookingHandler {
	return &BookingHandler{
		booking:  booking,
		history:  history,
		outcomes: outcomes,
		validate: validate,
	}
}

// ListDoctors handles GET /api/doctors?search=
func (h *BookingHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	flow, err := h.booking.StartBooking(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	doctors := flow.Search(r.URL.Query().Get("search"))
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// Calendar handles GET /api/calendar?year=&month=
func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	page := services.CurrentCalendarPage(time.Now())
	if y := r.URL.Query().Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid year")
			return
		}
		page.Year = year
	}
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			respondWithError(w, http.StatusBadRequest, "invalid month")
			return
		}
		page.Month = time.Month(month)
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"year":  page.Year,
		"month": int(page.Month),
		"grid":  page.Grid(),
	})
}

// DaySlots handles GET /api/doctors/{id}/slots?date=
func (h *BookingHandler) DaySlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid doctor id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "date is required")
		return
	}

	slots, err := h.booking.Slots(r.Context(), doctorID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"slots": slots,
		"count": len(slots),
	})
}

// Book handles POST /api/appointments
func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req struct {
		DoctorID int64  `json:"doctorId" validate:"required"`
		Date     string `json:"date" validate:"required"`
		SlotTime string `json:"slotTime" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.booking.Book(r.Context(), identity.UserID, req.DoctorID, req.Date, req.SlotTime); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// Reschedule handles POST /api/appointments/{id}/reschedule
func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	var req struct {
		Date     string `json:"date" validate:"required"`
		SlotTime string `json:"slotTime" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.booking.Reschedule(r.Context(), appointmentID, req.Date, req.SlotTime); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles POST /api/appointments/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid appointment id")
		return
	}

	if err := h.booking.Cancel(r.Context(), appointmentID); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /api/appointments/history with filter and sort
// query parameters
func (h *BookingHandler) History(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	query := r.URL.Query()

	filter := services.AppointmentFilter{
		DoctorName: query.Get("doctorName"),
		Status:     entities.AppointmentStatus(query.Get("status")),
		Date:       query.Get("date"),
	}
	ascending := query.Get("order") != "desc"

	appts, declined, err := h.history.PatientHistory(r.Context(), identity.UserID, filter, ascending)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appts,
		"declined":     declined,
	})
}

// MedicalHistory handles GET /api/outcomes/history for the signed-in
// patient
func (h *BookingHandler) MedicalHistory(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	records, err := h.outcomes.PatientHistory(r.Context(), identity.UserID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"count":   len(records),
	})
}

// pathID parses a numeric path segment
func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
