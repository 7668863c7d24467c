package routes

import (
	"net/http"

	"github.com/carebridge/hms-gateway/internal/api/handlers"
	"github.com/carebridge/hms-gateway/internal/api/middleware"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	authHandler     *handlers.AuthHandler
	bookingHandler  *handlers.BookingHandler
	doctorHandler   *handlers.DoctorHandler
	pharmacyHandler *handlers.PharmacyHandler
	adminHandler    *handlers.AdminHandler
	profileHandler  *handlers.ProfileHandler
	sseHandler      *handlers.SSEHandler

	sessionStore providers.SessionStore
	cookieName   string
	metrics      *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	authHandler *handlers.AuthHandler,
	bookingHandler *handlers.BookingHandler,
	doctorHandler *handlers.DoctorHandler,
	pharmacyHandler *handlers.PharmacyHandler,
	adminHandler *handlers.AdminHandler,
	profileHandler *handlers.ProfileHandler,
	sseHandler *handlers.SSEHandler,
	sessionStore providers.SessionStore,
	cookieName string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		authHandler:     authHandler,
		bookingHandler:  bookingHandler,
		doctorHandler:   doctorHandler,
		pharmacyHandler: pharmacyHandler,
		adminHandler:    adminHandler,
		profileHandler:  profileHandler,
		sseHandler:      sseHandler,
		sessionStore:    sessionStore,
		cookieName:      cookieName,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes. Role gates sit on
// the route table itself: a missing session is 401 and a role
// mismatch 403 before any handler runs.
func (r *Router) SetupRoutes() http.Handler {
	patient := middleware.RequireRole(entities.RolePatient)
	doctor := middleware.RequireRole(entities.RoleDoctor)
	pharmacist := middleware.RequireRole(entities.RolePharmacist)
	admin := middleware.RequireRole(entities.RoleAdmin)
	anyRole := middleware.RequireRole(
		entities.RolePatient, entities.RoleDoctor, entities.RolePharmacist, entities.RoleAdmin)

	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public auth endpoints
	r.mux.HandleFunc("POST /api/auth/login", r.authHandler.Login)
	r.mux.HandleFunc("POST /api/auth/signup", r.authHandler.Signup)
	r.mux.HandleFunc("POST /api/auth/logout", r.authHandler.Logout)
	r.mux.HandleFunc("GET /api/auth/session", r.authHandler.Session)
	r.mux.HandleFunc("PUT /api/auth/password", anyRole(r.authHandler.ChangePassword))

	// Profile endpoints, role-dispatched to the caller's own record
	r.mux.HandleFunc("GET /api/profile", anyRole(r.profileHandler.Get))
	r.mux.HandleFunc("PUT /api/profile", anyRole(r.profileHandler.Update))

	// Patient booking endpoints
	r.mux.HandleFunc("GET /api/doctors", patient(r.bookingHandler.ListDoctors))
	r.mux.HandleFunc("GET /api/doctors/{id}/slots", patient(r.bookingHandler.DaySlots))
	r.mux.HandleFunc("GET /api/calendar", patient(r.bookingHandler.Calendar))
	r.mux.HandleFunc("POST /api/appointments", patient(r.bookingHandler.Book))
	r.mux.HandleFunc("POST /api/appointments/{id}/reschedule", patient(r.bookingHandler.Reschedule))
	r.mux.HandleFunc("POST /api/appointments/{id}/cancel", patient(r.bookingHandler.Cancel))
	r.mux.HandleFunc("GET /api/appointments/history", patient(r.bookingHandler.History))
	r.mux.HandleFunc("GET /api/outcomes/history", patient(r.bookingHandler.MedicalHistory))

	// Doctor endpoints
	r.mux.HandleFunc("GET /api/doctor/schedule", doctor(r.doctorHandler.Schedule))
	r.mux.HandleFunc("GET /api/doctor/requests", doctor(r.doctorHandler.Requests))
	r.mux.HandleFunc("GET /api/doctor/completed", doctor(r.doctorHandler.Completed))
	r.mux.HandleFunc("POST /api/appointments/{id}/accept", doctor(r.doctorHandler.Accept))
	r.mux.HandleFunc("POST /api/appointments/{id}/decline", doctor(r.doctorHandler.Decline))
	r.mux.HandleFunc("POST /api/appointments/{id}/complete", doctor(r.doctorHandler.Complete))
	r.mux.HandleFunc("POST /api/outcomes", doctor(r.doctorHandler.Finalize))
	r.mux.HandleFunc("GET /api/doctor/availability", doctor(r.doctorHandler.GetAvailability))
	r.mux.HandleFunc("PUT /api/doctor/availability", doctor(r.doctorHandler.SetAvailability))

	// Pharmacist endpoints
	r.mux.HandleFunc("GET /api/prescriptions/pending", pharmacist(r.pharmacyHandler.Pending))
	r.mux.HandleFunc("PUT /api/prescriptions/{id}/status", pharmacist(r.pharmacyHandler.UpdateStatus))

	// Admin endpoints
	r.mux.HandleFunc("GET /api/admin/inactive-users", admin(r.adminHandler.InactiveUsers))
	r.mux.HandleFunc("POST /api/admin/accounts/{id}/activate", admin(r.adminHandler.ActivateAccount))
	r.mux.HandleFunc("DELETE /api/admin/accounts/{id}", admin(r.adminHandler.DeleteAccount))

	// Session event streams
	r.mux.HandleFunc("GET /api/stream/session", r.sseHandler.StreamSession)
	r.mux.HandleFunc("GET /api/stream/sessions", admin(r.sseHandler.StreamAllSessions))

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.SessionMiddleware(r.sessionStore, r.cookieName)(handler)
	handler = middleware.LoggingMiddleware(handler)
	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}
	handler = middleware.CORSMiddleware(handler)

	return handler
}
