package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/carebridge/hms-gateway/internal/api/middleware"
	"github.com/carebridge/hms-gateway/internal/application/services"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
)

// maxResumeSize caps the multipart signup body
const maxResumeSize = 10 << 20

// AuthHandler handles login, logout, signup and password changes
type AuthHandler struct {
	accounts   *services.AccountService
	validate   *validator.Validate
	cookieName string
	sessionTTL time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *services.AccountService, validate *validator.Validate, cookieName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		accounts:   accounts,
		validate:   validate,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	sessionID, identity, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, identity)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID != "" {
		if err := h.accounts.Logout(r.Context(), sessionID); err != nil {
			respondWithAppError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		respondWithError(w, http.StatusUnauthorized, "no active session")
		return
	}
	respondWithJSON(w, http.StatusOK, identity)
}

// Signup handles POST /api/auth/signup. JSON bodies cover every role;
// doctors attaching a resume send multipart/form-data with the PDF in
// the "resume" field.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	var err error

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err = h.parseMultipartSignup(r)
	} else {
		err = decodeJSON(r, &req)
	}
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := h.accounts.Signup(r.Context(), req)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, map[string]int64{"userId": userID})
}

func (h *AuthHandler) parseMultipartSignup(r *http.Request) (services.SignupRequest, error) {
	var req services.SignupRequest
	if err := r.ParseMultipartForm(maxResumeSize); err != nil {
		return req, err
	}

	age, _ := strconv.Atoi(r.FormValue("age"))
	height, _ := strconv.ParseFloat(r.FormValue("height"), 64)
	weight, _ := strconv.ParseFloat(r.FormValue("weight"), 64)

	req = services.SignupRequest{
		Username:       r.FormValue("username"),
		Password:       r.FormValue("password"),
		Name:           r.FormValue("name"),
		Age:            age,
		Gender:         r.FormValue("gender"),
		ContactInfo:    r.FormValue("contactInfo"),
		Role:           entities.Role(r.FormValue("role")),
		Specialization: r.FormValue("specialization"),
		BloodType:      r.FormValue("bloodType"),
		Height:         height,
		Weight:         weight,
	}

	file, _, err := r.FormFile("resume")
	if err == http.ErrMissingFile {
		return req, nil
	}
	if err != nil {
		return req, err
	}
	defer file.Close()

	pdf, err := io.ReadAll(io.LimitReader(file, maxResumeSize))
	if err != nil {
		return req, err
	}
	req.ResumePDF = pdf
	return req, nil
}

// ChangePassword handles PUT /api/auth/password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "current and new password are required")
		return
	}

	if err := h.accounts.ChangePassword(r.Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
