package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/domain/providers"
	"github.com/carebridge/hms-gateway/internal/infrastructure/clients/hospital"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
	"github.com/carebridge/hms-gateway/pkg/validate"
)

// AccountAPI is the slice of the hospital client the account flows use
type AccountAPI interface {
	Login(ctx context.Context, username, password string) (*entities.Identity, error)
	SignupUser(ctx context.Context, req hospital.SignupUserRequest) (int64, error)
	CompleteSignup(ctx context.Context, role entities.Role, body any) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	GetUploadURL(ctx context.Context, fileName string) (string, error)
	UploadResume(ctx context.Context, presignedURL string, pdf []byte) (string, error)
	ListInactiveUsers(ctx context.Context) ([]entities.InactiveUser, error)
	ActivateAccount(ctx context.Context, userID int64) error
	DeleteAccount(ctx context.Context, userID int64) error
	SetAvailability(ctx context.Context, availability entities.Availability) error
	GetAvailability(ctx context.Context, doctorID int64) (*entities.Availability, error)
	HasAvailability(ctx context.Context, doctorID int64) (bool, error)
}

// AccountService handles sessions, signup and account administration
type AccountService struct {
	api      AccountAPI
	sessions providers.SessionStore
}

// NewAccountService creates a new account service
func NewAccountService(api AccountAPI, sessions providers.SessionStore) *AccountService {
	return &AccountService{api: api, sessions: sessions}
}

// SignupRequest is the combined two-step signup form. Role fields are
// read according to Role; ResumePDF is doctor-only and optional.
type SignupRequest struct {
	Username    string        `json:"username" validate:"required"`
	Password    string        `json:"password" validate:"required,hms_password"`
	Name        string        `json:"name" validate:"required"`
	Age         int           `json:"age" validate:"gt=0"`
	Gender      string        `json:"gender"`
	ContactInfo string        `json:"contactInfo" validate:"required"`
	Role        entities.Role `json:"role" validate:"required"`

	Specialization string  `json:"specialization,omitempty"`
	BloodType      string  `json:"bloodType,omitempty"`
	Height         float64 `json:"height,omitempty"`
	Weight         float64 `json:"weight,omitempty"`

	ResumePDF []byte `json:"-"`
}

// Login authenticates against the hospital API and binds the identity
// to the session. The returned session id goes into the cookie.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *entities.Identity, error) {
	identity, err := s.api.Login(ctx, username, password)
	if err != nil {
		return "", nil, err
	}
	if !identity.Role.Valid() {
		return "", nil, apperrors.NewInternalError(
			fmt.Sprintf("upstream returned unknown role %q", identity.Role), nil)
	}

	sessionID := uuid.New().String()
	if err := s.sessions.Set(ctx, sessionID, identity); err != nil {
		return "", nil, apperrors.NewInternalError("failed to persist session", err)
	}
	return sessionID, identity, nil
}

// Logout clears the session
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Clear(ctx, sessionID)
}

// Signup runs the two-step flow: create the base user, then attach
// the role profile. A doctor's resume, when present, is uploaded to
// object storage first so its URL can ride along with the profile.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (int64, error) {
	if err := validate.Password(req.Password); err != nil {
		return 0, apperrors.NewValidationError(err.Error())
	}
	if !req.Role.Valid() {
		return 0, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}

	userID, err := s.api.SignupUser(ctx, hospital.SignupUserRequest{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Age:         req.Age,
		Gender:      req.Gender,
		ContactInfo: req.ContactInfo,
		Role:        string(req.Role),
	})
	if err != nil {
		return 0, err
	}

	body, err := s.roleSignupBody(ctx, userID, req)
	if err != nil {
		return userID, err
	}
	if err := s.api.CompleteSignup(ctx, req.Role, body); err != nil {
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Int64("user_id", userID).
			Str("role", string(req.Role)).
			Msg("base account created but role profile failed")
		return userID, apperrors.NewPartialError(
			fmt.Sprintf("account %d created, but the %s profile was not saved", userID, req.Role), err)
	}
	return userID, nil
}

func (s *AccountService) roleSignupBody(ctx context.Context, userID int64, req SignupRequest) (any, error) {
	switch req.Role {
	case entities.RoleDoctor:
		body := hospital.DoctorSignupRequest{
			ID:             userID,
			Specialization: req.Specialization,
		}
		if len(req.ResumePDF) > 0 {
			resumeURL, err := s.uploadResume(ctx, req.ResumePDF)
			if err != nil {
				return nil, err
			}
			body.ResumeURL = resumeURL
		}
		return body, nil
	case entities.RolePatient:
		return hospital.PatientSignupRequest{
			ID:        userID,
			BloodType: req.BloodType,
			Height:    req.Height,
			Weight:    req.Weight,
		}, nil
	default:
		return hospital.RoleSignupRequest{ID: userID}, nil
	}
}

func (s *AccountService) uploadResume(ctx context.Context, pdf []byte) (string, error) {
	fileName := uuid.New().String() + ".pdf"
	presigned, err := s.api.GetUploadURL(ctx, fileName)
	if err != nil {
		return "", err
	}
	return s.api.UploadResume(ctx, presigned, pdf)
}

// ChangePassword validates the new password locally, then lets the
// hospital API verify the current one
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if err := validate.Password(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return s.api.ChangePassword(ctx, userID, currentPassword, newPassword)
}

// InactiveUsers lists accounts awaiting activation, for the admin
// dashboard
func (s *AccountService) InactiveUsers(ctx context.Context) ([]entities.InactiveUser, error) {
	return s.api.ListInactiveUsers(ctx)
}

// ActivateAccount activates an inactive account
func (s *AccountService) ActivateAccount(ctx context.Context, userID int64) error {
	return s.api.ActivateAccount(ctx, userID)
}

// DeleteAccount removes an account
func (s *AccountService) DeleteAccount(ctx context.Context, userID int64) error {
	return s.api.DeleteAccount(ctx, userID)
}

// AvailabilityForm is a doctor's weekly schedule as submitted
type AvailabilityForm struct {
	DoctorID         int64                               `json:"doctorId" validate:"required"`
	WeeklySchedule   map[string]validate.WeekdaySchedule `json:"weeklySchedule" validate:"required"`
	UnavailableSlots []string                            `json:"unavailableSlots"`
}

// SetAvailability validates the schedule and stores it upstream.
// Working days must have both ends, ordered, on half-hour boundaries.
func (s *AccountService) SetAvailability(ctx context.Context, form AvailabilityForm) error {
	if err := validate.WeeklySchedule(form.WeeklySchedule); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	schedule := make(map[string]entities.TimeRange, len(form.WeeklySchedule))
	for day, d := range form.WeeklySchedule {
		if !d.Working {
			continue
		}
		schedule[day] = entities.TimeRange{StartTime: d.StartTime, EndTime: d.EndTime}
	}

	return s.api.SetAvailability(ctx, entities.Availability{
		DoctorID:         form.DoctorID,
		WeeklySchedule:   schedule,
		UnavailableSlots: form.UnavailableSlots,
	})
}

// Availability returns the doctor's stored schedule, or nil when none
// has been set up yet
func (s *AccountService) Availability(ctx context.Context, doctorID int64) (*entities.Availability, error) {
	exists, err := s.api.HasAvailability(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return s.api.GetAvailability(ctx, doctorID)
}
