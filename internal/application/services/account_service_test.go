package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/hms-gateway/internal/adapters/session"
	"github.com/carebridge/hms-gateway/internal/domain/entities"
	"github.com/carebridge/hms-gateway/internal/infrastructure/clients/hospital"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
	"github.com/carebridge/hms-gateway/pkg/validate"
)

type mockAccountAPI struct {
	mock.Mock
}

func (m *mockAccountAPI) Login(ctx context.Context, username, password string) (*entities.Identity, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Identity), args.Error(1)
}

func (m *mockAccountAPI) SignupUser(ctx context.Context, req hospital.SignupUserRequest) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountAPI) CompleteSignup(ctx context.Context, role entities.Role, body any) error {
	return m.Called(ctx, role, body).Error(0)
}

func (m *mockAccountAPI) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	return m.Called(ctx, userID, currentPassword, newPassword).Error(0)
}

func (m *mockAccountAPI) GetUploadURL(ctx context.Context, fileName string) (string, error) {
	args := m.Called(ctx, fileName)
	return args.String(0), args.Error(1)
}

func (m *mockAccountAPI) UploadResume(ctx context.Context, presignedURL string, pdf []byte) (string, error) {
	args := m.Called(ctx, presignedURL, pdf)
	return args.String(0), args.Error(1)
}

func (m *mockAccountAPI) ListInactiveUsers(ctx context.Context) ([]entities.InactiveUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.InactiveUser), args.Error(1)
}

func (m *mockAccountAPI) ActivateAccount(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAccountAPI) DeleteAccount(ctx context.Context, userID int64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockAccountAPI) SetAvailability(ctx context.Context, availability entities.Availability) error {
	return m.Called(ctx, availability).Error(0)
}

func (m *mockAccountAPI) GetAvailability(ctx context.Context, doctorID int64) (*entities.Availability, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Availability), args.Error(1)
}

func (m *mockAccountAPI) HasAvailability(ctx context.Context, doctorID int64) (bool, error) {
	args := m.Called(ctx, doctorID)
	return args.Bool(0), args.Error(1)
}

func TestLoginStoresSession(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("Login", mock.Anything, "grace", "Passw0rd!").Return(&entities.Identity{
		UserID: 42, Name: "Grace", Role: entities.RoleDoctor,
	}, nil)

	store := session.NewMemoryStore(nil)
	svc := NewAccountService(api, store)

	sessionID, identity, err := svc.Login(context.Background(), "grace", "Passw0rd!")
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, entities.RoleDoctor, identity.Role)

	stored, err := store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(42), stored.UserID)

	require.NoError(t, svc.Logout(context.Background(), sessionID))
	stored, err = store.Get(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	api := new(mockAccountAPI)
	svc := NewAccountService(api, session.NewMemoryStore(nil))

	_, err := svc.Signup(context.Background(), SignupRequest{
		Username: "ada",
		Password: "short",
		Role:     entities.RolePatient,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	api.AssertNotCalled(t, "SignupUser", mock.Anything, mock.Anything)
}

func TestSignupPatientTwoSteps(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("SignupUser", mock.Anything, mock.MatchedBy(func(req hospital.SignupUserRequest) bool {
		return req.Username == "ada" && req.Role == "Patient"
	})).Return(int64(21), nil)
	api.On("CompleteSignup", mock.Anything, entities.RolePatient, hospital.PatientSignupRequest{
		ID:        21,
		BloodType: "O+",
		Height:    170,
		Weight:    64,
	}).Return(nil)

	svc := NewAccountService(api, session.NewMemoryStore(nil))
	userID, err := svc.Signup(context.Background(), SignupRequest{
		Username:    "ada",
		Password:    "Abcdef1!",
		Name:        "Ada",
		Age:         30,
		ContactInfo: "ada@example.com",
		Role:        entities.RolePatient,
		BloodType:   "O+",
		Height:      170,
		Weight:      64,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), userID)
	api.AssertExpectations(t)
}

func TestSignupDoctorUploadsResume(t *testing.T) {
	pdf := []byte("%PDF-1.4")

	api := new(mockAccountAPI)
	api.On("SignupUser", mock.Anything, mock.Anything).Return(int64(9), nil)
	api.On("GetUploadURL", mock.Anything, mock.MatchedBy(func(name string) bool {
		return len(name) > 4 && name[len(name)-4:] == ".pdf"
	})).Return("https://bucket/resume.pdf?sig=abc", nil)
	api.On("UploadResume", mock.Anything, "https://bucket/resume.pdf?sig=abc", pdf).
		Return("https://bucket/resume.pdf", nil)
	api.On("CompleteSignup", mock.Anything, entities.RoleDoctor, mock.MatchedBy(func(body any) bool {
		req, ok := body.(hospital.DoctorSignupRequest)
		return ok && req.ID == 9 && req.ResumeURL == "https://bucket/resume.pdf"
	})).Return(nil)

	svc := NewAccountService(api, session.NewMemoryStore(nil))
	_, err := svc.Signup(context.Background(), SignupRequest{
		Username:       "grace",
		Password:       "Abcdef1!",
		Name:           "Grace",
		Age:            40,
		ContactInfo:    "grace@example.com",
		Role:           entities.RoleDoctor,
		Specialization: "CARDIOLOGY",
		ResumePDF:      pdf,
	})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestSignupStepTwoFailureIsPartial(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("SignupUser", mock.Anything, mock.Anything).Return(int64(9), nil)
	api.On("CompleteSignup", mock.Anything, entities.RolePharmacist, mock.Anything).
		Return(apperrors.NewUpstreamError("hospital api unreachable", nil))

	svc := NewAccountService(api, session.NewMemoryStore(nil))
	userID, err := svc.Signup(context.Background(), SignupRequest{
		Username:    "phil",
		Password:    "Abcdef1!",
		Name:        "Phil",
		Age:         35,
		ContactInfo: "phil@example.com",
		Role:        entities.RolePharmacist,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypePartial, apperrors.TypeOf(err))
	assert.Equal(t, int64(9), userID, "caller learns the orphaned user id")
}

func TestChangePasswordValidatesNewPassword(t *testing.T) {
	api := new(mockAccountAPI)
	svc := NewAccountService(api, session.NewMemoryStore(nil))

	err := svc.ChangePassword(context.Background(), 42, "Oldpass1!", "alllowercase1!")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	api.AssertNotCalled(t, "ChangePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetAvailabilityValidatesSchedule(t *testing.T) {
	api := new(mockAccountAPI)
	svc := NewAccountService(api, session.NewMemoryStore(nil))

	err := svc.SetAvailability(context.Background(), AvailabilityForm{
		DoctorID: 3,
		WeeklySchedule: map[string]validate.WeekdaySchedule{
			"MONDAY": {Working: true, StartTime: "09:15", EndTime: "12:00"},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
	api.AssertNotCalled(t, "SetAvailability", mock.Anything, mock.Anything)
}

func TestSetAvailabilityDropsNonWorkingDays(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("SetAvailability", mock.Anything, entities.Availability{
		DoctorID: 3,
		WeeklySchedule: map[string]entities.TimeRange{
			"MONDAY": {StartTime: "09:00", EndTime: "12:30"},
		},
		UnavailableSlots: []string{"2026-09-14T09:00"},
	}).Return(nil)

	svc := NewAccountService(api, session.NewMemoryStore(nil))
	err := svc.SetAvailability(context.Background(), AvailabilityForm{
		DoctorID: 3,
		WeeklySchedule: map[string]validate.WeekdaySchedule{
			"MONDAY":  {Working: true, StartTime: "09:00", EndTime: "12:30"},
			"TUESDAY": {Working: false},
		},
		UnavailableSlots: []string{"2026-09-14T09:00"},
	})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestAvailabilityNilWhenUnset(t *testing.T) {
	api := new(mockAccountAPI)
	api.On("HasAvailability", mock.Anything, int64(3)).Return(false, nil)

	svc := NewAccountService(api, session.NewMemoryStore(nil))
	availability, err := svc.Availability(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, availability)
	api.AssertNotCalled(t, "GetAvailability", mock.Anything, mock.Anything)
}
