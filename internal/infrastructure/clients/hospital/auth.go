package hospital

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carebridge/hms-gateway/internal/domain/entities"
	apperrors "github.com/carebridge/hms-gateway/pkg/errors"
)

// LoginRequest is the credential payload sent to the hospital API
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupUserRequest creates the base account in the two-step signup
// flow. The role decides the initial account status upstream: patients
// come back active, every other role starts inactive.
type SignupUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	ContactInfo string `json:"contactInfo"`
	Role        string `json:"role"`
}

// DoctorSignupRequest completes a doctor account with its role fields
type DoctorSignupRequest struct {
	ID             int64  `json:"id"`
	Specialization string `json:"specialization"`
	ResumeURL      string `json:"resumeUrl,omitempty"`
}

// PatientSignupRequest completes a patient account with its role fields
type PatientSignupRequest struct {
	ID        int64   `json:"id"`
	BloodType string  `json:"bloodType"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
}

// RoleSignupRequest completes a pharmacist or admin account, which
// carry no role-specific fields beyond the base user id
type RoleSignupRequest struct {
	ID int64 `json:"id"`
}

// Login exchanges credentials for the authenticated identity
func (c *Client) Login(ctx context.Context, username, password string) (*entities.Identity, error) {
	var identity entities.Identity
	err := c.doJSON(ctx, http.MethodPost, "/login", nil, LoginRequest{
		Username: username,
		Password: password,
	}, &identity)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// SignupUser performs step one of signup and returns the new user id
func (c *Client) SignupUser(ctx context.Context, req SignupUserRequest) (int64, error) {
	var userID int64
	if err := c.doJSON(ctx, http.MethodPost, "/signup/user", nil, req, &userID); err != nil {
		return 0, err
	}
	return userID, nil
}

// CompleteSignup performs step two of signup, attaching the role
// payload to the account created in step one. The body must be the
// signup request type matching the role.
func (c *Client) CompleteSignup(ctx context.Context, role entities.Role, body any) error {
	if !role.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	path := "/signup/" + rolePath(role)
	return c.doJSON(ctx, http.MethodPost, path, nil, body, nil)
}

// ChangePassword updates a user's password after verifying the
// current one upstream
func (c *Client) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	path := fmt.Sprintf("/users/%d/change-password", userID)
	return c.doJSON(ctx, http.MethodPut, path, nil, body, nil)
}

func rolePath(role entities.Role) string {
	switch role {
	case entities.RoleDoctor:
		return "doctor"
	case entities.RolePatient:
		return "patient"
	case entities.RolePharmacist:
		return "pharmacist"
	default:
		return "admin"
	}
}
