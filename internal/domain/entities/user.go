package entities

// Role identifies which dashboard a user may reach
type Role string

const (
	RolePatient    Role = "Patient"
	RoleDoctor     Role = "Doctor"
	RolePharmacist Role = "Pharmacist"
	RoleAdmin      Role = "Admin"
)

// Valid reports whether r is one of the four known roles
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RolePharmacist, RoleAdmin:
		return true
	}
	return false
}

// AccountStatus mirrors the upstream activation state of an account
type AccountStatus string

const (
	AccountActive   AccountStatus = "ACTIVE"
	AccountInactive AccountStatus = "INACTIVE"
)

// Identity is the authenticated principal persisted in the session
// store. It mirrors the upstream login response; the hospital API
// remains the source of truth.
type Identity struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Profile carries the base fields shared by every account type
type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
	ContactInfo string `json:"contactInfo"`
}

// Doctor is a doctor directory entry / profile
type Doctor struct {
	Profile
	Specialization string `json:"specialization"`
	ResumeURL      string `json:"resumeUrl,omitempty"`
}

// Patient is a patient profile
type Patient struct {
	Profile
	BloodType string  `json:"bloodType"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
}

// Pharmacist is a pharmacist profile
type Pharmacist struct {
	Profile
}

// InactiveUser is an admin-facing row for accounts awaiting activation
type InactiveUser struct {
	ID          int64         `json:"id"`
	Username    string        `json:"username"`
	Name        string        `json:"name"`
	ContactInfo string        `json:"contactInfo"`
	Role        Role          `json:"role"`
	Status      AccountStatus `json:"status"`
}
