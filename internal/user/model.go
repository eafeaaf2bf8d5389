package user

import "time"

type Role string

const (
	RoleAdmin           Role = "admin"
	RoleRetailer        Role = "retailer"
	RoleIndividualBuyer Role = "individual_buyer"
)

// NormalizeRole maps arbitrary input to a known role. Anything that is not
// an elevated role falls back to the lowest-privilege tier.
func NormalizeRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleRetailer:
		return RoleRetailer
	default:
		return RoleIndividualBuyer
	}
}

type User struct {
	ID         uint
	Name       string
	Email      string
	Password   string // bcrypt hash
	Role       Role
	IsVerified bool

	// One-time code state, present only while verification is pending.
	VerificationOTP *string
	OTPExpires      *time.Time

	// Retailer-only fields.
	BusinessName *string
	GSTNumber    *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	BusinessName string `json:"business_name"`
	GSTNumber    string `json:"gst_number"`
}
