package domain

import (
	"strings"
	"time"
)

// Role is the self-declared account type chosen at signup. It drives every
// access decision and never changes afterwards.
type Role string

const (
	RoleVendor   Role = "vendor"
	RoleBuyer    Role = "buyer"
	RoleInvestor Role = "investor"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Roles lists every valid role in declaration order.
var Roles = []Role{RoleVendor, RoleBuyer, RoleInvestor, RoleEmployee, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts client input into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// KYCStatus tracks identity verification bookkeeping.
type KYCStatus string

const (
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// User is the stored identity record. Email is the unique natural key and
// is always kept lowercased.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	Role         Role
	PasswordHash string
	KYCStatus    KYCStatus
	CompanyID    *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SanitizedUser is the only user representation handed to clients and
// downstream handlers.
type SanitizedUser struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      Role      `json:"role"`
	KYCStatus KYCStatus `json:"kyc_status"`
	CompanyID *string   `json:"company_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Sanitize projects the stored record into its client-safe form. The
// receiver is left untouched.
func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		KYCStatus: u.KYCStatus,
		CompanyID: u.CompanyID,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NormalizeEmail returns the lookup key for an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
