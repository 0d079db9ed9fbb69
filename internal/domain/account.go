package domain

import "time"

// Role identifies what kind of actor an account represents. Admin access is
// tiered: ADMIN has the full panel, SUPPORT_ADMIN and CONTENT_ADMIN are
// restricted variants.
type Role string

const (
	RoleAdmin        Role = "ADMIN"
	RoleSupportAdmin Role = "SUPPORT_ADMIN"
	RoleContentAdmin Role = "CONTENT_ADMIN"
	RoleEmployer     Role = "EMPLOYER"
	RoleCandidate    Role = "CANDIDATE"
)

// AccountStatus represents lifecycle states for an account.
type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "ACTIVE"
	AccountStatusPending     AccountStatus = "PENDING"
	AccountStatusSuspended   AccountStatus = "SUSPENDED"
	AccountStatusDeactivated AccountStatus = "DEACTIVATED"
	AccountStatusInactive    AccountStatus = "INACTIVE"
)

// Account is the domain model for every login-capable identity: candidates,
// employers and admin staff. Accounts are never physically deleted; IsDeleted
// soft-deletes them.
type Account struct {
	ID           string
	Name         string
	Email        string
	Phone        *string
	PasswordHash string
	Role         Role
	Status       AccountStatus
	IsDeleted    bool
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
