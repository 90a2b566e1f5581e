package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/poolcrm/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// AdminRole determines what an admin may do. Owners manage other admins and
// destructive operations; staff handle day-to-day CRM work.
type AdminRole string

const (
	AdminRoleOwner AdminRole = "owner"
	AdminRoleStaff AdminRole = "staff"
)

// Password cost for bcrypt
const bcryptCost = 12

// Admin represents a back-office user of the CRM
type Admin struct {
	shared.BaseAggregateRoot
	Email        string
	FullName     string
	PasswordHash string
	Role         AdminRole
	Active       bool
	LastLoginAt  *time.Time
}

// NewAdmin creates a new active admin with required fields
func NewAdmin(email, fullName, password string, role AdminRole) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateFullName(fullName); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role != AdminRoleOwner && role != AdminRoleStaff {
		return nil, shared.NewValidationError("role must be owner or staff")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError(shared.CodeInternal, "Failed to hash password")
	}

	admin := &Admin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		FullName:          strings.TrimSpace(fullName),
		PasswordHash:      passwordHash,
		Role:              role,
		Active:            true,
	}

	admin.AddDomainEvent(NewAdminCreatedEvent(admin))

	return admin, nil
}

// SetFullName updates the admin's display name
func (a *Admin) SetFullName(fullName string) error {
	if err := validateFullName(fullName); err != nil {
		return err
	}

	a.FullName = strings.TrimSpace(fullName)
	a.Touch()
	a.IncrementVersion()

	return nil
}

// SetPassword sets a new password (owner reset, no old password check)
func (a *Admin) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError(shared.CodeInternal, "Failed to hash password")
	}

	a.PasswordHash = passwordHash
	a.Touch()
	a.IncrementVersion()

	return nil
}

// ChangePassword changes the password after verifying the current one
func (a *Admin) ChangePassword(oldPassword, newPassword string) error {
	if !a.VerifyPassword(oldPassword) {
		return shared.NewValidationError("current password is incorrect")
	}
	return a.SetPassword(newPassword)
}

// VerifyPassword verifies if the provided password matches
func (a *Admin) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password))
	return err == nil
}

// Deactivate disables login for this admin
func (a *Admin) Deactivate() error {
	if !a.Active {
		return shared.NewConflictError("admin is already deactivated")
	}

	a.Active = false
	a.Touch()
	a.IncrementVersion()

	a.AddDomainEvent(NewAdminDeactivatedEvent(a))

	return nil
}

// Activate re-enables login for this admin
func (a *Admin) Activate() error {
	if a.Active {
		return shared.NewConflictError("admin is already active")
	}

	a.Active = true
	a.Touch()
	a.IncrementVersion()

	return nil
}

// RecordLogin records a successful login
func (a *Admin) RecordLogin() {
	now := time.Now()
	a.LastLoginAt = &now
	a.Touch()
	a.IncrementVersion()
}

// IsOwner returns true for the owner role
func (a *Admin) IsOwner() bool {
	return a.Role == AdminRoleOwner
}

// CanLogin returns true if the admin may authenticate
func (a *Admin) CanLogin() bool {
	return a.Active
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return shared.NewValidationError("email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewValidationError("email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("invalid email format")
	}
	return nil
}

func validateFullName(fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewValidationError("full name cannot be empty")
	}
	if len(fullName) > 200 {
		return shared.NewValidationError("full name cannot exceed 200 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewValidationError("password cannot exceed 128 characters")
	}
	hasLetter := regexp.MustCompile(`[a-zA-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)
	if !hasLetter || !hasNumber {
		return shared.NewValidationError("password must contain at least one letter and one number")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
