package identity

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/markethub/backend/internal/domain/shared"
)

// UserRole represents the role of a user account
type UserRole string

const (
	UserRoleClient   UserRole = "client"
	UserRoleSupplier UserRole = "supplier"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a user account. Email is the login identifier and is
// unique system-wide. Suppliers additionally own a partner.Supplier record.
type User struct {
	shared.BaseAggregateRoot
	Email        string   `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string   `gorm:"type:varchar(100);not null"`
	FirstName    string   `gorm:"type:varchar(100)"`
	LastName     string   `gorm:"type:varchar(100)"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'client'"`
	Active       bool     `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user account
func NewUser(email, password string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateUserEmail(email); err != nil {
		return nil, err
	}
	if err := validateUserPassword(password); err != nil {
		return nil, err
	}
	if err := validateUserRole(role); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
		Active:            true,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword sets a new password
func (u *User) ChangePassword(password string) error {
	if err := validateUserPassword(password); err != nil {
		return err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetName sets the user's display name
func (u *User) SetName(firstName, lastName string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsSupplier returns true for accounts with the supplier role
func (u *User) IsSupplier() bool {
	return u.Role == UserRoleSupplier
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// validateUserEmail validates the email address
func validateUserEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

// validateUserPassword validates password strength
func validateUserPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

// validateUserRole validates the role value
func validateUserRole(role UserRole) error {
	switch role {
	case UserRoleClient, UserRoleSupplier:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be client or supplier")
	}
}
