package identity

import (
	"strings"
	"time"

	"github.com/shakwa/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Citizen represents a registered citizen who files complaints
type Citizen struct {
	shared.AuditedEntity
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Citizen) TableName() string {
	return "citizens"
}

// NewCitizen creates a new citizen with a hashed password
func NewCitizen(firstName, lastName, email, password string) (*Citizen, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "First name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Citizen{
		AuditedEntity: shared.AuditedEntity{BaseEntity: shared.NewBaseEntity()},
		FirstName:     firstName,
		LastName:      lastName,
		Email:         normalizeEmail(email),
		PasswordHash:  hash,
	}, nil
}

// FullName returns the citizen's display name
func (c *Citizen) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CheckPassword verifies a plaintext password against the stored hash
func (c *Citizen) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (c *Citizen) ChangePassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	c.PasswordHash = hash
	c.UpdatedAt = time.Now()
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 200 || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Email is not valid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
