package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Employee represents a government-agency employee. The assigned agency
// bounds which complaints the employee may see and act on.
type Employee struct {
	shared.AuditedEntity
	FirstName    string         `gorm:"type:varchar(100);not null"`
	LastName     string         `gorm:"type:varchar(100)"`
	Email        string         `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string         `gorm:"type:varchar(200);not null"`
	Agency       catalog.Agency `gorm:"type:varchar(50);not null;index"`
	RoleID       uuid.UUID      `gorm:"type:uuid;not null"`
}

// TableName returns the table name for GORM
func (Employee) TableName() string {
	return "employees"
}

// NewEmployee creates a new employee with a hashed password. The email is
// expected to be pre-generated and unique (see the provisioning service).
func NewEmployee(firstName, lastName, email, password string, agency catalog.Agency, roleID uuid.UUID) (*Employee, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "First name is required")
	}
	if !agency.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "A valid government agency is required")
	}
	if roleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role is required")
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

	return &Employee{
		AuditedEntity: shared.AuditedEntity{BaseEntity: shared.NewBaseEntity()},
		FirstName:     firstName,
		LastName:      strings.TrimSpace(lastName),
		Email:         normalizeEmail(email),
		PasswordHash:  hash,
		Agency:        agency,
		RoleID:        roleID,
	}, nil
}

// FullName returns the employee's display name
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// CheckPassword verifies a plaintext password against the stored hash
func (e *Employee) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) == nil
}

// UpdateName updates the employee's name fields
func (e *Employee) UpdateName(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return shared.NewDomainError("INVALID_INPUT", "First name is required")
	}
	e.FirstName = firstName
	e.LastName = strings.TrimSpace(lastName)
	e.UpdatedAt = time.Now()
	return nil
}

// AssignRole changes the employee's role
func (e *Employee) AssignRole(roleID uuid.UUID) error {
	if roleID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Role is required")
	}
	e.RoleID = roleID
	e.UpdatedAt = time.Now()
	return nil
}
