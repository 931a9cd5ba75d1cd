package identity

import (
	"strings"

	"github.com/shakwa/backend/internal/domain/shared"
)

// Role represents an employee role within an agency
type Role struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Role) TableName() string {
	return "roles"
}

// NewRole creates a new role
func NewRole(name, description string) (*Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role name is required")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Role name cannot exceed 100 characters")
	}
	return &Role{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}
