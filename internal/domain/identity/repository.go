package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
)

// CitizenRepository defines the persistence interface for citizens
type CitizenRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Citizen, error)
	FindByEmail(ctx context.Context, email string) (*Citizen, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, citizen *Citizen) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// EmployeeRepository defines the persistence interface for employees
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByAgency(ctx context.Context, agency catalog.Agency) ([]*Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, employee *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository defines the persistence interface for roles
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	Save(ctx context.Context, role *Role) error
}
