package identity

import (
	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
)

// CallerKind classifies the authenticated caller of a request
type CallerKind string

const (
	CallerKindCitizen  CallerKind = "citizen"
	CallerKindEmployee CallerKind = "employee"
	CallerKindAdmin    CallerKind = "admin"
)

// Caller is the resolved identity making the current request. It is resolved
// once per request by the auth middleware and passed explicitly into every
// service call; services never re-derive it. Agency is set only for
// employees.
type Caller struct {
	Kind   CallerKind
	ID     uuid.UUID
	Agency catalog.Agency
}

// CitizenCaller builds a caller for a citizen
func CitizenCaller(id uuid.UUID) Caller {
	return Caller{Kind: CallerKindCitizen, ID: id}
}

// EmployeeCaller builds a caller for an employee of the given agency
func EmployeeCaller(id uuid.UUID, agency catalog.Agency) Caller {
	return Caller{Kind: CallerKindEmployee, ID: id, Agency: agency}
}

// AdminCaller builds a caller for a platform admin
func AdminCaller(id uuid.UUID) Caller {
	return Caller{Kind: CallerKindAdmin, ID: id}
}

// IsCitizen reports whether the caller is a citizen
func (c Caller) IsCitizen() bool {
	return c.Kind == CallerKindCitizen
}

// IsEmployee reports whether the caller is an employee
func (c Caller) IsEmployee() bool {
	return c.Kind == CallerKindEmployee
}

// IsAdmin reports whether the caller is a platform admin
func (c Caller) IsAdmin() bool {
	return c.Kind == CallerKindAdmin
}

// IsResolved reports whether the caller was successfully resolved.
// Unresolved callers must be rejected, never elevated to admin access.
func (c Caller) IsResolved() bool {
	return c.Kind != "" && c.ID != uuid.Nil
}
