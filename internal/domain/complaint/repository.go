package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/shared"
)

// Query carries the optional list filters for complaints. Nil fields mean
// "no constraint". The access scope layer forces CitizenID or Agency
// depending on who is asking; handlers never set those directly for
// non-admin callers.
type Query struct {
	shared.Filter
	Status      *catalog.ComplaintStatus
	Type        *catalog.ComplaintType
	Governorate *catalog.Governorate
	Agency      *catalog.Agency
	CitizenID   *uuid.UUID
}

// Repository defines the persistence interface for complaints
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Complaint, error)

	// FindByIDForUpdate loads a complaint under a pessimistic row lock.
	// The lock wait is bounded; exceeding it yields shared.ErrLockTimeout.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Complaint, error)

	// FindByIDAndAgencyForUpdate is the agency-scoped variant used by
	// employees. A complaint outside the agency reads as not found.
	FindByIDAndAgencyForUpdate(ctx context.Context, id uuid.UUID, agency catalog.Agency) (*Complaint, error)

	FindPage(ctx context.Context, q Query) (shared.Paginated[*Complaint], error)
	CountByStatus(ctx context.Context, q Query) (map[catalog.ComplaintStatus]int64, error)
	Save(ctx context.Context, c *Complaint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TxManager runs a unit of work inside a database transaction. Lock-based
// operations must run inside one so that row locks are held until commit.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
