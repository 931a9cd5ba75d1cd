package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/complaint"
	"github.com/shakwa/backend/internal/domain/shared"
	"github.com/shakwa/backend/internal/infrastructure/persistence/accessscope"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockNotAvailable is the postgres error code raised when lock_timeout expires
const lockNotAvailable = "55P03"

// DefaultLockWait bounds how long a locked read waits for a contended row
const DefaultLockWait = 3 * time.Second

// GormComplaintRepository implements complaint.Repository using GORM
type GormComplaintRepository struct {
	db       *gorm.DB
	lockWait time.Duration
}

// NewGormComplaintRepository creates a new GormComplaintRepository
func NewGormComplaintRepository(db *gorm.DB, lockWait time.Duration) *GormComplaintRepository {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	return &GormComplaintRepository{db: db, lockWait: lockWait}
}

// FindByID finds a complaint by its ID
func (r *GormComplaintRepository) FindByID(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	var c complaint.Complaint
	if err := dbFromContext(ctx, r.db).WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByIDForUpdate loads a complaint under FOR UPDATE. Must run inside a
// unit of work so the lock survives until commit. The lock wait is bounded
// with a transaction-local lock_timeout; hitting it maps to ErrLockTimeout.
func (r *GormComplaintRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*complaint.Complaint, error) {
	return r.lockedFind(ctx, "id = ?", id)
}

// FindByIDAndAgencyForUpdate is the agency-scoped locked read used by
// employees. A complaint outside the agency reads as not found rather than
// leaking its existence.
func (r *GormComplaintRepository) FindByIDAndAgencyForUpdate(ctx context.Context, id uuid.UUID, agency catalog.Agency) (*complaint.Complaint, error) {
	return r.lockedFind(ctx, "id = ? AND agency = ?", id, agency)
}

func (r *GormComplaintRepository) lockedFind(ctx context.Context, cond string, args ...interface{}) (*complaint.Complaint, error) {
	db := dbFromContext(ctx, r.db).WithContext(ctx)

	// SET LOCAL scopes the timeout to the surrounding transaction
	timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockWait.Milliseconds())
	if err := db.Exec(timeout).Error; err != nil {
		return nil, err
	}

	var c complaint.Complaint
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, append([]interface{}{cond}, args...)...).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		if isLockTimeout(err) {
			return nil, shared.ErrLockTimeout
		}
		return nil, err
	}
	return &c, nil
}

func isLockTimeout(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == lockNotAvailable
	}
	return false
}

// FindPage finds a page of complaints matching the effective query,
// newest first
func (r *GormComplaintRepository) FindPage(ctx context.Context, q complaint.Query) (shared.Paginated[*complaint.Complaint], error) {
	q.Filter = q.Filter.Normalize()
	db := dbFromContext(ctx, r.db).WithContext(ctx).Model(&complaint.Complaint{}).Scopes(accessscope.Scope(q))

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return shared.Paginated[*complaint.Complaint]{}, err
	}

	var items []*complaint.Complaint
	if err := db.
		Order("created_at DESC").
		Offset(q.Offset()).
		Limit(q.PageSize).
		Find(&items).Error; err != nil {
		return shared.Paginated[*complaint.Complaint]{}, err
	}

	return shared.NewPaginated(items, total, q.Page, q.PageSize), nil
}

// CountByStatus counts complaints per status within the effective query
func (r *GormComplaintRepository) CountByStatus(ctx context.Context, q complaint.Query) (map[catalog.ComplaintStatus]int64, error) {
	q.Status = nil

	type row struct {
		Status catalog.ComplaintStatus
		Count  int64
	}
	var rows []row
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&complaint.Complaint{}).
		Scopes(accessscope.Scope(q)).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[catalog.ComplaintStatus]int64, len(catalog.ComplaintStatuses))
	for _, s := range catalog.ComplaintStatuses {
		counts[s] = 0
	}
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

// Save creates or updates a complaint
func (r *GormComplaintRepository) Save(ctx context.Context, c *complaint.Complaint) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(c).Error
}

// Delete deletes a complaint
func (r *GormComplaintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Delete(&complaint.Complaint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormComplaintRepository implements complaint.Repository
var _ complaint.Repository = (*GormComplaintRepository)(nil)
