// Package accessscope narrows complaint queries to what the caller is
// allowed to see. Citizens see only their own complaints, employees see
// only their agency's, admins see everything. Resolution is a pure
// function of the caller and the requested filters so it can be tested
// without a database.
package accessscope

import (
	"github.com/shakwa/backend/internal/domain/complaint"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Resolve returns the effective query for the caller. Caller-forced
// constraints override whatever the request asked for:
//   - citizens are pinned to their own citizen_id
//   - employees are pinned to their agency; an employee without an
//     agency is rejected, not widened
//   - admins keep the requested filters untouched
//
// An unresolved caller always fails. Missing identity is never treated
// as elevated access.
func Resolve(caller identity.Caller, q complaint.Query) (complaint.Query, error) {
	if !caller.IsResolved() {
		return complaint.Query{}, shared.ErrUnauthorized
	}

	switch {
	case caller.IsCitizen():
		id := caller.ID
		q.CitizenID = &id
	case caller.IsEmployee():
		if !caller.Agency.IsValid() {
			return complaint.Query{}, shared.ErrUnauthorized
		}
		agency := caller.Agency
		q.Agency = &agency
	case caller.IsAdmin():
		// unscoped
	default:
		return complaint.Query{}, shared.ErrUnauthorized
	}
	return q, nil
}

// Apply translates an effective query into GORM conditions. It must only
// ever be called with the output of Resolve.
func Apply(db *gorm.DB, q complaint.Query) *gorm.DB {
	if q.CitizenID != nil {
		db = db.Where("citizen_id = ?", *q.CitizenID)
	}
	if q.Agency != nil {
		db = db.Where("agency = ?", *q.Agency)
	}
	if q.Status != nil {
		db = db.Where("status = ?", *q.Status)
	}
	if q.Type != nil {
		db = db.Where("type = ?", *q.Type)
	}
	if q.Governorate != nil {
		db = db.Where("governorate = ?", *q.Governorate)
	}
	return db
}

// Scope wraps Apply as a GORM scope function
func Scope(q complaint.Query) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return Apply(db, q)
	}
}

// CanRead reports whether the caller may read a single loaded complaint.
// It mirrors the same rules as Resolve for point lookups.
func CanRead(caller identity.Caller, c *complaint.Complaint) bool {
	if !caller.IsResolved() || c == nil {
		return false
	}
	switch {
	case caller.IsAdmin():
		return true
	case caller.IsCitizen():
		return c.IsOwnedBy(caller.ID)
	case caller.IsEmployee():
		return caller.Agency.IsValid() && c.BelongsToAgency(caller.Agency)
	}
	return false
}

// CanDelete reports whether the caller may delete a complaint. The owning
// citizen, a matching-agency employee, and admins may delete.
func CanDelete(caller identity.Caller, c *complaint.Complaint) bool {
	return CanRead(caller, c)
}
