package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCitizenRepository implements identity.CitizenRepository using GORM
type GormCitizenRepository struct {
	db *gorm.DB
}

// NewGormCitizenRepository creates a new GormCitizenRepository
func NewGormCitizenRepository(db *gorm.DB) *GormCitizenRepository {
	return &GormCitizenRepository{db: db}
}

// FindByID finds a citizen by ID
func (r *GormCitizenRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Citizen, error) {
	var c identity.Citizen
	if err := dbFromContext(ctx, r.db).WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByEmail finds a citizen by email
func (r *GormCitizenRepository) FindByEmail(ctx context.Context, email string) (*identity.Citizen, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var c identity.Citizen
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ExistsByEmail checks if a citizen with the given email exists
func (r *GormCitizenRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&identity.Citizen{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a citizen
func (r *GormCitizenRepository) Save(ctx context.Context, citizen *identity.Citizen) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(citizen).Error
}

// Delete deletes a citizen
func (r *GormCitizenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Delete(&identity.Citizen{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCitizenRepository implements identity.CitizenRepository
var _ identity.CitizenRepository = (*GormCitizenRepository)(nil)
