package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements identity.EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Employee, error) {
	var e identity.Employee
	if err := dbFromContext(ctx, r.db).WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByEmail finds an employee by email
func (r *GormEmployeeRepository) FindByEmail(ctx context.Context, email string) (*identity.Employee, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var e identity.Employee
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// FindByAgency finds all employees assigned to an agency
func (r *GormEmployeeRepository) FindByAgency(ctx context.Context, agency catalog.Agency) ([]*identity.Employee, error) {
	var employees []*identity.Employee
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Where("agency = ?", agency).
		Order("created_at ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// ExistsByEmail checks if an employee with the given email exists
func (r *GormEmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	if err := dbFromContext(ctx, r.db).WithContext(ctx).
		Model(&identity.Employee{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *identity.Employee) error {
	return dbFromContext(ctx, r.db).WithContext(ctx).Save(employee).Error
}

// Delete deletes an employee
func (r *GormEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := dbFromContext(ctx, r.db).WithContext(ctx).Delete(&identity.Employee{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormEmployeeRepository implements identity.EmployeeRepository
var _ identity.EmployeeRepository = (*GormEmployeeRepository)(nil)
