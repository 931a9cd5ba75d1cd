package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	emailDomain      = "gov.sy"
	maxEmailAttempts = 1000
)

// EmployeeService handles employee provisioning and management. Creation,
// update and deletion are admin-only; listing and reads are bounded by
// the caller's agency.
type EmployeeService struct {
	employeeRepo identity.EmployeeRepository
	roleRepo     identity.RoleRepository
	logger       *zap.Logger
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(
	employeeRepo identity.EmployeeRepository,
	roleRepo identity.RoleRepository,
	logger *zap.Logger,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		roleRepo:     roleRepo,
		logger:       logger,
	}
}

// Create provisions a new employee for an agency. The email address is
// generated from the transliterated names and the agency label; it is
// never taken from the request.
func (s *EmployeeService) Create(ctx context.Context, caller identity.Caller, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	if !caller.IsResolved() || !caller.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	agency, err := catalog.ParseAgency(req.GovernmentAgency)
	if err != nil {
		return nil, err
	}

	roleID, err := uuid.Parse(req.RoleID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid role id")
	}
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid role id")
		}
		return nil, err
	}

	email, err := s.generateEmail(ctx, req.FirstName, req.LastName, agency)
	if err != nil {
		return nil, err
	}

	employee, err := identity.NewEmployee(req.FirstName, req.LastName, email, req.Password, agency, roleID)
	if err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee provisioned",
		zap.String("employee_id", employee.ID.String()),
		zap.String("agency", string(agency)))

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// List returns the employees of an agency. Employees always list their
// own agency; admins choose one explicitly.
func (s *EmployeeService) List(ctx context.Context, caller identity.Caller, agencyParam string) ([]EmployeeResponse, error) {
	if !caller.IsResolved() {
		return nil, shared.ErrUnauthorized
	}

	var agency catalog.Agency
	switch {
	case caller.IsEmployee():
		if !caller.Agency.IsValid() {
			return nil, shared.ErrUnauthorized
		}
		agency = caller.Agency
	case caller.IsAdmin():
		parsed, err := catalog.ParseAgency(agencyParam)
		if err != nil {
			return nil, err
		}
		agency = parsed
	default:
		return nil, shared.ErrUnauthorized
	}

	employees, err := s.employeeRepo.FindByAgency(ctx, agency)
	if err != nil {
		return nil, err
	}
	return ToEmployeeResponses(employees), nil
}

// GetByID returns a single employee. Employees may only read colleagues
// of their own agency; admins read anyone.
func (s *EmployeeService) GetByID(ctx context.Context, caller identity.Caller, id uuid.UUID) (*EmployeeResponse, error) {
	if !caller.IsResolved() || !(caller.IsEmployee() || caller.IsAdmin()) {
		return nil, shared.ErrUnauthorized
	}

	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if caller.IsEmployee() && employee.Agency != caller.Agency {
		return nil, shared.ErrUnauthorized
	}

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Update applies a partial update to an employee. Admin-only; the role is
// re-resolved when a new one is supplied. Passwords never change here.
func (s *EmployeeService) Update(ctx context.Context, caller identity.Caller, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	if !caller.IsResolved() || !caller.IsAdmin() {
		return nil, shared.ErrUnauthorized
	}

	employee, err := s.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil {
		firstName := employee.FirstName
		lastName := employee.LastName
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if err := employee.UpdateName(firstName, lastName); err != nil {
			return nil, err
		}
	}

	if req.RoleID != nil {
		roleID, err := uuid.Parse(*req.RoleID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid role id")
		}
		if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_INPUT", "Invalid role id")
			}
			return nil, err
		}
		if err := employee.AssignRole(roleID); err != nil {
			return nil, err
		}
	}

	if err := s.employeeRepo.Save(ctx, employee); err != nil {
		return nil, err
	}

	s.logger.Info("Employee updated", zap.String("employee_id", id.String()))

	response := ToEmployeeResponse(employee)
	return &response, nil
}

// Delete removes an employee. Admin-only.
func (s *EmployeeService) Delete(ctx context.Context, caller identity.Caller, id uuid.UUID) error {
	if !caller.IsResolved() || !caller.IsAdmin() {
		return shared.ErrUnauthorized
	}

	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Employee deleted", zap.String("employee_id", id.String()))
	return nil
}

// generateEmail builds first.last.agency@gov.sy from transliterated
// names, appending a numeric suffix until the address is unused.
func (s *EmployeeService) generateEmail(ctx context.Context, firstName, lastName string, agency catalog.Agency) (string, error) {
	first := transliterate(firstName)
	last := transliterate(lastName)
	agencySlug := transliterate(agency.Label())

	local := first + "." + last + "." + agencySlug
	if lastName == "" {
		local = first + "." + agencySlug
	}

	base := local + "@" + emailDomain
	email := base

	for counter := 1; ; counter++ {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return "", err
		}
		if !exists {
			return email, nil
		}
		if counter > maxEmailAttempts {
			s.logger.Error("Unable to generate unique employee email",
				zap.String("base", base))
			return "", shared.NewDomainError("INTERNAL_ERROR", "Unable to generate unique employee email")
		}
		email = fmt.Sprintf("%s%d@%s", local, counter, emailDomain)
	}
}
