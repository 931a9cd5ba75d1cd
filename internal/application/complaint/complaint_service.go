// Package complaint contains the application service orchestrating the
// complaint lifecycle: filing, scoped listing, employee responses and
// partial updates under row locks, and deletion.
package complaint

import (
	"context"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/complaint"
	"github.com/shakwa/backend/internal/domain/identity"
	"github.com/shakwa/backend/internal/domain/shared"
	"github.com/shakwa/backend/internal/infrastructure/persistence/accessscope"
)

// Service handles complaint business operations. Every method takes the
// resolved caller explicitly; nothing is read from ambient state.
type Service struct {
	repo complaint.Repository
	tx   complaint.TxManager
}

// NewService creates a new complaint Service
func NewService(repo complaint.Repository, tx complaint.TxManager) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
	}
}

// Create files a new complaint. Only citizens may file; the owning citizen
// is always the caller, never a value from the request. A supplied status
// overrides the PENDING default.
func (s *Service) Create(ctx context.Context, caller identity.Caller, req CreateComplaintRequest) (*ComplaintResponse, error) {
	if !caller.IsResolved() || !caller.IsCitizen() {
		return nil, shared.ErrUnauthorized
	}

	c, err := complaint.NewComplaint(
		caller.ID,
		catalog.ComplaintType(req.ComplaintType),
		catalog.Governorate(req.Governorate),
		catalog.Agency(req.GovernmentAgency),
		req.Location,
		req.Description,
		req.SolutionSuggestion,
		req.Attachments,
	)
	if err != nil {
		return nil, err
	}

	if req.Status != "" {
		status, err := catalog.ParseComplaintStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if err := c.ChangeStatus(caller.ID, status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	response := ToComplaintResponse(c)
	return &response, nil
}

// GetByID retrieves a single complaint. Citizens may only read their own,
// employees only their agency's; admins read anything.
func (s *Service) GetByID(ctx context.Context, caller identity.Caller, id uuid.UUID) (*ComplaintResponse, error) {
	if !caller.IsResolved() {
		return nil, shared.ErrUnauthorized
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !accessscope.CanRead(caller, c) {
		return nil, shared.ErrUnauthorized
	}

	response := ToComplaintResponse(c)
	return &response, nil
}

// List retrieves complaints matching the filter, narrowed to what the
// caller may see. Citizen and agency constraints are forced by the access
// scope regardless of what the filter asks for.
func (s *Service) List(ctx context.Context, caller identity.Caller, filter ListFilter) (shared.Paginated[ComplaintResponse], error) {
	q, err := buildQuery(filter)
	if err != nil {
		return shared.Paginated[ComplaintResponse]{}, err
	}

	q, err = accessscope.Resolve(caller, q)
	if err != nil {
		return shared.Paginated[ComplaintResponse]{}, err
	}

	page, err := s.repo.FindPage(ctx, q)
	if err != nil {
		return shared.Paginated[ComplaintResponse]{}, err
	}

	return shared.Paginated[ComplaintResponse]{
		Items:      ToComplaintResponses(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// Update applies a partial update to a complaint. Employee-only; the row
// is read under a pessimistic lock scoped to the employee's agency, so a
// complaint of another agency reads as not found.
func (s *Service) Update(ctx context.Context, caller identity.Caller, id uuid.UUID, req UpdateComplaintRequest) (*ComplaintResponse, error) {
	if !caller.IsResolved() || !caller.IsEmployee() {
		return nil, shared.ErrUnauthorized
	}
	if !caller.Agency.IsValid() {
		return nil, shared.ErrUnauthorized
	}

	update, err := buildUpdate(req)
	if err != nil {
		return nil, err
	}

	var response ComplaintResponse
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		c, err := s.repo.FindByIDAndAgencyForUpdate(txCtx, id, caller.Agency)
		if err != nil {
			return err
		}
		if err := c.ApplyUpdate(caller.ID, update); err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, c); err != nil {
			return err
		}
		response = ToComplaintResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Respond records an employee response on a complaint of the employee's
// agency. The status only changes when one is supplied. Runs in the same
// locked transaction shape as Update.
func (s *Service) Respond(ctx context.Context, caller identity.Caller, id uuid.UUID, text string, status *string) (*ComplaintResponse, error) {
	if !caller.IsResolved() || !caller.IsEmployee() {
		return nil, shared.ErrUnauthorized
	}
	if !caller.Agency.IsValid() {
		return nil, shared.ErrUnauthorized
	}

	var newStatus *catalog.ComplaintStatus
	if status != nil && *status != "" {
		parsed, err := catalog.ParseComplaintStatus(*status)
		if err != nil {
			return nil, err
		}
		newStatus = &parsed
	}

	var response ComplaintResponse
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		c, err := s.repo.FindByIDAndAgencyForUpdate(txCtx, id, caller.Agency)
		if err != nil {
			return err
		}
		if err := c.Respond(caller.ID, text, newStatus); err != nil {
			return err
		}
		if err := s.repo.Save(txCtx, c); err != nil {
			return err
		}
		response = ToComplaintResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Delete removes a complaint. The owning citizen, a matching-agency
// employee, and admins may delete; anyone else is rejected.
func (s *Service) Delete(ctx context.Context, caller identity.Caller, id uuid.UUID) error {
	if !caller.IsResolved() {
		return shared.ErrUnauthorized
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !accessscope.CanDelete(caller, c) {
		return shared.ErrUnauthorized
	}

	return s.repo.Delete(ctx, id)
}

// CountByStatus returns complaint counts per status within the caller's
// scope, plus a grand total.
func (s *Service) CountByStatus(ctx context.Context, caller identity.Caller) (map[string]int64, error) {
	q, err := accessscope.Resolve(caller, complaint.Query{})
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByStatus(ctx, q)
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(counts)+1)
	var total int64
	for status, count := range counts {
		result[string(status)] = count
		total += count
	}
	result["total"] = total
	return result, nil
}

// buildQuery converts the transport filter into a typed domain query
func buildQuery(filter ListFilter) (complaint.Query, error) {
	q := complaint.Query{
		Filter: shared.Filter{Page: filter.Page, PageSize: filter.Size},
	}

	if filter.Status != "" {
		status, err := catalog.ParseComplaintStatus(filter.Status)
		if err != nil {
			return complaint.Query{}, err
		}
		q.Status = &status
	}
	if filter.ComplaintType != "" {
		complaintType, err := catalog.ParseComplaintType(filter.ComplaintType)
		if err != nil {
			return complaint.Query{}, err
		}
		q.Type = &complaintType
	}
	if filter.Governorate != "" {
		governorate, err := catalog.ParseGovernorate(filter.Governorate)
		if err != nil {
			return complaint.Query{}, err
		}
		q.Governorate = &governorate
	}
	if filter.GovernmentAgency != "" {
		agency, err := catalog.ParseAgency(filter.GovernmentAgency)
		if err != nil {
			return complaint.Query{}, err
		}
		q.Agency = &agency
	}
	if filter.CitizenID != "" {
		citizenID, err := uuid.Parse(filter.CitizenID)
		if err != nil {
			return complaint.Query{}, shared.NewDomainError("INVALID_INPUT", "Invalid citizen id")
		}
		q.CitizenID = &citizenID
	}

	return q, nil
}

// buildUpdate converts the transport update into a typed domain update
func buildUpdate(req UpdateComplaintRequest) (complaint.Update, error) {
	var update complaint.Update

	if req.ComplaintType != nil {
		complaintType, err := catalog.ParseComplaintType(*req.ComplaintType)
		if err != nil {
			return complaint.Update{}, err
		}
		update.Type = &complaintType
	}
	if req.Governorate != nil {
		governorate, err := catalog.ParseGovernorate(*req.Governorate)
		if err != nil {
			return complaint.Update{}, err
		}
		update.Governorate = &governorate
	}
	if req.Status != nil {
		status, err := catalog.ParseComplaintStatus(*req.Status)
		if err != nil {
			return complaint.Update{}, err
		}
		update.Status = &status
	}
	update.Location = req.Location
	update.Description = req.Description
	update.SolutionSuggestion = req.SolutionSuggestion
	update.Attachments = req.Attachments

	return update, nil
}
