package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	complaintapp "github.com/shakwa/backend/internal/application/complaint"
	"github.com/shakwa/backend/internal/interfaces/http/dto"
)

// ComplaintHandler handles complaint endpoints. Every operation receives
// the caller resolved by the JWT middleware; scoping decisions live in the
// application service, not here.
type ComplaintHandler struct {
	BaseHandler
	complaintService *complaintapp.Service
}

// NewComplaintHandler creates a new ComplaintHandler
func NewComplaintHandler(complaintService *complaintapp.Service) *ComplaintHandler {
	return &ComplaintHandler{
		complaintService: complaintService,
	}
}

// Create files a new complaint for the authenticated citizen
func (h *ComplaintHandler) Create(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req complaintapp.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.complaintService.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID returns a single complaint visible to the caller
func (h *ComplaintHandler) GetByID(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	result, err := h.complaintService.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// List returns the caller's scoped complaint page without extra filters
func (h *ComplaintHandler) List(c *gin.Context) {
	h.list(c, complaintapp.ListFilter{})
}

// ListByCitizen returns complaints filed by the given citizen, still
// subject to the caller's scope
func (h *ComplaintHandler) ListByCitizen(c *gin.Context) {
	citizenID := c.Param("citizenId")
	if _, err := uuid.Parse(citizenID); err != nil {
		h.BadRequest(c, "Invalid citizen ID")
		return
	}
	h.list(c, complaintapp.ListFilter{CitizenID: citizenID})
}

// ListByStatus returns complaints with the given status
func (h *ComplaintHandler) ListByStatus(c *gin.Context) {
	h.list(c, complaintapp.ListFilter{Status: c.Param("status")})
}

// ListByType returns complaints with the given complaint type
func (h *ComplaintHandler) ListByType(c *gin.Context) {
	h.list(c, complaintapp.ListFilter{ComplaintType: c.Param("complaintType")})
}

// ListByGovernorate returns complaints filed in the given governorate
func (h *ComplaintHandler) ListByGovernorate(c *gin.Context) {
	h.list(c, complaintapp.ListFilter{Governorate: c.Param("governorate")})
}

// Filter returns complaints matching the combined query filters
func (h *ComplaintHandler) Filter(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter complaintapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.complaintService.List(c.Request.Context(), caller, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// list runs a scoped listing with pagination taken from the query string
// on top of the fixed filter fields set by the route.
func (h *ComplaintHandler) list(c *gin.Context, filter complaintapp.ListFilter) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var page struct {
		Page int `form:"page" binding:"omitempty,min=0"`
		Size int `form:"size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	filter.Page = page.Page
	filter.Size = page.Size

	result, err := h.complaintService.List(c.Request.Context(), caller, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update applies a partial update to a complaint of the caller's agency
func (h *ComplaintHandler) Update(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	var req complaintapp.UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.complaintService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Respond records an agency response. The response text is a required
// query parameter; the status change is optional.
func (h *ComplaintHandler) Respond(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	text := c.Query("response")
	if text == "" {
		h.BadRequest(c, "Query parameter 'response' is required")
		return
	}

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	result, err := h.complaintService.Respond(c.Request.Context(), caller, id, text, status)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes a complaint the caller is allowed to delete
func (h *ComplaintHandler) Delete(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid complaint ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	if err := h.complaintService.Delete(c.Request.Context(), caller, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// CountByStatus returns per-status complaint counts within the caller's
// scope plus a total
func (h *ComplaintHandler) CountByStatus(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	counts, err := h.complaintService.CountByStatus(c.Request.Context(), caller)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, counts)
}
