package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	identityapp "github.com/shakwa/backend/internal/application/identity"
	"github.com/shakwa/backend/internal/interfaces/http/dto"
)

// EmployeeHandler handles employee management endpoints
type EmployeeHandler struct {
	BaseHandler
	employeeService *identityapp.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *identityapp.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// Create provisions a new employee (admin only). The employee's email
// address is generated server-side and returned in the response.
func (h *EmployeeHandler) Create(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identityapp.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.employeeService.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns the employees of an agency. Employees get their own
// agency; admins name one via the agency query parameter.
func (h *EmployeeHandler) List(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.employeeService.List(c.Request.Context(), caller, c.Query("agency"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID returns a single employee visible to the caller
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	result, err := h.employeeService.GetByID(c.Request.Context(), caller, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Update applies a partial update to an employee (admin only)
func (h *EmployeeHandler) Update(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	var req identityapp.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.employeeService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete removes an employee (admin only)
func (h *EmployeeHandler) Delete(c *gin.Context) {
	caller, ok := getCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid employee ID")
		return
	}
	id := uuid.MustParse(uri.ID)

	if err := h.employeeService.Delete(c.Request.Context(), caller, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
