package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/identity"
)

// =============================================================================
// Auth DTOs
// =============================================================================

// RegisterRequest represents a citizen registration request
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string `json:"last_name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email,max=200"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login request for any account kind
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke. The access token is
// taken from the Authorization header.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// UserInfo describes the authenticated account in auth responses
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Agency    string    `json:"agency,omitempty"`
	RoleID    string    `json:"role_id,omitempty"`
}

// AuthResult represents a successful authentication
type AuthResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
	User                  UserInfo  `json:"user"`
}

// RefreshResult represents a refreshed token pair
type RefreshResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// =============================================================================
// Employee DTOs
// =============================================================================

// CreateEmployeeRequest represents a request to provision an employee.
// The email is generated, never supplied.
type CreateEmployeeRequest struct {
	FirstName        string `json:"first_name" binding:"required,min=1,max=100"`
	LastName         string `json:"last_name" binding:"max=100"`
	Password         string `json:"password" binding:"required,min=8,max=72"`
	GovernmentAgency string `json:"government_agency" binding:"required,agency"`
	RoleID           string `json:"role_id" binding:"required,uuid"`
}

// UpdateEmployeeRequest represents a partial employee update. The password
// is never updated through this path.
type UpdateEmployeeRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	RoleID    *string `json:"role_id" binding:"omitempty,uuid"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID               uuid.UUID `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	GovernmentAgency string    `json:"government_agency"`
	AgencyLabel      string    `json:"government_agency_label"`
	RoleID           uuid.UUID `json:"role_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ToEmployeeResponse converts a domain employee to a response DTO
func ToEmployeeResponse(e *identity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               e.ID,
		FirstName:        e.FirstName,
		LastName:         e.LastName,
		Email:            e.Email,
		GovernmentAgency: string(e.Agency),
		AgencyLabel:      e.Agency.Label(),
		RoleID:           e.RoleID,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of domain employees
func ToEmployeeResponses(items []*identity.Employee) []EmployeeResponse {
	responses := make([]EmployeeResponse, 0, len(items))
	for _, e := range items {
		responses = append(responses, ToEmployeeResponse(e))
	}
	return responses
}
