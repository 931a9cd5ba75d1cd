package complaint

import (
	"time"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/complaint"
)

// =============================================================================
// Complaint DTOs
// =============================================================================

// CreateComplaintRequest represents a request to file a new complaint
type CreateComplaintRequest struct {
	ComplaintType      string   `json:"complaint_type" binding:"required,complainttype"`
	Governorate        string   `json:"governorate" binding:"required,governorate"`
	GovernmentAgency   string   `json:"government_agency" binding:"required,agency"`
	Location           string   `json:"location" binding:"required,max=500"`
	Description        string   `json:"description" binding:"required,max=4000"`
	SolutionSuggestion string   `json:"solution_suggestion"`
	Attachments        []string `json:"attachments"`
	Status             string   `json:"status" binding:"omitempty,complaintstatus"`
}

// UpdateComplaintRequest represents a partial complaint update. Absent
// fields leave the stored value unchanged.
type UpdateComplaintRequest struct {
	ComplaintType      *string  `json:"complaint_type" binding:"omitempty,complainttype"`
	Governorate        *string  `json:"governorate" binding:"omitempty,governorate"`
	Location           *string  `json:"location" binding:"omitempty,max=500"`
	Description        *string  `json:"description" binding:"omitempty,max=4000"`
	SolutionSuggestion *string  `json:"solution_suggestion"`
	Attachments        []string `json:"attachments"`
	Status             *string  `json:"status" binding:"omitempty,complaintstatus"`
}

// ListFilter represents the filter options for complaint lists
type ListFilter struct {
	Status           string `form:"status" binding:"omitempty,complaintstatus"`
	ComplaintType    string `form:"complaintType" binding:"omitempty,complainttype"`
	Governorate      string `form:"governorate" binding:"omitempty,governorate"`
	GovernmentAgency string `form:"governmentAgency" binding:"omitempty,agency"`
	CitizenID        string `form:"citizenId" binding:"omitempty,uuid"`
	Page             int    `form:"page" binding:"omitempty,min=0"`
	Size             int    `form:"size" binding:"omitempty,min=1,max=100"`
}

// ComplaintResponse represents a complaint in API responses
type ComplaintResponse struct {
	ID                    uuid.UUID  `json:"id"`
	ComplaintType         string     `json:"complaint_type"`
	ComplaintTypeLabel    string     `json:"complaint_type_label"`
	Governorate           string     `json:"governorate"`
	GovernorateLabel      string     `json:"governorate_label"`
	GovernmentAgency      string     `json:"government_agency"`
	GovernmentAgencyLabel string     `json:"government_agency_label"`
	Location              string     `json:"location"`
	Description           string     `json:"description"`
	SolutionSuggestion    string     `json:"solution_suggestion,omitempty"`
	Attachments           []string   `json:"attachments"`
	Status                string     `json:"status"`
	CitizenID             uuid.UUID  `json:"citizen_id"`
	Response              string     `json:"response,omitempty"`
	RespondedBy           *uuid.UUID `json:"responded_by,omitempty"`
	RespondedAt           *time.Time `json:"responded_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ToComplaintResponse converts a domain complaint to a response DTO
func ToComplaintResponse(c *complaint.Complaint) ComplaintResponse {
	attachments := []string(c.Attachments)
	if attachments == nil {
		attachments = []string{}
	}
	return ComplaintResponse{
		ID:                    c.ID,
		ComplaintType:         string(c.Type),
		ComplaintTypeLabel:    c.Type.Label(),
		Governorate:           string(c.Governorate),
		GovernorateLabel:      c.Governorate.Label(),
		GovernmentAgency:      string(c.Agency),
		GovernmentAgencyLabel: c.Agency.Label(),
		Location:              c.Location,
		Description:           c.Description,
		SolutionSuggestion:    c.SolutionSuggestion,
		Attachments:           attachments,
		Status:                string(c.Status),
		CitizenID:             c.CitizenID,
		Response:              c.ResponseText,
		RespondedBy:           c.RespondedBy,
		RespondedAt:           c.RespondedAt,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}

// ToComplaintResponses converts a slice of domain complaints
func ToComplaintResponses(items []*complaint.Complaint) []ComplaintResponse {
	responses := make([]ComplaintResponse, 0, len(items))
	for _, c := range items {
		responses = append(responses, ToComplaintResponse(c))
	}
	return responses
}
