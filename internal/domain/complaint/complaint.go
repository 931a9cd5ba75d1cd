// Package complaint holds the complaint aggregate and its repository
// contract. A complaint is filed by a citizen against a single government
// agency; employees of that agency respond to it and drive its status.
package complaint

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shakwa/backend/internal/domain/catalog"
	"github.com/shakwa/backend/internal/domain/shared"
)

const maxDescriptionLength = 4000

// Complaint is the central aggregate of the system
type Complaint struct {
	shared.AuditedEntity
	Type               catalog.ComplaintType   `gorm:"type:varchar(50);not null;index"`
	Governorate        catalog.Governorate     `gorm:"type:varchar(50);not null;index"`
	Agency             catalog.Agency          `gorm:"type:varchar(50);not null;index"`
	Location           string                  `gorm:"type:varchar(500);not null"`
	Description        string                  `gorm:"type:text;not null"`
	SolutionSuggestion string                  `gorm:"type:text"`
	Attachments        AttachmentList          `gorm:"type:text"`
	Status             catalog.ComplaintStatus `gorm:"type:varchar(30);not null;index"`
	CitizenID          uuid.UUID               `gorm:"type:uuid;not null;index"`
	ResponseText       string                  `gorm:"type:text"`
	RespondedBy        *uuid.UUID              `gorm:"type:uuid"`
	RespondedAt        *time.Time
}

// TableName returns the table name for GORM
func (Complaint) TableName() string {
	return "complaints"
}

// NewComplaint files a new complaint on behalf of a citizen. The status
// starts at PENDING; use ChangeStatus to set a different initial one.
func NewComplaint(
	citizenID uuid.UUID,
	complaintType catalog.ComplaintType,
	governorate catalog.Governorate,
	agency catalog.Agency,
	location, description, solutionSuggestion string,
	attachments []string,
) (*Complaint, error) {
	if citizenID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Citizen is required")
	}
	if !complaintType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "A valid complaint type is required")
	}
	if !governorate.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "A valid governorate is required")
	}
	if !agency.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "A valid government agency is required")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location is required")
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, shared.NewDomainError("INVALID_INPUT", "Description is too long")
	}

	return &Complaint{
		AuditedEntity:      shared.NewAuditedEntity(citizenID),
		Type:               complaintType,
		Governorate:        governorate,
		Agency:             agency,
		Location:           location,
		Description:        description,
		SolutionSuggestion: strings.TrimSpace(solutionSuggestion),
		Attachments:        attachments,
		Status:             catalog.StatusPending,
		CitizenID:          citizenID,
	}, nil
}

// Respond records an employee response. The response text must not be
// blank; the status only changes when a new one is supplied.
func (c *Complaint) Respond(employeeID uuid.UUID, text string, status *catalog.ComplaintStatus) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return shared.NewDomainError("INVALID_INPUT", "Response text is required")
	}
	if status != nil && !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown complaint status")
	}

	now := time.Now()
	c.ResponseText = text
	c.RespondedBy = &employeeID
	c.RespondedAt = &now
	if status != nil {
		c.Status = *status
	}
	c.Touch(employeeID)
	return nil
}

// Update carries the fields of a partial complaint update. Nil fields
// leave the current value unchanged.
type Update struct {
	Type               *catalog.ComplaintType
	Governorate        *catalog.Governorate
	Location           *string
	Description        *string
	SolutionSuggestion *string
	Attachments        []string
	Status             *catalog.ComplaintStatus
}

// ApplyUpdate applies a partial update performed by an employee
func (c *Complaint) ApplyUpdate(employeeID uuid.UUID, u Update) error {
	if u.Type != nil && !u.Type.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown complaint type")
	}
	if u.Governorate != nil && !u.Governorate.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown governorate")
	}
	if u.Status != nil && !u.Status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown complaint status")
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Location cannot be blank")
	}
	if u.Description != nil {
		d := strings.TrimSpace(*u.Description)
		if d == "" {
			return shared.NewDomainError("INVALID_INPUT", "Description cannot be blank")
		}
		if len(d) > maxDescriptionLength {
			return shared.NewDomainError("INVALID_INPUT", "Description is too long")
		}
	}

	if u.Type != nil {
		c.Type = *u.Type
	}
	if u.Governorate != nil {
		c.Governorate = *u.Governorate
	}
	if u.Location != nil {
		c.Location = strings.TrimSpace(*u.Location)
	}
	if u.Description != nil {
		c.Description = strings.TrimSpace(*u.Description)
	}
	if u.SolutionSuggestion != nil {
		c.SolutionSuggestion = strings.TrimSpace(*u.SolutionSuggestion)
	}
	if u.Attachments != nil {
		c.Attachments = u.Attachments
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	c.Touch(employeeID)
	return nil
}

// ChangeStatus sets the complaint status
func (c *Complaint) ChangeStatus(actorID uuid.UUID, status catalog.ComplaintStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown complaint status")
	}
	c.Status = status
	c.Touch(actorID)
	return nil
}

// IsOwnedBy reports whether the complaint was filed by the given citizen
func (c *Complaint) IsOwnedBy(citizenID uuid.UUID) bool {
	return c.CitizenID == citizenID
}

// BelongsToAgency reports whether the complaint targets the given agency
func (c *Complaint) BelongsToAgency(agency catalog.Agency) bool {
	return c.Agency == agency
}
