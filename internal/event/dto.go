package event

import (
	"time"

	"github.com/google/uuid"
)

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
}

// UpdateEventRequest represents the request to update an event
type UpdateEventRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
}

// AddMemberRequest represents the request to add a member to an event
type AddMemberRequest struct {
	ParticipantID uuid.UUID  `json:"participant_id" validate:"required"`
	Role          MemberRole `json:"role"`
}

// UpdateMemberRequest represents the request to update a member's status or role
type UpdateMemberRequest struct {
	Status *MemberStatus `json:"status,omitempty"`
	Role   *MemberRole   `json:"role,omitempty"`
}

// EventResponse represents the response for an event
type EventResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Location    *string           `json:"location,omitempty"`
	StartsAt    *time.Time        `json:"starts_at,omitempty"`
	CreatedBy   uuid.UUID         `json:"created_by"`
	CreatedAt   string            `json:"created_at"`
	Members     []*MemberResponse `json:"members,omitempty"`
}

// MemberResponse represents a member in an event response
type MemberResponse struct {
	ID            uuid.UUID    `json:"id"`
	ParticipantID uuid.UUID    `json:"participant_id"`
	Username      string       `json:"username"`
	Email         string       `json:"email"`
	Status        MemberStatus `json:"status"`
	Role          MemberRole   `json:"role"`
	JoinedAt      string       `json:"joined_at"`
}

// ToResponse converts an Event model to an EventResponse DTO
func (e *Event) ToResponse() *EventResponse {
	return &EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Location:    e.Location,
		StartsAt:    e.StartsAt,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts an EventMember model to a MemberResponse DTO
func (m *EventMember) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:            m.ID,
		ParticipantID: m.ParticipantID,
		Username:      m.Username,
		Email:         m.Email,
		Status:        m.Status,
		Role:          m.Role,
		JoinedAt:      m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
