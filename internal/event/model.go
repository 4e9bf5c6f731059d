package event

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus represents the status of an event member
type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "INVITED"
	MemberStatusJoined  MemberStatus = "JOINED"
)

// MemberRole represents the role of an event member
type MemberRole string

const (
	MemberRoleOrganizer MemberRole = "ORGANIZER"
	MemberRoleMember    MemberRole = "MEMBER"
)

// Event represents a planned event in the system
type Event struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EventMember represents a participant's membership in an event
type EventMember struct {
	ID            uuid.UUID    `json:"id"`
	EventID       uuid.UUID    `json:"event_id"`
	ParticipantID uuid.UUID    `json:"participant_id"`
	Status        MemberStatus `json:"status"`
	Role          MemberRole   `json:"role"`
	JoinedAt      time.Time    `json:"joined_at"`

	// Populated from JOIN
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
