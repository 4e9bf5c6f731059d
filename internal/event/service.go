package event

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEventNotFound       = errors.New("event not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("participant is already a member of this event")
)

// Notifier observes membership invitations.
type Notifier interface {
	MemberInvited(ctx context.Context, ev *Event, participantID uuid.UUID)
}

// Service handles event business logic
type Service struct {
	repo     *Repository
	notifier Notifier // optional
}

// NewService creates a new event service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// SetNotifier installs a hook that fires when a participant is invited.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Create creates a new event and adds the creator as organizer
func (s *Service) Create(ctx context.Context, creatorID uuid.UUID, req *CreateEventRequest) (*Event, error) {
	ev, err := s.repo.Create(ctx, creatorID, req)
	if err != nil {
		return nil, err
	}

	// Add creator as organizer
	_, err = s.repo.AddMember(ctx, ev.ID, &AddMemberRequest{
		ParticipantID: creatorID,
		Role:          MemberRoleOrganizer,
	})
	if err != nil {
		// TODO: Should rollback event creation in a transaction
		return nil, err
	}

	// Update the organizer's status to JOINED immediately
	_, err = s.repo.UpdateMember(ctx, ev.ID, creatorID, &UpdateMemberRequest{
		Status: statusPtr(MemberStatusJoined),
	})
	if err != nil {
		return nil, err
	}

	return ev, nil
}

// GetByID retrieves an event by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	ev, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// GetByIDWithMembers retrieves an event with all its members
func (s *Service) GetByIDWithMembers(ctx context.Context, id uuid.UUID) (*Event, []*EventMember, error) {
	ev, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return ev, members, nil
}

// ListByParticipantID retrieves all events for a participant
func (s *Service) ListByParticipantID(ctx context.Context, participantID uuid.UUID, page, perPage int) ([]*Event, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByParticipantID(ctx, participantID, perPage, offset)
}

// Update modifies an existing event
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*Event, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrEventNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes an event
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AddMember adds a participant to an event
func (s *Service) AddMember(ctx context.Context, eventID uuid.UUID, req *AddMemberRequest) (*EventMember, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}

	existing, err := s.repo.GetMember(ctx, eventID, req.ParticipantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	member, err := s.repo.AddMember(ctx, eventID, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil && member.ParticipantID != ev.CreatedBy {
		s.notifier.MemberInvited(ctx, ev, member.ParticipantID)
	}

	return member, nil
}

// GetMembers retrieves all members of an event
func (s *Service) GetMembers(ctx context.Context, eventID uuid.UUID) ([]*EventMember, error) {
	ev, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, ErrEventNotFound
	}

	return s.repo.GetMembers(ctx, eventID)
}

// UpdateMember updates a member's status or role
func (s *Service) UpdateMember(ctx context.Context, eventID, participantID uuid.UUID, req *UpdateMemberRequest) (*EventMember, error) {
	member, err := s.repo.UpdateMember(ctx, eventID, participantID, req)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	return member, nil
}

// RemoveMember removes a participant from an event
func (s *Service) RemoveMember(ctx context.Context, eventID, participantID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, eventID, participantID)
}

// AcceptInvitation allows a participant to accept their event invitation
func (s *Service) AcceptInvitation(ctx context.Context, eventID, participantID uuid.UUID) (*EventMember, error) {
	member, err := s.repo.GetMember(ctx, eventID, participantID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}
	if member.Status != MemberStatusInvited {
		return member, nil // Already joined
	}

	return s.repo.UpdateMember(ctx, eventID, participantID, &UpdateMemberRequest{
		Status: statusPtr(MemberStatusJoined),
	})
}

// Helper function to get a pointer to a MemberStatus
func statusPtr(s MemberStatus) *MemberStatus {
	return &s
}
