package event

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles event data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new event repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new event into the database
func (r *Repository) Create(ctx context.Context, createdBy uuid.UUID, req *CreateEventRequest) (*Event, error) {
	query := `
		INSERT INTO events (id, name, description, location, starts_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, location, starts_at, created_by, created_at
	`

	ev := &Event{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), req.Name, req.Description, req.Location, req.StartsAt, createdBy).Scan(
		&ev.ID,
		&ev.Name,
		&ev.Description,
		&ev.Location,
		&ev.StartsAt,
		&ev.CreatedBy,
		&ev.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return ev, nil
}

// GetByID retrieves an event by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	query := `
		SELECT id, name, description, location, starts_at, created_by, created_at
		FROM events
		WHERE id = $1
	`

	ev := &Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ev.ID,
		&ev.Name,
		&ev.Description,
		&ev.Location,
		&ev.StartsAt,
		&ev.CreatedBy,
		&ev.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return ev, nil
}

// ListByParticipantID retrieves all events a participant belongs to
func (r *Repository) ListByParticipantID(ctx context.Context, participantID uuid.UUID, limit, offset int) ([]*Event, int, error) {
	var total int
	countQuery := `
		SELECT COUNT(DISTINCT e.id)
		FROM events e
		JOIN event_members em ON e.id = em.event_id
		WHERE em.participant_id = $1
	`
	if err := r.db.QueryRowContext(ctx, countQuery, participantID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query := `
		SELECT e.id, e.name, e.description, e.location, e.starts_at, e.created_by, e.created_at
		FROM events e
		JOIN event_members em ON e.id = em.event_id
		WHERE em.participant_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, participantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		ev := &Event{}
		if err := rows.Scan(
			&ev.ID,
			&ev.Name,
			&ev.Description,
			&ev.Location,
			&ev.StartsAt,
			&ev.CreatedBy,
			&ev.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, total, nil
}

// Update modifies an existing event
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateEventRequest) (*Event, error) {
	query := `
		UPDATE events
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    location = COALESCE($4, location),
		    starts_at = COALESCE($5, starts_at)
		WHERE id = $1
		RETURNING id, name, description, location, starts_at, created_by, created_at
	`

	ev := &Event{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Description, req.Location, req.StartsAt).Scan(
		&ev.ID,
		&ev.Name,
		&ev.Description,
		&ev.Location,
		&ev.StartsAt,
		&ev.CreatedBy,
		&ev.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return ev, nil
}

// Delete removes an event from the database
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("event not found")
	}

	return nil
}

// AddMember adds a participant to an event
func (r *Repository) AddMember(ctx context.Context, eventID uuid.UUID, req *AddMemberRequest) (*EventMember, error) {
	role := req.Role
	if role == "" {
		role = MemberRoleMember
	}

	query := `
		INSERT INTO event_members (id, event_id, participant_id, status, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, participant_id, status, role, joined_at
	`

	member := &EventMember{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), eventID, req.ParticipantID, MemberStatusInvited, role).Scan(
		&member.ID,
		&member.EventID,
		&member.ParticipantID,
		&member.Status,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// GetMembers retrieves all members of an event
func (r *Repository) GetMembers(ctx context.Context, eventID uuid.UUID) ([]*EventMember, error) {
	query := `
		SELECT em.id, em.event_id, em.participant_id, em.status, em.role, em.joined_at, u.username, u.email
		FROM event_members em
		JOIN users u ON em.participant_id = u.id
		WHERE em.event_id = $1
		ORDER BY em.joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []*EventMember
	for rows.Next() {
		member := &EventMember{}
		if err := rows.Scan(
			&member.ID,
			&member.EventID,
			&member.ParticipantID,
			&member.Status,
			&member.Role,
			&member.JoinedAt,
			&member.Username,
			&member.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

// MemberIDs retrieves the participant IDs of every member of an event.
// Balance aggregation uses this to emit a row for members with no activity.
func (r *Repository) MemberIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT participant_id
		FROM event_members
		WHERE event_id = $1
		ORDER BY joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get member ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan member id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetMember retrieves a specific member of an event
func (r *Repository) GetMember(ctx context.Context, eventID, participantID uuid.UUID) (*EventMember, error) {
	query := `
		SELECT em.id, em.event_id, em.participant_id, em.status, em.role, em.joined_at, u.username, u.email
		FROM event_members em
		JOIN users u ON em.participant_id = u.id
		WHERE em.event_id = $1 AND em.participant_id = $2
	`

	member := &EventMember{}
	err := r.db.QueryRowContext(ctx, query, eventID, participantID).Scan(
		&member.ID,
		&member.EventID,
		&member.ParticipantID,
		&member.Status,
		&member.Role,
		&member.JoinedAt,
		&member.Username,
		&member.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// UpdateMember updates a member's status or role
func (r *Repository) UpdateMember(ctx context.Context, eventID, participantID uuid.UUID, req *UpdateMemberRequest) (*EventMember, error) {
	query := `
		UPDATE event_members
		SET status = COALESCE($3, status),
		    role = COALESCE($4, role)
		WHERE event_id = $1 AND participant_id = $2
		RETURNING id, event_id, participant_id, status, role, joined_at
	`

	member := &EventMember{}
	err := r.db.QueryRowContext(ctx, query, eventID, participantID, req.Status, req.Role).Scan(
		&member.ID,
		&member.EventID,
		&member.ParticipantID,
		&member.Status,
		&member.Role,
		&member.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	return member, nil
}

// RemoveMember removes a participant from an event
func (r *Repository) RemoveMember(ctx context.Context, eventID, participantID uuid.UUID) error {
	query := `DELETE FROM event_members WHERE event_id = $1 AND participant_id = $2`

	result, err := r.db.ExecContext(ctx, query, eventID, participantID)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("member not found")
	}

	return nil
}
