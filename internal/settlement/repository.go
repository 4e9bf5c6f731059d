package settlement

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/expense"
)

// Repository reads settlement history. Settlements live in the expenses table
// under the settlement category; this repository is the pair-payment view of
// those rows.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new settlement repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListByEventID retrieves recorded settlements for an event, newest first.
func (r *Repository) ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE event_id = $1 AND category = $2`
	if err := r.db.QueryRowContext(ctx, countQuery, eventID, expense.CategorySettlement).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count settlements: %w", err)
	}

	query := `
		SELECT e.id, e.event_id, e.paid_by, e.received_by, e.amount, e.notes, e.created_at,
		       payer.username AS from_name, recv.username AS to_name
		FROM expenses e
		JOIN users payer ON e.paid_by = payer.id
		JOIN users recv ON e.received_by = recv.id
		WHERE e.event_id = $1 AND e.category = $2
		ORDER BY e.created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, expense.CategorySettlement, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.From,
			&rec.To,
			&rec.Amount,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.FromName,
			&rec.ToName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan settlement: %w", err)
		}
		records = append(records, rec)
	}

	return records, total, nil
}
