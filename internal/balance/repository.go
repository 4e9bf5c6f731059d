package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/expense"
)

// Repository reads the store-side balance aggregate: totals grouped by
// participant directly in SQL, the closest thing the store offers to a
// materialized balance view.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// BalancesByEventID aggregates paid/owed totals and settlement adjustments for
// every member of the event in the database.
func (r *Repository) BalancesByEventID(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]*ParticipantBalance, error) {
	balances := make(map[uuid.UUID]*ParticipantBalance)

	// Every member appears, even with no expense activity.
	memberQuery := `
		SELECT m.user_id, u.username
		FROM event_members m
		JOIN users u ON m.user_id = u.id
		WHERE m.event_id = $1
	`
	rows, err := r.db.QueryContext(ctx, memberQuery, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list event members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		b := &ParticipantBalance{
			EventID:    eventID,
			TotalPaid:  decimal.Zero,
			TotalOwed:  decimal.Zero,
			NetBalance: decimal.Zero,
		}
		if err := rows.Scan(&b.ParticipantID, &b.ParticipantName); err != nil {
			return nil, fmt.Errorf("failed to scan event member: %w", err)
		}
		balances[b.ParticipantID] = b
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list event members: %w", err)
	}

	totalsQuery := `
		SELECT s.participant_id,
		       COALESCE(SUM(s.paid_share), 0) AS total_paid,
		       COALESCE(SUM(s.owed_share), 0) AS total_owed
		FROM splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.event_id = $1 AND e.category <> $2
		GROUP BY s.participant_id
	`
	totalRows, err := r.db.QueryContext(ctx, totalsQuery, eventID, expense.CategorySettlement)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	defer totalRows.Close()
	for totalRows.Next() {
		var id uuid.UUID
		var paid, owed decimal.Decimal
		if err := totalRows.Scan(&id, &paid, &owed); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		b, ok := balances[id]
		if !ok {
			b = &ParticipantBalance{EventID: eventID, ParticipantID: id}
			balances[id] = b
		}
		b.TotalPaid = paid
		b.TotalOwed = owed
	}
	if err := totalRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}

	settlementQuery := `
		SELECT e.paid_by, e.received_by, e.amount
		FROM expenses e
		WHERE e.event_id = $1 AND e.category = $2 AND e.received_by IS NOT NULL
	`
	settlementRows, err := r.db.QueryContext(ctx, settlementQuery, eventID, expense.CategorySettlement)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer settlementRows.Close()

	adjustments := make(map[uuid.UUID]decimal.Decimal)
	for settlementRows.Next() {
		var payer, receiver uuid.UUID
		var amount decimal.Decimal
		if err := settlementRows.Scan(&payer, &receiver, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		adjustments[payer] = adjustments[payer].Add(amount)
		adjustments[receiver] = adjustments[receiver].Sub(amount)
	}
	if err := settlementRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}

	for id, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed).Add(adjustments[id])
	}

	return balances, nil
}
