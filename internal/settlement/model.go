package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtSuggestion is one proposed payment in a settlement plan: From (a
// debtor) pays To (a creditor) the given amount. Suggestions are derived
// output only; they are never persisted by the engine. Accepting one records
// a settlement-category expense through the usual validation gate.
type DebtSuggestion struct {
	From   uuid.UUID       `json:"from"`
	To     uuid.UUID       `json:"to"`
	Amount decimal.Decimal `json:"amount"`

	// Populated from the balance table for display
	FromName string `json:"from_name,omitempty"`
	ToName   string `json:"to_name,omitempty"`
}

// Record is one settlement payment as stored in the ledger: a read view over
// the settlement-category expense rows.
type Record struct {
	ID        uuid.UUID       `json:"id"`
	EventID   uuid.UUID       `json:"event_id"`
	From      uuid.UUID       `json:"from"`
	To        uuid.UUID       `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`

	// Populated via JOIN
	FromName string `json:"from_name,omitempty"`
	ToName   string `json:"to_name,omitempty"`
}

// ToResponse converts a Record to its API shape.
func (r *Record) ToResponse() *SettlementResponse {
	return &SettlementResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		From:      r.From,
		FromName:  r.FromName,
		To:        r.To,
		ToName:    r.ToName,
		Amount:    r.Amount,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
