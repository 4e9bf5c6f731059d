package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordSettlementRequest commits one accepted DebtSuggestion as a
// settlement expense.
type RecordSettlementRequest struct {
	EventID uuid.UUID       `json:"event_id" validate:"required"`
	From    uuid.UUID       `json:"from" validate:"required"`
	To      uuid.UUID       `json:"to" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Notes   *string         `json:"notes,omitempty"`
}

// SettlementResponse represents a recorded settlement payment
type SettlementResponse struct {
	ID        uuid.UUID       `json:"id"`
	EventID   uuid.UUID       `json:"event_id"`
	From      uuid.UUID       `json:"from"`
	FromName  string          `json:"from_name,omitempty"`
	To        uuid.UUID       `json:"to"`
	ToName    string          `json:"to_name,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt string          `json:"created_at"`
}

// SuggestionResponse represents one proposed payment of a settlement plan
type SuggestionResponse struct {
	From     uuid.UUID       `json:"from"`
	FromName string          `json:"from_name,omitempty"`
	To       uuid.UUID       `json:"to"`
	ToName   string          `json:"to_name,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Message  string          `json:"message"` // e.g., "Omar pays Lina 12.50"
}
