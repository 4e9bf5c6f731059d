package balance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParticipantBalance is one participant's standing within an event: what they
// paid toward shared expenses, what they owe of them, and the resulting net
// adjusted by direct settlement payments. Positive net means the group owes
// them money, negative means they owe the group.
type ParticipantBalance struct {
	EventID       uuid.UUID       `json:"event_id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalOwed     decimal.Decimal `json:"total_owed"`
	NetBalance    decimal.Decimal `json:"net_balance"`

	// Populated via JOIN
	ParticipantName string `json:"participant_name,omitempty"`
}

// BalanceResponse is the API shape of a participant balance.
type BalanceResponse struct {
	ParticipantID   uuid.UUID       `json:"participant_id"`
	ParticipantName string          `json:"participant_name,omitempty"`
	TotalPaid       decimal.Decimal `json:"total_paid"`
	TotalOwed       decimal.Decimal `json:"total_owed"`
	NetBalance      decimal.Decimal `json:"net_balance"`
}

// ToResponse converts a ParticipantBalance to its API shape.
func (b *ParticipantBalance) ToResponse() *BalanceResponse {
	return &BalanceResponse{
		ParticipantID:   b.ParticipantID,
		ParticipantName: b.ParticipantName,
		TotalPaid:       b.TotalPaid,
		TotalOwed:       b.TotalOwed,
		NetBalance:      b.NetBalance,
	}
}
