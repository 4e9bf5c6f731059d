package expense

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/expense/split"
)

// ParticipantShare is one participant entry of a create/update request. The
// owed share is only read for CUSTOM splits; EVEN splits ignore it.
type ParticipantShare struct {
	ParticipantID uuid.UUID        `json:"participant_id" validate:"required"`
	OwedShare     *decimal.Decimal `json:"owed_share,omitempty"` // For CUSTOM split
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	EventID      uuid.UUID          `json:"event_id" validate:"required"`
	Title        string             `json:"title" validate:"required,min=1,max=255"`
	Amount       decimal.Decimal    `json:"amount" validate:"required"`
	Category     string             `json:"category" validate:"required,max=50"`
	SplitType    string             `json:"split_type" validate:"required,oneof=EVEN CUSTOM"`
	Notes        *string            `json:"notes,omitempty"`
	Participants []ParticipantShare `json:"participants" validate:"required,min=1"`
}

// CustomShares extracts the caller-supplied owed amounts keyed by participant.
func (r *CreateExpenseRequest) CustomShares() map[uuid.UUID]decimal.Decimal {
	return customSharesOf(r.Participants)
}

func customSharesOf(participants []ParticipantShare) map[uuid.UUID]decimal.Decimal {
	shares := make(map[uuid.UUID]decimal.Decimal, len(participants))
	for _, p := range participants {
		if p.OwedShare != nil {
			shares[p.ParticipantID] = *p.OwedShare
		}
	}
	return shares
}

// ParticipantIDs returns the participant ids in request order.
func (r *CreateExpenseRequest) ParticipantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Participants))
	for i, p := range r.Participants {
		ids[i] = p.ParticipantID
	}
	return ids
}

// UpdateExpenseRequest carries the full replacement payload for an expense.
// Edits are not patched: the splits are deleted and rebuilt from this request.
type UpdateExpenseRequest struct {
	Title        string             `json:"title" validate:"required,min=1,max=255"`
	Amount       decimal.Decimal    `json:"amount" validate:"required"`
	Category     string             `json:"category" validate:"required,max=50"`
	SplitType    string             `json:"split_type" validate:"required,oneof=EVEN CUSTOM"`
	Notes        *string            `json:"notes,omitempty"`
	Participants []ParticipantShare `json:"participants" validate:"required,min=1"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID         uuid.UUID        `json:"id"`
	EventID    uuid.UUID        `json:"event_id"`
	Title      string           `json:"title"`
	Amount     decimal.Decimal  `json:"amount"`
	PaidBy     uuid.UUID        `json:"paid_by"`
	PayerName  string           `json:"payer_name,omitempty"`
	ReceivedBy *uuid.UUID       `json:"received_by,omitempty"`
	Date       string           `json:"date"`
	Category   string           `json:"category"`
	SplitType  split.Type       `json:"split_type"`
	Notes      *string          `json:"notes,omitempty"`
	CreatedAt  string           `json:"created_at"`
	Splits     []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a split
type SplitResponse struct {
	ID              uuid.UUID       `json:"id"`
	ExpenseID       uuid.UUID       `json:"expense_id"`
	ParticipantID   uuid.UUID       `json:"participant_id"`
	ParticipantName string          `json:"participant_name,omitempty"`
	OwedShare       decimal.Decimal `json:"owed_share"`
	PaidShare       decimal.Decimal `json:"paid_share"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:         e.ID,
		EventID:    e.EventID,
		Title:      e.Title,
		Amount:     e.Amount,
		PaidBy:     e.PaidBy,
		PayerName:  e.PayerName,
		ReceivedBy: e.ReceivedBy,
		Date:       e.Date.Format("2006-01-02"),
		Category:   e.Category,
		SplitType:  e.SplitType,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:              s.ID,
		ExpenseID:       s.ExpenseID,
		ParticipantID:   s.ParticipantID,
		ParticipantName: s.ParticipantName,
		OwedShare:       s.OwedShare,
		PaidShare:       s.PaidShare,
	}
}
