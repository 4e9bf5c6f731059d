package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/expense/split"
)

// CategorySettlement marks a direct pairwise payment (paid_by -> received_by)
// that adjusts net balances without being split among a group. Every other
// category value is an ordinary shared expense.
const CategorySettlement = "settlement"

// Expense represents a shared expense (or a settlement payment) in an event.
type Expense struct {
	ID         uuid.UUID       `json:"id"`
	EventID    uuid.UUID       `json:"event_id"`
	Title      string          `json:"title"`
	Amount     decimal.Decimal `json:"amount"`
	PaidBy     uuid.UUID       `json:"paid_by"`
	ReceivedBy *uuid.UUID      `json:"received_by,omitempty"` // settlement expenses only
	Date       time.Time       `json:"date"`
	Category   string          `json:"category"`
	SplitType  split.Type      `json:"split_type"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// IsSettlement reports whether this expense is a direct pairwise payment
// rather than a shared purchase.
func (e *Expense) IsSettlement() bool {
	return e.Category == CategorySettlement
}

// Split represents one persisted split row of an expense.
type Split struct {
	ID            uuid.UUID       `json:"id"`
	ExpenseID     uuid.UUID       `json:"expense_id"`
	ParticipantID uuid.UUID       `json:"participant_id"`
	OwedShare     decimal.Decimal `json:"owed_share"`
	PaidShare     decimal.Decimal `json:"paid_share"`
	CreatedAt     time.Time       `json:"created_at"`

	// Populated via JOIN
	ParticipantName string `json:"participant_name,omitempty"`
}

// ToInput converts a persisted split row back to the engine's input shape.
func (s *Split) ToInput() split.ExpenseSplitInput {
	return split.ExpenseSplitInput{
		ParticipantID: s.ParticipantID,
		OwedShare:     s.OwedShare,
		PaidShare:     s.PaidShare,
	}
}

// ExpenseWithSplits combines an expense with its split rows.
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}

// SplitInputs returns the engine-shaped splits of the expense.
func (e *ExpenseWithSplits) SplitInputs() []split.ExpenseSplitInput {
	inputs := make([]split.ExpenseSplitInput, len(e.Splits))
	for i, s := range e.Splits {
		inputs[i] = s.ToInput()
	}
	return inputs
}
