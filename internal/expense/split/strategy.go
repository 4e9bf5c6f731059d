package split

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type identifies the split policy applied to an expense.
type Type string

const (
	TypeEven   Type = "EVEN"
	TypeCustom Type = "CUSTOM"
)

// ExpenseSplitInput is one participant's stake in a single expense: how much
// of the expense they owe and how much of it they paid. Shares are built
// permissively; the expense validator is the gate that rejects bad ones.
type ExpenseSplitInput struct {
	ParticipantID uuid.UUID       `json:"participant_id"`
	OwedShare     decimal.Decimal `json:"owed_share"`
	PaidShare     decimal.Decimal `json:"paid_share"`
}

// Strategy computes per-participant shares for one expense.
type Strategy interface {
	// Calculate returns one share record per participant, in input order.
	// It never fails: out-of-range inputs produce shares the validator
	// rejects downstream.
	Calculate(amount decimal.Decimal, paidBy uuid.UUID, participantIDs []uuid.UUID, customShares map[uuid.UUID]decimal.Decimal) []ExpenseSplitInput

	// Type returns the policy identifier for this strategy.
	Type() Type
}

// Factory creates split strategies based on the requested policy.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the strategy implementation for the given policy.
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEven:
		return &EvenStrategy{}, nil
	case TypeCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests).
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

// BuildSplits is the package-level convenience over the factory for callers
// that already hold a valid policy value.
func BuildSplits(amount decimal.Decimal, paidBy uuid.UUID, participantIDs []uuid.UUID, splitType Type, customShares map[uuid.UUID]decimal.Decimal) ([]ExpenseSplitInput, error) {
	strategy, err := NewFactory().Create(splitType)
	if err != nil {
		return nil, err
	}
	return strategy.Calculate(amount, paidBy, participantIDs, customShares), nil
}

// Dedupe collapses multiple split records for the same participant into one,
// keeping the first occurrence and the original order. Used when merging
// splits arriving from more than one source.
func Dedupe(splits []ExpenseSplitInput) []ExpenseSplitInput {
	seen := make(map[uuid.UUID]bool, len(splits))
	out := make([]ExpenseSplitInput, 0, len(splits))
	for _, s := range splits {
		if seen[s.ParticipantID] {
			continue
		}
		seen[s.ParticipantID] = true
		out = append(out, s)
	}
	return out
}

// paidShareFor returns the paid share for one participant: the full amount for
// the payer, zero for everyone else. Single-payer expenses only.
func paidShareFor(amount decimal.Decimal, paidBy, participantID uuid.UUID) decimal.Decimal {
	if participantID == paidBy {
		return amount
	}
	return decimal.Zero
}
