package split

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes a caller-supplied exact amount
// =============================================================================

// CustomStrategy implements the Strategy interface for caller-specified shares.
type CustomStrategy struct{}

// Type returns the split type identifier.
func (s *CustomStrategy) Type() Type {
	return TypeCustom
}

// Calculate assigns each participant the owed share supplied in customShares,
// or zero when the map has no entry for them. The shares are not required to
// sum to the amount here; the expense validator catches mismatches before the
// expense can be persisted.
func (s *CustomStrategy) Calculate(amount decimal.Decimal, paidBy uuid.UUID, participantIDs []uuid.UUID, customShares map[uuid.UUID]decimal.Decimal) []ExpenseSplitInput {
	splits := make([]ExpenseSplitInput, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = ExpenseSplitInput{
			ParticipantID: id,
			OwedShare:     customShares[id],
			PaidShare:     paidShareFor(amount, paidBy, id),
		}
	}
	return splits
}
