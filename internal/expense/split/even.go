package split

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/money"
)

// =============================================================================
// EVEN SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EvenStrategy implements the Strategy interface for even splits.
type EvenStrategy struct{}

// Type returns the split type identifier.
func (s *EvenStrategy) Type() Type {
	return TypeEven
}

// Calculate divides the amount evenly among all participants. Every
// participant except the last one in input order gets the per-head share
// truncated to the minor unit; the last participant absorbs the rounding
// remainder, so the owed shares always sum exactly to the amount. The same
// participant ordering therefore always yields the same split.
func (s *EvenStrategy) Calculate(amount decimal.Decimal, paidBy uuid.UUID, participantIDs []uuid.UUID, _ map[uuid.UUID]decimal.Decimal) []ExpenseSplitInput {
	n := len(participantIDs)
	if n == 0 {
		return []ExpenseSplitInput{}
	}

	perHead := money.Truncate(amount.Div(decimal.NewFromInt(int64(n))))

	splits := make([]ExpenseSplitInput, n)
	distributed := decimal.Zero
	for i, id := range participantIDs {
		owed := perHead
		if i == n-1 {
			// Remainder to last: whatever truncation left over.
			owed = amount.Sub(distributed)
		}
		distributed = distributed.Add(owed)
		splits[i] = ExpenseSplitInput{
			ParticipantID: id,
			OwedShare:     owed,
			PaidShare:     paidShareFor(amount, paidBy, id),
		}
	}

	return splits
}
