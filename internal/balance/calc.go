package balance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/expense"
)

// ComputeBalances folds the complete expense history of an event into one
// balance per participant. It is a full recompute every time, never an
// incremental patch, so a consistent input snapshot always produces a
// consistent table regardless of how many times it is called.
//
// Ordinary expenses contribute each split's paid and owed shares to the
// participant's totals. Settlement expenses touch neither total: they shift
// net balance directly from payer to receiver. For every participant,
// net = total_paid - total_owed + settlement adjustment, and across the whole
// table the nets sum to zero.
func ComputeBalances(expenses []*expense.ExpenseWithSplits, participantIDs []uuid.UUID) map[uuid.UUID]*ParticipantBalance {
	balances := make(map[uuid.UUID]*ParticipantBalance, len(participantIDs))
	adjustments := make(map[uuid.UUID]decimal.Decimal)

	// Participants with no expense activity still get an all-zero row.
	for _, id := range participantIDs {
		balances[id] = zeroBalance(id)
	}

	ensure := func(id uuid.UUID) *ParticipantBalance {
		b, ok := balances[id]
		if !ok {
			b = zeroBalance(id)
			balances[id] = b
		}
		return b
	}

	for _, e := range expenses {
		if e.Expense.IsSettlement() {
			if e.Expense.ReceivedBy == nil {
				// A settlement without a receiver moves money nowhere.
				continue
			}
			payer := e.Expense.PaidBy
			receiver := *e.Expense.ReceivedBy
			ensure(payer)
			ensure(receiver)
			// Paying off a debt raises the payer's net toward zero and
			// consumes the receiver's credit.
			adjustments[payer] = adjustments[payer].Add(e.Expense.Amount)
			adjustments[receiver] = adjustments[receiver].Sub(e.Expense.Amount)
			continue
		}

		for _, s := range e.Splits {
			b := ensure(s.ParticipantID)
			b.TotalPaid = b.TotalPaid.Add(s.PaidShare)
			b.TotalOwed = b.TotalOwed.Add(s.OwedShare)
		}
	}

	for id, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed).Add(adjustments[id])
	}

	return balances
}

func zeroBalance(id uuid.UUID) *ParticipantBalance {
	return &ParticipantBalance{
		ParticipantID: id,
		TotalPaid:     decimal.Zero,
		TotalOwed:     decimal.Zero,
		NetBalance:    decimal.Zero,
	}
}
