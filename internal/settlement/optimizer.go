package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/balance"
	"github.com/chipinapp/chipin/internal/money"
)

// party is one side of the matching: a participant and the positive magnitude
// of their remaining debt or credit.
type party struct {
	id     uuid.UUID
	name   string
	amount decimal.Decimal
}

// OptimizeSettlements computes a short list of point-to-point payments that
// zeroes every balance in the table. It is the classic cash-flow-minimization
// greedy: repeatedly match the largest debtor with the largest creditor,
// transfer the smaller of the two amounts, and drop whoever reaches zero.
// Participants within epsilon of zero are already settled and excluded, which
// also keeps rounding dust from ever looping forever.
//
// The greedy result is not guaranteed to be the theoretical minimum number of
// transactions (that problem is NP-hard); for the group sizes this ledger
// serves it is a close, deterministic approximation. Ties are broken by
// participant id so the same table always yields the same plan.
func OptimizeSettlements(balances map[uuid.UUID]*balance.ParticipantBalance) []DebtSuggestion {
	var creditors, debtors []party
	for id, b := range balances {
		switch {
		case b.NetBalance.GreaterThanOrEqual(money.Epsilon):
			creditors = append(creditors, party{id: id, name: b.ParticipantName, amount: b.NetBalance})
		case b.NetBalance.LessThanOrEqual(money.Epsilon.Neg()):
			debtors = append(debtors, party{id: id, name: b.ParticipantName, amount: b.NetBalance.Neg()})
		}
	}

	suggestions := []DebtSuggestion{}
	for len(debtors) > 0 && len(creditors) > 0 {
		di := largest(debtors)
		ci := largest(creditors)

		transfer := decimal.Min(debtors[di].amount, creditors[ci].amount)
		suggestions = append(suggestions, DebtSuggestion{
			From:     debtors[di].id,
			FromName: debtors[di].name,
			To:       creditors[ci].id,
			ToName:   creditors[ci].name,
			Amount:   transfer,
		})

		debtors[di].amount = debtors[di].amount.Sub(transfer)
		creditors[ci].amount = creditors[ci].amount.Sub(transfer)

		if debtors[di].amount.LessThan(money.Epsilon) {
			debtors = append(debtors[:di], debtors[di+1:]...)
		}
		if creditors[ci].amount.LessThan(money.Epsilon) {
			creditors = append(creditors[:ci], creditors[ci+1:]...)
		}
	}

	return suggestions
}

// largest returns the index of the party with the biggest remaining amount,
// smallest id winning ties.
func largest(parties []party) int {
	best := 0
	for i := 1; i < len(parties); i++ {
		cmp := parties[i].amount.Cmp(parties[best].amount)
		if cmp > 0 || (cmp == 0 && parties[i].id.String() < parties[best].id.String()) {
			best = i
		}
	}
	return best
}

// ValidateSettlementPlan checks that executing every suggestion settles the
// table: each transfer pays down the debtor's negative net and consumes the
// creditor's positive net, and afterwards every balance must sit within
// epsilon of zero. It is the optimizer's own test oracle, and callers may run
// it before committing a plan.
func ValidateSettlementPlan(suggestions []DebtSuggestion, balances map[uuid.UUID]*balance.ParticipantBalance) bool {
	working := make(map[uuid.UUID]decimal.Decimal, len(balances))
	for id, b := range balances {
		working[id] = b.NetBalance
	}

	for _, s := range suggestions {
		working[s.From] = working[s.From].Add(s.Amount)
		working[s.To] = working[s.To].Sub(s.Amount)
	}

	for _, net := range working {
		if !money.IsZero(net) {
			return false
		}
	}
	return true
}
