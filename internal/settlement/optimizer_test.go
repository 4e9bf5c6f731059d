package settlement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipinapp/chipin/internal/balance"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// table builds a balance map from net amounts keyed by participant.
func table(nets map[uuid.UUID]string) map[uuid.UUID]*balance.ParticipantBalance {
	out := make(map[uuid.UUID]*balance.ParticipantBalance, len(nets))
	for id, net := range nets {
		out[id] = &balance.ParticipantBalance{
			ParticipantID: id,
			NetBalance:    dec(net),
		}
	}
	return out
}

func TestOptimizeOneCreditorOneDebtor(t *testing.T) {
	creditor, debtor := uuid.New(), uuid.New()
	balances := table(map[uuid.UUID]string{
		creditor: "42.50",
		debtor:   "-42.50",
	})

	suggestions := OptimizeSettlements(balances)

	require.Len(t, suggestions, 1)
	assert.Equal(t, debtor, suggestions[0].From)
	assert.Equal(t, creditor, suggestions[0].To)
	assert.True(t, suggestions[0].Amount.Equal(dec("42.50")))
}

func TestOptimizeFanInToOneCreditor(t *testing.T) {
	creditor := uuid.New()
	debtors := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	balances := table(map[uuid.UUID]string{
		creditor:   "60.00",
		debtors[0]: "-10.00",
		debtors[1]: "-20.00",
		debtors[2]: "-30.00",
	})

	suggestions := OptimizeSettlements(balances)

	require.Len(t, suggestions, 3)
	sum := decimal.Zero
	for _, s := range suggestions {
		assert.Equal(t, creditor, s.To)
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(dec("60.00")))
}

func TestOptimizeBalancedBooks(t *testing.T) {
	balances := table(map[uuid.UUID]string{
		uuid.New(): "0",
		uuid.New(): "0",
		uuid.New(): "0",
	})

	assert.Empty(t, OptimizeSettlements(balances))
}

func TestOptimizeIgnoresEpsilonResidue(t *testing.T) {
	balances := table(map[uuid.UUID]string{
		uuid.New(): "0.009",
		uuid.New(): "-0.009",
	})

	assert.Empty(t, OptimizeSettlements(balances))
}

func TestOptimizeEmptyTable(t *testing.T) {
	assert.Empty(t, OptimizeSettlements(nil))
}

// The optimizer's output always passes its own verifier, whatever the table.
func TestOptimizerSelfVerifies(t *testing.T) {
	tables := []map[uuid.UUID]string{
		{
			uuid.New(): "100.00",
			uuid.New(): "-33.33",
			uuid.New(): "-33.33",
			uuid.New(): "-33.34",
		},
		{
			uuid.New(): "12.01",
			uuid.New(): "87.99",
			uuid.New(): "-50.00",
			uuid.New(): "-25.00",
			uuid.New(): "-25.00",
		},
		{
			uuid.New(): "0.02",
			uuid.New(): "-0.02",
		},
		{
			uuid.New(): "5.55",
			uuid.New(): "-5.55",
			uuid.New(): "0",
		},
	}

	for _, nets := range tables {
		balances := table(nets)
		suggestions := OptimizeSettlements(balances)
		assert.True(t, ValidateSettlementPlan(suggestions, balances),
			"plan %v does not settle table %v", suggestions, nets)
	}
}

func TestOptimizerDeterministic(t *testing.T) {
	nets := map[uuid.UUID]string{
		uuid.New(): "30.00",
		uuid.New(): "30.00",
		uuid.New(): "-20.00",
		uuid.New(): "-20.00",
		uuid.New(): "-20.00",
	}

	first := OptimizeSettlements(table(nets))
	for i := 0; i < 10; i++ {
		again := OptimizeSettlements(table(nets))
		require.Equal(t, len(first), len(again))
		for j := range first {
			assert.Equal(t, first[j].From, again[j].From)
			assert.Equal(t, first[j].To, again[j].To)
			assert.True(t, first[j].Amount.Equal(again[j].Amount))
		}
	}
}

func TestValidateSettlementPlanRejectsBadPlans(t *testing.T) {
	creditor, debtor := uuid.New(), uuid.New()
	balances := table(map[uuid.UUID]string{
		creditor: "40.00",
		debtor:   "-40.00",
	})

	// Empty plan leaves the table unsettled.
	assert.False(t, ValidateSettlementPlan(nil, balances))

	// Wrong amount.
	assert.False(t, ValidateSettlementPlan([]DebtSuggestion{
		{From: debtor, To: creditor, Amount: dec("25.00")},
	}, balances))

	// Wrong direction.
	assert.False(t, ValidateSettlementPlan([]DebtSuggestion{
		{From: creditor, To: debtor, Amount: dec("40.00")},
	}, balances))

	// Correct plan passes.
	assert.True(t, ValidateSettlementPlan([]DebtSuggestion{
		{From: debtor, To: creditor, Amount: dec("40.00")},
	}, balances))
}
