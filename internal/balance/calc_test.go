package balance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipinapp/chipin/internal/expense"
	"github.com/chipinapp/chipin/internal/expense/split"
	"github.com/chipinapp/chipin/internal/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// sharedExpense builds a validator-clean expense paid in full by payer and
// split evenly over the given participants.
func sharedExpense(t *testing.T, amount string, payer uuid.UUID, participants []uuid.UUID) *expense.ExpenseWithSplits {
	t.Helper()

	inputs, err := split.BuildSplits(dec(amount), payer, participants, split.TypeEven, nil)
	require.NoError(t, err)
	require.True(t, expense.ValidateExpense("Shared", dec(amount), payer, inputs).Valid)

	e := &expense.Expense{
		ID:       uuid.New(),
		Title:    "Shared",
		Amount:   dec(amount),
		PaidBy:   payer,
		Category: "food",
	}
	splits := make([]*expense.Split, len(inputs))
	for i, in := range inputs {
		splits[i] = &expense.Split{
			ID:            uuid.New(),
			ExpenseID:     e.ID,
			ParticipantID: in.ParticipantID,
			OwedShare:     in.OwedShare,
			PaidShare:     in.PaidShare,
		}
	}
	return &expense.ExpenseWithSplits{Expense: e, Splits: splits}
}

func settlementExpense(amount string, payer, receiver uuid.UUID) *expense.ExpenseWithSplits {
	return &expense.ExpenseWithSplits{
		Expense: &expense.Expense{
			ID:         uuid.New(),
			Title:      "Settle up",
			Amount:     dec(amount),
			PaidBy:     payer,
			ReceivedBy: &receiver,
			Category:   expense.CategorySettlement,
		},
	}
}

func TestComputeBalancesEmpty(t *testing.T) {
	balances := ComputeBalances(nil, nil)
	assert.Empty(t, balances)
}

func TestComputeBalancesZeroRowsForInactiveParticipants(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	balances := ComputeBalances(nil, ids)

	require.Len(t, balances, 3)
	for _, id := range ids {
		b := balances[id]
		require.NotNil(t, b)
		assert.True(t, b.TotalPaid.IsZero())
		assert.True(t, b.TotalOwed.IsZero())
		assert.True(t, b.NetBalance.IsZero())
	}
}

func TestComputeBalancesOrdinaryExpenses(t *testing.T) {
	alice, bob, carol := uuid.New(), uuid.New(), uuid.New()
	ids := []uuid.UUID{alice, bob, carol}

	expenses := []*expense.ExpenseWithSplits{
		sharedExpense(t, "90.00", alice, ids),
		sharedExpense(t, "30.00", bob, []uuid.UUID{bob, carol}),
	}

	balances := ComputeBalances(expenses, ids)

	// Alice paid 90, owes 30. Bob paid 30, owes 30+15. Carol owes 30+15.
	assert.True(t, balances[alice].TotalPaid.Equal(dec("90.00")))
	assert.True(t, balances[alice].TotalOwed.Equal(dec("30.00")))
	assert.True(t, balances[alice].NetBalance.Equal(dec("60.00")))

	assert.True(t, balances[bob].TotalPaid.Equal(dec("30.00")))
	assert.True(t, balances[bob].TotalOwed.Equal(dec("45.00")))
	assert.True(t, balances[bob].NetBalance.Equal(dec("-15.00")))

	assert.True(t, balances[carol].NetBalance.Equal(dec("-45.00")))
}

func TestComputeBalancesSettlementAdjustsNetOnly(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()
	ids := []uuid.UUID{alice, bob}

	expenses := []*expense.ExpenseWithSplits{
		sharedExpense(t, "100.00", alice, ids),
		settlementExpense("50.00", bob, alice),
	}

	balances := ComputeBalances(expenses, ids)

	// The settlement moves net without touching paid/owed totals.
	assert.True(t, balances[bob].TotalPaid.IsZero())
	assert.True(t, balances[bob].TotalOwed.Equal(dec("50.00")))
	assert.True(t, balances[bob].NetBalance.IsZero())

	assert.True(t, balances[alice].TotalPaid.Equal(dec("100.00")))
	assert.True(t, balances[alice].NetBalance.IsZero())
}

// Money is conserved: whatever the mix of expenses and settlements, the nets
// sum to zero.
func TestComputeBalancesConservation(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	expenses := []*expense.ExpenseWithSplits{
		sharedExpense(t, "100.00", ids[0], ids),
		sharedExpense(t, "33.34", ids[1], ids[:3]),
		sharedExpense(t, "7.77", ids[2], []uuid.UUID{ids[2], ids[3]}),
		settlementExpense("12.00", ids[3], ids[0]),
	}

	balances := ComputeBalances(expenses, ids)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.NetBalance)
	}
	assert.True(t, money.IsZero(sum), "net balances sum to %s", sum)
}

func TestComputeBalancesLazilyAddsUnlistedParticipants(t *testing.T) {
	alice, bob := uuid.New(), uuid.New()

	// Only alice is in the participant set, but bob appears in the splits.
	balances := ComputeBalances([]*expense.ExpenseWithSplits{
		sharedExpense(t, "20.00", alice, []uuid.UUID{alice, bob}),
	}, []uuid.UUID{alice})

	require.Len(t, balances, 2)
	assert.True(t, balances[bob].NetBalance.Equal(dec("-10.00")))
}
