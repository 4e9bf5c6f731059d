package settlement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chipinapp/chipin/internal/balance"
	"github.com/chipinapp/chipin/internal/expense"
	"github.com/chipinapp/chipin/internal/expense/split"
)

// The balance service, fallback policy included, must plug straight in as
// the suggestion source.
var _ BalanceSource = (*balance.Service)(nil)

type mockExpenseStore struct {
	created  []*expense.Expense
	existing []*expense.Expense
}

func (m *mockExpenseStore) CreateExpenseWithSplits(_ context.Context, e *expense.Expense, inputs []split.ExpenseSplitInput) (*expense.ExpenseWithSplits, error) {
	e.ID = uuid.New()
	m.created = append(m.created, e)
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
	return &expense.ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

func (m *mockExpenseStore) ListSettlementsBetween(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) ([]*expense.Expense, error) {
	return m.existing, nil
}

type mockBalanceSource struct {
	balances map[uuid.UUID]*balance.ParticipantBalance
}

func (m *mockBalanceSource) Balances(context.Context, uuid.UUID) (map[uuid.UUID]*balance.ParticipantBalance, error) {
	return m.balances, nil
}

func TestServiceSuggest(t *testing.T) {
	creditor, debtor := uuid.New(), uuid.New()
	source := &mockBalanceSource{balances: table(map[uuid.UUID]string{
		creditor: "15.00",
		debtor:   "-15.00",
	})}

	svc := NewService(nil, &mockExpenseStore{}, source)

	suggestions, err := svc.Suggest(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, debtor, suggestions[0].From)
	assert.Equal(t, creditor, suggestions[0].To)
}

func TestServiceRecord(t *testing.T) {
	store := &mockExpenseStore{}
	svc := NewService(nil, store, &mockBalanceSource{})

	from, to, creator := uuid.New(), uuid.New(), uuid.New()
	created, err := svc.Record(context.Background(), creator, &RecordSettlementRequest{
		EventID: uuid.New(),
		From:    from,
		To:      to,
		Amount:  dec("25.00"),
	})
	require.NoError(t, err)

	e := created.Expense
	assert.Equal(t, expense.CategorySettlement, e.Category)
	assert.True(t, e.IsSettlement())
	assert.Equal(t, from, e.PaidBy)
	require.NotNil(t, e.ReceivedBy)
	assert.Equal(t, to, *e.ReceivedBy)
	assert.Equal(t, creator, e.CreatedBy)

	// The synthesized single split passes the expense gate.
	require.Len(t, created.Splits, 1)
	assert.Equal(t, from, created.Splits[0].ParticipantID)
	assert.True(t, created.Splits[0].PaidShare.Equal(dec("25.00")))
}

func TestServiceRecordRejections(t *testing.T) {
	svc := NewService(nil, &mockExpenseStore{}, &mockBalanceSource{})
	same := uuid.New()

	_, err := svc.Record(context.Background(), same, &RecordSettlementRequest{
		EventID: uuid.New(),
		From:    same,
		To:      same,
		Amount:  dec("25.00"),
	})
	var vErr *expense.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Payer and receiver cannot be the same person", vErr.Message)

	_, err = svc.Record(context.Background(), same, &RecordSettlementRequest{
		EventID: uuid.New(),
		From:    uuid.New(),
		To:      uuid.New(),
		Amount:  decimal.Zero,
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Settlement amount must be greater than 0", vErr.Message)
}
