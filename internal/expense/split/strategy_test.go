package split

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEvenSplitRemainderToLast(t *testing.T) {
	participants := ids(3)
	payer := participants[0]

	splits, err := BuildSplits(dec("100.00"), payer, participants, TypeEven, nil)
	require.NoError(t, err)
	require.Len(t, splits, 3)

	assert.True(t, splits[0].OwedShare.Equal(dec("33.33")), "got %s", splits[0].OwedShare)
	assert.True(t, splits[1].OwedShare.Equal(dec("33.33")), "got %s", splits[1].OwedShare)
	assert.True(t, splits[2].OwedShare.Equal(dec("33.34")), "got %s", splits[2].OwedShare)

	// Output preserves participant order.
	for i, s := range splits {
		assert.Equal(t, participants[i], s.ParticipantID)
	}
}

func TestEvenSplitSumInvariant(t *testing.T) {
	amounts := []string{"100.00", "0.01", "0.10", "99.99", "1.00", "20.21", "7777.77"}
	for _, amt := range amounts {
		for n := 1; n <= 7; n++ {
			participants := ids(n)
			splits, err := BuildSplits(dec(amt), participants[0], participants, TypeEven, nil)
			require.NoError(t, err)

			owedSum := decimal.Zero
			paidSum := decimal.Zero
			for _, s := range splits {
				owedSum = owedSum.Add(s.OwedShare)
				paidSum = paidSum.Add(s.PaidShare)
			}
			assert.True(t, owedSum.Equal(dec(amt)), "amount=%s n=%d owed sum=%s", amt, n, owedSum)
			assert.True(t, paidSum.Equal(dec(amt)), "amount=%s n=%d paid sum=%s", amt, n, paidSum)
		}
	}
}

func TestCustomSplitFidelity(t *testing.T) {
	participants := ids(2)
	payer := participants[0]

	splits, err := BuildSplits(dec("100.00"), payer, participants, TypeCustom, map[uuid.UUID]decimal.Decimal{
		participants[0]: dec("60.00"),
		participants[1]: dec("40.00"),
	})
	require.NoError(t, err)
	require.Len(t, splits, 2)

	assert.True(t, splits[0].OwedShare.Equal(dec("60.00")))
	assert.True(t, splits[1].OwedShare.Equal(dec("40.00")))
	assert.True(t, splits[0].PaidShare.Equal(dec("100.00")))
	assert.True(t, splits[1].PaidShare.IsZero())
}

func TestCustomSplitMissingShareDefaultsToZero(t *testing.T) {
	participants := ids(2)
	splits, err := BuildSplits(dec("50.00"), participants[0], participants, TypeCustom, map[uuid.UUID]decimal.Decimal{
		participants[0]: dec("50.00"),
	})
	require.NoError(t, err)
	assert.True(t, splits[1].OwedShare.IsZero())
}

func TestBuildSplitsEmptyParticipants(t *testing.T) {
	splits, err := BuildSplits(dec("10.00"), uuid.New(), nil, TypeEven, nil)
	require.NoError(t, err)
	assert.Empty(t, splits)
}

func TestFactoryUnknownType(t *testing.T) {
	_, err := NewFactory().CreateFromString("PERCENTAGE")
	assert.Error(t, err)
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	splits := []ExpenseSplitInput{
		{ParticipantID: a, OwedShare: dec("10.00")},
		{ParticipantID: b, OwedShare: dec("20.00")},
		{ParticipantID: a, OwedShare: dec("99.00")},
		{ParticipantID: b, OwedShare: dec("5.00")},
	}

	out := Dedupe(splits)
	require.Len(t, out, 2)
	assert.Equal(t, a, out[0].ParticipantID)
	assert.True(t, out[0].OwedShare.Equal(dec("10.00")))
	assert.Equal(t, b, out[1].ParticipantID)
	assert.True(t, out[1].OwedShare.Equal(dec("20.00")))
}
