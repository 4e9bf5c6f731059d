package balance

import (
	"context"

	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/expense"
)

// Source answers "what does everyone owe right now" for an event. Two
// implementations exist behind it: the store's SQL aggregate and a client-side
// recompute over the raw expense list. Both must honor the same aggregation
// semantics; the local recompute is the path of record when they disagree.
type Source interface {
	Balances(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]*ParticipantBalance, error)
}

// StoreSource serves balances from the store's aggregate view.
type StoreSource struct {
	repo *Repository
}

// NewStoreSource creates a Source backed by the store aggregate.
func NewStoreSource(repo *Repository) *StoreSource {
	return &StoreSource{repo: repo}
}

// Balances implements Source.
func (s *StoreSource) Balances(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]*ParticipantBalance, error) {
	return s.repo.BalancesByEventID(ctx, eventID)
}

// ExpenseLister supplies the raw expense history of an event.
type ExpenseLister interface {
	ListWithSplitsByEventID(ctx context.Context, eventID uuid.UUID) ([]*expense.ExpenseWithSplits, error)
}

// MemberLister supplies the participant set of an event.
type MemberLister interface {
	MemberIDs(ctx context.Context, eventID uuid.UUID) ([]uuid.UUID, error)
}

// LocalSource recomputes balances from one consistent fetch of the expense
// list, using the pure aggregation in ComputeBalances.
type LocalSource struct {
	expenses ExpenseLister
	members  MemberLister
}

// NewLocalSource creates a Source that recomputes balances client-side.
func NewLocalSource(expenses ExpenseLister, members MemberLister) *LocalSource {
	return &LocalSource{expenses: expenses, members: members}
}

// Balances implements Source.
func (s *LocalSource) Balances(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]*ParticipantBalance, error) {
	history, err := s.expenses.ListWithSplitsByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	memberIDs, err := s.members.MemberIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	balances := ComputeBalances(history, memberIDs)
	for _, b := range balances {
		b.EventID = eventID
	}
	return balances, nil
}
