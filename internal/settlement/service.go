package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/balance"
	"github.com/chipinapp/chipin/internal/expense"
	"github.com/chipinapp/chipin/internal/expense/split"
)

// Common errors
var (
	ErrSettlementNotFound = errors.New("settlement not found")
)

// ExpenseStore is the slice of the expense persistence surface the settlement
// flow needs: committing a settlement expense and reading back what has
// already been recorded between a pair.
type ExpenseStore interface {
	CreateExpenseWithSplits(ctx context.Context, e *expense.Expense, inputs []split.ExpenseSplitInput) (*expense.ExpenseWithSplits, error)
	ListSettlementsBetween(ctx context.Context, eventID, payerID, receiverID uuid.UUID) ([]*expense.Expense, error)
}

// BalanceSource provides the current balance table of an event.
type BalanceSource interface {
	Balances(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]*balance.ParticipantBalance, error)
}

// Notifier observes committed settlement payments.
type Notifier interface {
	SettlementRecorded(ctx context.Context, e *expense.ExpenseWithSplits)
}

// Service handles settlement business logic: suggesting plans and committing
// accepted payments back into the ledger.
type Service struct {
	repo     *Repository
	expenses ExpenseStore
	balances BalanceSource
	notifier Notifier // optional
}

// NewService creates a new settlement service
func NewService(repo *Repository, expenses ExpenseStore, balances BalanceSource) *Service {
	return &Service{
		repo:     repo,
		expenses: expenses,
		balances: balances,
	}
}

// SetNotifier installs a hook that fires after each recorded settlement.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Suggest computes the settlement plan for an event's current balances. The
// plan is derived, never stored; it is recomputed from scratch on every call
// and self-checked against the plan verifier.
func (s *Service) Suggest(ctx context.Context, eventID uuid.UUID) ([]DebtSuggestion, error) {
	balances, err := s.balances.Balances(ctx, eventID)
	if err != nil {
		return nil, err
	}

	suggestions := OptimizeSettlements(balances)

	if !ValidateSettlementPlan(suggestions, balances) {
		// Should be unreachable: the optimizer's output always settles the
		// table it was given. Surface it loudly rather than suggest a plan
		// that moves the wrong money.
		slog.Error("settlement plan failed self-check", "event_id", eventID, "suggestions", len(suggestions))
		return nil, fmt.Errorf("settlement plan failed verification for event %s", eventID)
	}

	return suggestions, nil
}

// Record commits an accepted suggestion as a settlement expense through the
// same validation gate every expense passes. The payer "owes" the whole
// payment in its single split, so the gated invariants hold; the balance
// aggregation recognizes the settlement category and shifts net balances
// directly instead of splitting.
func (s *Service) Record(ctx context.Context, creatorID uuid.UUID, req *RecordSettlementRequest) (*expense.ExpenseWithSplits, error) {
	existing, err := s.expenses.ListSettlementsBetween(ctx, req.EventID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	if result := expense.ValidateSettlement(req.From, req.To, req.Amount, existing); !result.Valid {
		return nil, &expense.ValidationError{Message: result.Message}
	}

	// Single split: the payer paid the whole amount and nominally owes all of
	// it, which satisfies the expense gate without touching anyone's totals.
	inputs := []split.ExpenseSplitInput{{
		ParticipantID: req.From,
		OwedShare:     req.Amount,
		PaidShare:     req.Amount,
	}}

	const title = "Settlement payment"
	if result := expense.ValidateExpense(title, req.Amount, req.From, inputs); !result.Valid {
		return nil, &expense.ValidationError{Message: result.Message}
	}

	e := &expense.Expense{
		EventID:    req.EventID,
		Title:      title,
		Amount:     req.Amount,
		PaidBy:     req.From,
		ReceivedBy: &req.To,
		Category:   expense.CategorySettlement,
		SplitType:  split.TypeCustom,
		Notes:      req.Notes,
		CreatedBy:  creatorID,
	}

	created, err := s.expenses.CreateExpenseWithSplits(ctx, e, inputs)
	if err != nil {
		return nil, err
	}

	slog.Info("settlement recorded",
		"event_id", req.EventID,
		"from", req.From,
		"to", req.To,
		"amount", req.Amount,
	)

	if s.notifier != nil {
		s.notifier.SettlementRecorded(ctx, created)
	}

	return created, nil
}

// ListByEventID retrieves the recorded settlement history of an event.
func (s *Service) ListByEventID(ctx context.Context, eventID uuid.UUID, page, perPage int) ([]*Record, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByEventID(ctx, eventID, perPage, offset)
}
