package expense

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrNotPayer        = errors.New("only the payer can modify this expense")
)

// ValidationError carries the first violated accounting rule of a rejected
// expense. The message is stable and user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Store is the persistence surface the expense service needs. It is satisfied
// by *Repository; tests substitute an in-memory fake.
type Store interface {
	CreateExpenseWithSplits(ctx context.Context, e *Expense, inputs []split.ExpenseSplitInput) (*ExpenseWithSplits, error)
	GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error)
	GetSplitsByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]*Split, error)
	ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*Expense, int, error)
	ListWithSplitsByEventID(ctx context.Context, eventID uuid.UUID) ([]*ExpenseWithSplits, error)
	ReplaceExpense(ctx context.Context, e *Expense, inputs []split.ExpenseSplitInput) (*ExpenseWithSplits, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

// Notifier observes committed expense writes.
type Notifier interface {
	ExpenseAdded(ctx context.Context, e *ExpenseWithSplits)
}

// Service handles expense business logic
type Service struct {
	store        Store
	splitFactory *split.Factory
	notifier     Notifier // optional
}

// NewService creates a new expense service with dependencies injected
func NewService(store Store, splitFactory *split.Factory) *Service {
	return &Service{
		store:        store,
		splitFactory: splitFactory,
	}
}

// SetNotifier installs a hook that fires after each committed expense.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// CreateExpense builds the splits for a new expense, gates them through the
// accounting validator, and persists expense plus splits atomically. A
// rejected expense returns *ValidationError and touches nothing.
func (s *Service) CreateExpense(ctx context.Context, payerID uuid.UUID, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	inputs := strategy.Calculate(req.Amount, payerID, req.ParticipantIDs(), req.CustomShares())
	inputs = split.Dedupe(inputs)

	if result := ValidateExpense(req.Title, req.Amount, payerID, inputs); !result.Valid {
		return nil, &ValidationError{Message: result.Message}
	}

	e := &Expense{
		EventID:   req.EventID,
		Title:     req.Title,
		Amount:    req.Amount,
		PaidBy:    payerID,
		Category:  req.Category,
		SplitType: strategy.Type(),
		Notes:     req.Notes,
		CreatedBy: payerID,
	}

	created, err := s.store.CreateExpenseWithSplits(ctx, e, inputs)
	if err != nil {
		return nil, err
	}

	slog.Info("expense created",
		"expense_id", created.Expense.ID,
		"event_id", created.Expense.EventID,
		"amount", created.Expense.Amount,
		"participants", len(created.Splits),
	)

	if s.notifier != nil {
		s.notifier.ExpenseAdded(ctx, created)
	}

	return created, nil
}

// GetExpenseByID retrieves an expense with its splits
func (s *Service) GetExpenseByID(ctx context.Context, id uuid.UUID) (*ExpenseWithSplits, error) {
	e, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	splits, err := s.store.GetSplitsByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

// ListExpensesByEventID retrieves expenses for an event
func (s *Service) ListExpensesByEventID(ctx context.Context, eventID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.store.ListByEventID(ctx, eventID, perPage, offset)
}

// UpdateExpense replaces an expense wholesale: splits are rebuilt from the
// request and re-validated exactly like a create.
func (s *Service) UpdateExpense(ctx context.Context, id, userID uuid.UUID, req *UpdateExpenseRequest) (*ExpenseWithSplits, error) {
	existing, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrExpenseNotFound
	}
	if existing.PaidBy != userID {
		return nil, ErrNotPayer
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}

	ids := make([]uuid.UUID, len(req.Participants))
	for i, p := range req.Participants {
		ids[i] = p.ParticipantID
	}

	inputs := strategy.Calculate(req.Amount, existing.PaidBy, ids, customSharesOf(req.Participants))
	inputs = split.Dedupe(inputs)

	if result := ValidateExpense(req.Title, req.Amount, existing.PaidBy, inputs); !result.Valid {
		return nil, &ValidationError{Message: result.Message}
	}

	existing.Title = req.Title
	existing.Amount = req.Amount
	existing.Category = req.Category
	existing.SplitType = strategy.Type()
	existing.Notes = req.Notes

	return s.store.ReplaceExpense(ctx, existing, inputs)
}

// DeleteExpense deletes an expense; only the payer may do so.
func (s *Service) DeleteExpense(ctx context.Context, id, userID uuid.UUID) error {
	e, err := s.store.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return ErrExpenseNotFound
	}
	if e.PaidBy != userID {
		return ErrNotPayer
	}

	return s.store.DeleteExpense(ctx, id)
}
