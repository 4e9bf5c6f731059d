package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const expenseColumns = `e.id, e.event_id, e.title, e.amount, e.paid_by, e.received_by, e.date, e.category, e.split_type, e.notes, e.created_by, e.created_at, e.updated_at`

func scanExpense(row interface{ Scan(...any) error }, e *Expense) error {
	return row.Scan(
		&e.ID,
		&e.EventID,
		&e.Title,
		&e.Amount,
		&e.PaidBy,
		&e.ReceivedBy,
		&e.Date,
		&e.Category,
		&e.SplitType,
		&e.Notes,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

// CreateExpenseWithSplits inserts an expense and its split rows in one
// transaction, so a half-written expense can never reach the balance table.
func (r *Repository) CreateExpenseWithSplits(ctx context.Context, e *Expense, inputs []split.ExpenseSplitInput) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Date.IsZero() {
		e.Date = now
	}

	query := `
		INSERT INTO expenses (id, event_id, title, amount, paid_by, received_by, date, category, split_type, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = tx.ExecContext(ctx, query,
		e.ID, e.EventID, e.Title, e.Amount, e.PaidBy, e.ReceivedBy, e.Date,
		e.Category, e.SplitType, e.Notes, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splits, err := insertSplits(ctx, tx, e.ID, inputs, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID uuid.UUID, inputs []split.ExpenseSplitInput, now time.Time) ([]*Split, error) {
	query := `
		INSERT INTO splits (id, expense_id, participant_id, owed_share, paid_share, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	splits := make([]*Split, len(inputs))
	for i, in := range inputs {
		s := &Split{
			ID:            uuid.New(),
			ExpenseID:     expenseID,
			ParticipantID: in.ParticipantID,
			OwedShare:     in.OwedShare,
			PaidShare:     in.PaidShare,
			CreatedAt:     now,
		}
		if _, err := tx.ExecContext(ctx, query, s.ID, s.ExpenseID, s.ParticipantID, s.OwedShare, s.PaidShare, s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	return splits, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT ` + expenseColumns + `, u.username
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.id = $1
	`

	e := &Expense{}
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(
		&e.ID, &e.EventID, &e.Title, &e.Amount, &e.PaidBy, &e.ReceivedBy, &e.Date,
		&e.Category, &e.SplitType, &e.Notes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		&e.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// GetSplitsByExpenseID retrieves all splits for an expense
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.participant_id, s.owed_share, s.paid_share, s.created_at, u.username
		FROM splits s
		JOIN users u ON s.participant_id = u.id
		WHERE s.expense_id = $1
		ORDER BY s.created_at, s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.OwedShare, &s.PaidShare, &s.CreatedAt, &s.ParticipantName); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, nil
}

// ListByEventID retrieves expenses for an event with pagination
func (r *Repository) ListByEventID(ctx context.Context, eventID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE event_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, eventID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT ` + expenseColumns + `, u.username
		FROM expenses e
		JOIN users u ON e.paid_by = u.id
		WHERE e.event_id = $1
		ORDER BY e.date DESC, e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID, &e.EventID, &e.Title, &e.Amount, &e.PaidBy, &e.ReceivedBy, &e.Date,
			&e.Category, &e.SplitType, &e.Notes, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
			&e.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, total, nil
}

// ListWithSplitsByEventID retrieves the complete expense history of an event,
// splits included, in a stable order. This is the snapshot the balance
// recompute folds over.
func (r *Repository) ListWithSplitsByEventID(ctx context.Context, eventID uuid.UUID) ([]*ExpenseWithSplits, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.event_id = $1
		ORDER BY e.created_at, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := scanExpense(rows, e); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	result := make([]*ExpenseWithSplits, len(expenses))
	for i, e := range expenses {
		splits, err := r.GetSplitsByExpenseID(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		result[i] = &ExpenseWithSplits{Expense: e, Splits: splits}
	}

	return result, nil
}

// ReplaceExpense rewrites an expense and its splits in one transaction.
// Editing is full replacement: the old split rows are deleted and the new set
// inserted, never patched in place.
func (r *Repository) ReplaceExpense(ctx context.Context, e *Expense, inputs []split.ExpenseSplitInput) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	e.UpdatedAt = now

	query := `
		UPDATE expenses
		SET title = $2, amount = $3, paid_by = $4, received_by = $5, date = $6,
		    category = $7, split_type = $8, notes = $9, updated_at = $10
		WHERE id = $1
	`
	res, err := tx.ExecContext(ctx, query,
		e.ID, e.Title, e.Amount, e.PaidBy, e.ReceivedBy, e.Date,
		e.Category, e.SplitType, e.Notes, e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrExpenseNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM splits WHERE expense_id = $1`, e.ID); err != nil {
		return nil, fmt.Errorf("failed to delete old splits: %w", err)
	}

	splits, err := insertSplits(ctx, tx, e.ID, inputs, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense update: %w", err)
	}

	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

// DeleteExpense removes an expense; the splits cascade with it.
func (r *Repository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// ListSettlementsBetween retrieves settlement expenses already recorded from
// payer to receiver within an event.
func (r *Repository) ListSettlementsBetween(ctx context.Context, eventID, payerID, receiverID uuid.UUID) ([]*Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		WHERE e.event_id = $1 AND e.category = $2 AND e.paid_by = $3 AND e.received_by = $4
		ORDER BY e.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, CategorySettlement, payerID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := scanExpense(rows, e); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}
