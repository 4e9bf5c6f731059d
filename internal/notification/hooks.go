package notification

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chipinapp/chipin/internal/event"
	"github.com/chipinapp/chipin/internal/expense"
	"github.com/chipinapp/chipin/internal/user"
)

// UserDirectory resolves participant display names for notification messages.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// LedgerHooks pushes notifications after ledger and membership writes. A
// failed notification is logged and never fails the originating request.
type LedgerHooks struct {
	svc   *Service
	users UserDirectory
}

// NewLedgerHooks creates notification hooks backed by the given service.
func NewLedgerHooks(svc *Service, users UserDirectory) *LedgerHooks {
	return &LedgerHooks{svc: svc, users: users}
}

// ExpenseAdded notifies every participant who owes a share of a new expense.
func (h *LedgerHooks) ExpenseAdded(ctx context.Context, e *expense.ExpenseWithSplits) {
	payerName := h.username(ctx, e.Expense.PaidBy)
	for _, s := range e.Splits {
		if s.ParticipantID == e.Expense.PaidBy || !s.OwedShare.IsPositive() {
			continue
		}
		if _, err := h.svc.NotifyExpenseAdded(ctx, s.ParticipantID, payerName, e.Expense.Amount, e.Expense.ID); err != nil {
			slog.Warn("failed to send expense notification",
				"expense_id", e.Expense.ID,
				"recipient_id", s.ParticipantID,
				"error", err,
			)
		}
	}
}

// SettlementRecorded notifies the receiver of a committed settlement payment.
func (h *LedgerHooks) SettlementRecorded(ctx context.Context, e *expense.ExpenseWithSplits) {
	if e.Expense.ReceivedBy == nil {
		return
	}
	payerName := h.username(ctx, e.Expense.PaidBy)
	if _, err := h.svc.NotifySettlementRecorded(ctx, *e.Expense.ReceivedBy, payerName, e.Expense.Amount, e.Expense.ID); err != nil {
		slog.Warn("failed to send settlement notification",
			"expense_id", e.Expense.ID,
			"recipient_id", *e.Expense.ReceivedBy,
			"error", err,
		)
	}
}

// MemberInvited notifies a participant that they were invited to an event.
func (h *LedgerHooks) MemberInvited(ctx context.Context, ev *event.Event, participantID uuid.UUID) {
	if _, err := h.svc.NotifyEventInvite(ctx, participantID, ev.Name, ev.ID); err != nil {
		slog.Warn("failed to send invite notification",
			"event_id", ev.ID,
			"recipient_id", participantID,
			"error", err,
		)
	}
}

func (h *LedgerHooks) username(ctx context.Context, id uuid.UUID) string {
	u, err := h.users.GetByID(ctx, id)
	if err != nil || u == nil {
		return "A participant"
	}
	return u.Username
}
