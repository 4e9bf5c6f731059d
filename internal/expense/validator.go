package expense

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/chipinapp/chipin/internal/expense/split"
	"github.com/chipinapp/chipin/internal/money"
)

// ValidationResult is the outcome of an accounting-invariant check. The
// validator never returns a Go error: invalid input is an expected outcome
// with a stable, human-readable message, not an exceptional condition.
type ValidationResult struct {
	Valid   bool   `json:"is_valid"`
	Message string `json:"message,omitempty"`
}

func valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func invalid(message string) ValidationResult {
	return ValidationResult{Valid: false, Message: message}
}

// ValidateExpense checks a candidate expense and its splits against the
// accounting invariants. Rules run in a fixed order and short-circuit on the
// first failure, so the same invalid input always reports the same reason.
func ValidateExpense(title string, amount decimal.Decimal, paidBy uuid.UUID, splits []split.ExpenseSplitInput) ValidationResult {
	if strings.TrimSpace(title) == "" {
		return invalid("Title is required")
	}
	if !amount.IsPositive() {
		return invalid("Amount must be greater than 0")
	}
	if len(splits) == 0 {
		return invalid("At least one person must be selected")
	}

	seen := make(map[uuid.UUID]bool, len(splits))
	for _, s := range splits {
		if seen[s.ParticipantID] {
			return invalid("Duplicate participants found")
		}
		seen[s.ParticipantID] = true
	}

	owedSum := decimal.Zero
	paidSum := decimal.Zero
	for _, s := range splits {
		owedSum = owedSum.Add(s.OwedShare)
		paidSum = paidSum.Add(s.PaidShare)
	}
	if !money.Equal(owedSum, amount) {
		return invalid("Total owed amount must equal expense amount")
	}
	if !money.Equal(paidSum, amount) {
		return invalid("Total paid amount must equal expense amount")
	}

	payerFound := false
	for _, s := range splits {
		if s.ParticipantID == paidBy {
			payerFound = true
			if !money.Equal(s.PaidShare, amount) {
				return invalid("Payer must have paid the full amount")
			}
			break
		}
	}
	if !payerFound {
		return invalid("Payer must have paid the full amount")
	}

	for _, s := range splits {
		if s.OwedShare.IsNegative() || s.PaidShare.IsNegative() {
			return invalid("Amounts cannot be negative")
		}
	}

	for _, s := range splits {
		if s.OwedShare.IsPositive() {
			return valid()
		}
	}
	return invalid("At least one person must owe something")
}

// ValidateSettlement checks a direct pairwise payment before it is recorded.
// existing is the list of settlements already recorded between the pair; it is
// accepted for future duplicate/overpayment checks but intentionally unused
// today, so recording the same settlement twice is the caller's to prevent.
func ValidateSettlement(payerID, receiverID uuid.UUID, amount decimal.Decimal, existing []*Expense) ValidationResult {
	_ = existing

	if payerID == receiverID {
		return invalid("Payer and receiver cannot be the same person")
	}
	if !amount.IsPositive() {
		return invalid("Settlement amount must be greater than 0")
	}
	return valid()
}
