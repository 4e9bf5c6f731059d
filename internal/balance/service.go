package balance

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
)

// Service serves balance tables, preferring the store's aggregate view and
// falling back to the client-side recompute when the store path fails.
type Service struct {
	store Source
	local Source
}

// NewService creates a new balance service with both sources injected.
func NewService(store, local Source) *Service {
	return &Service{store: store, local: local}
}

// Balances returns the current balance table for an event.
func (s *Service) Balances(ctx context.Context, eventID uuid.UUID) (map[uuid.UUID]*ParticipantBalance, error) {
	balances, err := s.store.Balances(ctx, eventID)
	if err == nil {
		return balances, nil
	}

	slog.Warn("store balance view unavailable, recomputing locally",
		"event_id", eventID,
		"error", err,
	)
	return s.local.Balances(ctx, eventID)
}

// BalancesSorted returns the balance table as a slice in a stable order
// (largest net first, participant id as tie-break).
func (s *Service) BalancesSorted(ctx context.Context, eventID uuid.UUID) ([]*ParticipantBalance, error) {
	balances, err := s.Balances(ctx, eventID)
	if err != nil {
		return nil, err
	}

	out := make([]*ParticipantBalance, 0, len(balances))
	for _, b := range balances {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].NetBalance.Equal(out[j].NetBalance) {
			return out[i].NetBalance.GreaterThan(out[j].NetBalance)
		}
		return out[i].ParticipantID.String() < out[j].ParticipantID.String()
	})

	return out, nil
}
