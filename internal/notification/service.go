package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new notification
func (s *Service) Create(ctx context.Context, recipientID uuid.UUID, message string, entityType *string, entityID *uuid.UUID) (*Notification, error) {
	return s.repo.Create(ctx, recipientID, message, entityType, entityID)
}

// GetByID retrieves a notification by its ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, ErrNotificationNotFound
	}
	return notification, nil
}

// ListByRecipientID retrieves all notifications for a participant
func (s *Service) ListByRecipientID(ctx context.Context, recipientID uuid.UUID, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByRecipientID(ctx, recipientID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id, participantID uuid.UUID) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != participantID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a participant
func (s *Service) MarkAllAsRead(ctx context.Context, participantID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, participantID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, participantID uuid.UUID) (int, error) {
	return s.repo.GetUnreadCount(ctx, participantID)
}

// Helper methods for creating specific notification types

// NotifyEventInvite creates a notification for an event invitation
func (s *Service) NotifyEventInvite(ctx context.Context, recipientID uuid.UUID, eventName string, eventID uuid.UUID) (*Notification, error) {
	message := "You have been invited to join event: " + eventName
	entityType := "EVENT"
	return s.repo.Create(ctx, recipientID, message, &entityType, &eventID)
}

// NotifyExpenseAdded creates a notification for a new expense
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID uuid.UUID, payerName string, amount decimal.Decimal, expenseID uuid.UUID) (*Notification, error) {
	message := payerName + " added an expense of " + amount.StringFixed(2) + " and you owe a share"
	entityType := "EXPENSE"
	return s.repo.Create(ctx, recipientID, message, &entityType, &expenseID)
}

// NotifySettlementRecorded creates a notification for a recorded settlement payment
func (s *Service) NotifySettlementRecorded(ctx context.Context, recipientID uuid.UUID, payerName string, amount decimal.Decimal, settlementID uuid.UUID) (*Notification, error) {
	message := payerName + " paid you " + amount.StringFixed(2) + " to settle up"
	entityType := "SETTLEMENT"
	return s.repo.Create(ctx, recipientID, message, &entityType, &settlementID)
}
