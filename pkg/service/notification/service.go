// Package notification stores user notifications and fans them out on the
// event bus.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/finance-tracker/pkg/domain"
	"github.com/amirasaad/finance-tracker/pkg/eventbus"
	"github.com/amirasaad/finance-tracker/pkg/repository"
	"github.com/google/uuid"
)

// Service provides notification creation, listing and housekeeping.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Service. bus may be nil, in which case nothing is emitted.
func New(
	uow repository.UnitOfWork,
	bus eventbus.Bus,
	logger *slog.Logger,
) *Service {
	return &Service{
		uow:    uow,
		bus:    bus,
		logger: logger.With("service", "notification"),
		now:    time.Now,
	}
}

// Create stores a notification and emits notification.created.
func (s *Service) Create(
	ctx context.Context,
	userID uuid.UUID,
	typ domain.NotificationType,
	message string,
) (n *domain.Notification, err error) {
	if !typ.Valid() {
		return nil, domain.ErrInvalidNotificationType
	}
	n = &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      typ,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.NotificationRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, n)
	})
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		if err := s.bus.Emit(ctx, domain.NotificationCreated{Notification: *n}); err != nil {
			s.logger.Warn("Failed to emit notification event", "notification_id", n.ID, "error", err)
		}
	}
	return n, nil
}

// Notify is Create for callers that must not fail because a notification
// could not be stored. Errors are logged.
func (s *Service) Notify(
	ctx context.Context,
	userID uuid.UUID,
	typ domain.NotificationType,
	message string,
) {
	if _, err := s.Create(ctx, userID, typ, message); err != nil {
		s.logger.Error("Failed to create notification",
			"user_id", userID,
			"type", typ,
			"error", err,
		)
	}
}

// List returns one page of the user's notifications and the total count.
func (s *Service) List(
	ctx context.Context,
	filter domain.NotificationFilter,
) (items []*domain.Notification, total int64, err error) {
	filter.Normalize()
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return nil, 0, err
	}
	return repo.List(ctx, filter)
}

// MarkRead flags one notification as read.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	return repo.MarkRead(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	repo, err := s.uow.NotificationRepository()
	if err != nil {
		return err
	}
	return repo.Delete(ctx, userID, id)
}

// HandleTransactionCreated raises a transaction_alert for every new
// transaction.
func (s *Service) HandleTransactionCreated() eventbus.HandlerFunc {
	return func(ctx context.Context, e domain.Event) error {
		evt, ok := e.(domain.TransactionCreated)
		if !ok {
			return fmt.Errorf("notification: unexpected event %T", e)
		}
		tx := evt.Transaction
		_, err := s.Create(ctx, tx.UserID, domain.NotificationTransactionAlert,
			fmt.Sprintf("Transaction Completed: %s", tx.ID))
		return err
	}
}
