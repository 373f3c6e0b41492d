package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType tags why a notification was raised.
type NotificationType string

const (
	NotificationTransactionAlert NotificationType = "transaction_alert"
	NotificationBillReminder     NotificationType = "bill_reminder"
	NotificationGoalReminder     NotificationType = "goal_reminder"
	NotificationRecurrenceAlert  NotificationType = "recurrence_alert"
	NotificationMissedPayment    NotificationType = "missed_payment"
	NotificationBudgetAlert      NotificationType = "budget_alert"
	NotificationOther            NotificationType = "other"
)

// Valid reports whether t is a known notification type.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationTransactionAlert, NotificationBillReminder,
		NotificationGoalReminder, NotificationRecurrenceAlert,
		NotificationMissedPayment, NotificationBudgetAlert, NotificationOther:
		return true
	}
	return false
}

type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      NotificationType
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

// NotificationFilter narrows a notification listing. IsRead nil means both.
type NotificationFilter struct {
	UserID    uuid.UUID
	IsRead    *bool
	Type      NotificationType
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// Normalize applies the default page (1) and limit (10).
func (f *NotificationFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
}

// Offset is the number of rows to skip for the current page.
func (f NotificationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
