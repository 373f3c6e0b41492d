package domain

// Event is anything published on the event bus.
type Event interface {
	Type() string
}

const (
	EventTransactionCreated  = "transaction.created"
	EventNotificationCreated = "notification.created"
)

// TransactionCreated is emitted after a transaction has been persisted.
type TransactionCreated struct {
	Transaction Transaction
}

func (TransactionCreated) Type() string { return EventTransactionCreated }

// NotificationCreated is emitted after a notification has been stored.
type NotificationCreated struct {
	Notification Notification
}

func (NotificationCreated) Type() string { return EventNotificationCreated }
