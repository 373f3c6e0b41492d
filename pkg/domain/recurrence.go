package domain

import "time"

// Recurrence is how often a recurring transaction repeats.
type Recurrence string

const (
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Valid reports whether r is a known recurrence.
func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// Next returns the due date one period after from. ok is false for an
// unknown recurrence.
func (r Recurrence) Next(from time.Time) (next time.Time, ok bool) {
	switch r {
	case RecurrenceDaily:
		return from.AddDate(0, 0, 1), true
	case RecurrenceWeekly:
		return from.AddDate(0, 0, 7), true
	case RecurrenceMonthly:
		return from.AddDate(0, 1, 0), true
	case RecurrenceYearly:
		return from.AddDate(1, 0, 0), true
	default:
		return time.Time{}, false
	}
}
