package domain

import "errors"

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a user is not authorized to perform an action
	ErrUnauthorized = errors.New("unauthorized action")
	// ErrAlreadyExists is returned when a resource with the same key exists
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrAmountMustBePositive is returned when a monetary amount is zero or negative.
	ErrAmountMustBePositive = errors.New("amount must be positive")
	// ErrInvalidTransactionType is returned for anything other than income or expense.
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")
	// ErrInvalidCategory is returned when a category is not one of the known categories.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidRecurrence is returned when a recurrence is not daily, weekly, monthly or yearly.
	ErrInvalidRecurrence = errors.New("invalid recurrence")
	// ErrCommentsTooLong is returned when transaction comments exceed MaxCommentsLength.
	ErrCommentsTooLong = errors.New("comments must not exceed 200 characters")
	// ErrAmountRequiredForConversion is returned when a currency change has no amount to convert.
	ErrAmountRequiredForConversion = errors.New("amount is required for currency conversion")

	ErrEndBeforeStart    = errors.New("end date must be after start date")
	ErrBudgetPeriodEnded = errors.New("cannot add spent amount, budget period has ended")

	// ErrInvalidAllocationPercentage is returned when a goal allocation is outside 0..100.
	ErrInvalidAllocationPercentage = errors.New("allocation percentage must be between 0 and 100")

	ErrInvalidNotificationType = errors.New("invalid notification type")
)
