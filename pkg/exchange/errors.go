package exchange

import (
	"errors"
	"fmt"
)

// Kind enumerates the ways a conversion can fail.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissingCredentials
	KindInvalidCurrencyPair
	KindUnsupportedCode
	KindMalformedRequest
	KindInvalidKey
	KindInactiveAccount
	KindQuotaReached
	KindRateUnavailable
	KindTransportFailure
)

var kindNames = map[Kind]string{
	KindUnknown:             "unknown",
	KindMissingCredentials:  "missing_credentials",
	KindInvalidCurrencyPair: "invalid_currency_pair",
	KindUnsupportedCode:     "unsupported_code",
	KindMalformedRequest:    "malformed_request",
	KindInvalidKey:          "invalid_key",
	KindInactiveAccount:     "inactive_account",
	KindQuotaReached:        "quota_reached",
	KindRateUnavailable:     "rate_unavailable",
	KindTransportFailure:    "transport_failure",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// The messages below are shown to API consumers verbatim.
//
//revive:disable:error-strings
var (
	ErrMissingCredentials  = errors.New("Exchange Rate API key is missing")
	ErrInvalidCurrencyPair = errors.New("Invalid currency codes provided")
	ErrUnsupportedCode     = errors.New("The supplied currency code is not supported.")
	ErrMalformedRequest    = errors.New("The request structure is invalid. Please check the request format.")
	ErrInvalidKey          = errors.New("The provided API key is invalid.")
	ErrInactiveAccount     = errors.New("Your account is inactive. Please confirm your email address.")
	ErrQuotaReached        = errors.New("Your account has reached the maximum number of requests allowed by your plan.")
	ErrUnknown             = errors.New("An unknown error occurred. Please refer to the API documentation.")

	// ErrRateUnavailable matches any *RateUnavailableError.
	ErrRateUnavailable = errors.New("exchange rate not available")
	// ErrTransport matches any *TransportError.
	ErrTransport = errors.New("transport failure")
)

//revive:enable:error-strings

var kindErrors = map[Kind]error{
	KindMissingCredentials:  ErrMissingCredentials,
	KindInvalidCurrencyPair: ErrInvalidCurrencyPair,
	KindUnsupportedCode:     ErrUnsupportedCode,
	KindMalformedRequest:    ErrMalformedRequest,
	KindInvalidKey:          ErrInvalidKey,
	KindInactiveAccount:     ErrInactiveAccount,
	KindQuotaReached:        ErrQuotaReached,
	KindRateUnavailable:     ErrRateUnavailable,
	KindTransportFailure:    ErrTransport,
	KindUnknown:             ErrUnknown,
}

// RateUnavailableError is returned when the provider reported success but
// carried no usable rate for Currency.
type RateUnavailableError struct {
	Currency string
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("Exchange rate for %s not available", e.Currency)
}

func (e *RateUnavailableError) Is(target error) bool {
	return target == ErrRateUnavailable
}

// TransportError wraps a network level failure that survived all retries.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// ConversionError is the single envelope every failed conversion is
// returned in. Err keeps the specific cause.
type ConversionError struct {
	Kind Kind
	Err  error
}

func (e *ConversionError) Error() string {
	return "Currency conversion failed: " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func wrap(kind Kind, cause error) error {
	if cause == nil {
		cause = kindErrors[kind]
	}
	return &ConversionError{Kind: kind, Err: cause}
}

// KindOf reports the failure kind carried by err. Errors that are not
// conversion failures report KindUnknown.
func KindOf(err error) Kind {
	var convErr *ConversionError
	if errors.As(err, &convErr) {
		return convErr.Kind
	}
	for kind, sentinel := range kindErrors {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnknown
}

// IsConversionError reports whether err went through the conversion envelope.
func IsConversionError(err error) bool {
	var convErr *ConversionError
	return errors.As(err, &convErr)
}
