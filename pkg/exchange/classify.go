package exchange

// ProviderCode is the "error-type" string reported by the rate provider.
type ProviderCode string

const (
	CodeUnsupported     ProviderCode = "unsupported-code"
	CodeMalformed       ProviderCode = "malformed-request"
	CodeInvalidKey      ProviderCode = "invalid-key"
	CodeInactiveAccount ProviderCode = "inactive-account"
	CodeQuotaReached    ProviderCode = "quota-reached"
	CodeUnknown         ProviderCode = "unknown-code"
)

// Classify maps a provider error code to a failure kind. Unrecognized and
// empty codes map to KindUnknown.
func Classify(code ProviderCode) Kind {
	switch code {
	case CodeUnsupported:
		return KindUnsupportedCode
	case CodeMalformed:
		return KindMalformedRequest
	case CodeInvalidKey:
		return KindInvalidKey
	case CodeInactiveAccount:
		return KindInactiveAccount
	case CodeQuotaReached:
		return KindQuotaReached
	default:
		return KindUnknown
	}
}

// ClassifyError is Classify followed by the sentinel error for the kind.
func ClassifyError(code ProviderCode) error {
	return kindErrors[Classify(code)]
}
