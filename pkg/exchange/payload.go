package exchange

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// PairResult is the decoded pair endpoint payload. Exactly one of the two
// shapes is meaningful: OK with an optional Rate, or not OK with Code.
type PairResult struct {
	OK   bool
	Rate *decimal.Decimal
	Code ProviderCode
}

// DecodePair reads {result, conversion_rate, error-type} from body. Bodies
// that are not JSON objects decode as a failure with CodeUnknown. A success
// whose rate is null, missing, not a number or not positive has a nil Rate.
func DecodePair(body []byte) PairResult {
	if !gjson.ValidBytes(body) {
		return PairResult{Code: CodeUnknown}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return PairResult{Code: CodeUnknown}
	}

	if root.Get("result").String() != "success" {
		return PairResult{Code: ProviderCode(root.Get("error-type").String())}
	}

	res := PairResult{OK: true}
	raw := root.Get("conversion_rate")
	if raw.Type != gjson.Number {
		return res
	}
	rate, err := decimal.NewFromString(raw.Raw)
	if err != nil || !rate.IsPositive() {
		return res
	}
	res.Rate = &rate
	return res
}
