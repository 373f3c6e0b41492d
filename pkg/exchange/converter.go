package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

// Converter is what money-bearing services need from the conversion
// service.
type Converter interface {
	ConvertAmount(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	BaseCurrency() string
}

var _ Converter = (*Service)(nil)

// ConvertOrKeep converts amount unless from and to name the same currency,
// in which case the amount is reused unchanged and c is never called.
func ConvertOrKeep(
	ctx context.Context,
	c Converter,
	amount decimal.Decimal,
	from, to string,
) (decimal.Decimal, error) {
	if NormalizeCode(from) == NormalizeCode(to) {
		return amount, nil
	}
	return c.ConvertAmount(ctx, amount, from, to)
}

// ToBase expresses amount in c's base currency. Amounts already in the base
// currency are returned as is.
func ToBase(
	ctx context.Context,
	c Converter,
	amount decimal.Decimal,
	from string,
) (decimal.Decimal, error) {
	return ConvertOrKeep(ctx, c, amount, from, c.BaseCurrency())
}
