// Package mocks holds testify mocks shared by service and handler tests.
package mocks

import (
	"context"

	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type convertFunc func(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)

// MockConverter is a mock of exchange.Converter.
type MockConverter struct {
	mock.Mock
	Base string
}

var _ exchange.Converter = (*MockConverter)(nil)

// NewMockConverter creates a mock whose expectations are asserted at cleanup.
func NewMockConverter(t interface {
	mock.TestingT
	Cleanup(func())
}, base string) *MockConverter {
	m := &MockConverter{Base: base}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockConverter) ConvertAmount(
	ctx context.Context,
	amount decimal.Decimal,
	from, to string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, amount.String(), from, to)
	if fn, ok := args.Get(0).(convertFunc); ok {
		return fn(ctx, amount, from, to)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConverter) BaseCurrency() string {
	return m.Base
}

// Rate makes ConvertAmount(amount, from, to) return amount × rate rounded
// to two places for any amount.
func (m *MockConverter) Rate(from, to, rate string) *mock.Call {
	r := decimal.RequireFromString(rate)
	return m.On("ConvertAmount", mock.Anything, mock.Anything, from, to).
		Return(convertFunc(func(_ context.Context, amount decimal.Decimal, _, _ string) (decimal.Decimal, error) {
			return amount.Mul(r).Round(2), nil
		}), nil)
}
