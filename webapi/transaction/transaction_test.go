package transaction_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/finance-tracker/pkg/exchange"
	"github.com/amirasaad/finance-tracker/webapi/testutils"
	"github.com/amirasaad/finance-tracker/webapi/transaction"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	testutils.E2ETestSuite
}

func TestTransactionTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) create(body string) transaction.Response {
	resp := s.MakeRequest(fiber.MethodPost, "/api/v1/transactions", body, s.Token)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var tx transaction.Response
	s.Decode(resp, &tx)
	return tx
}

func (s *TransactionTestSuite) TestCreate() {
	s.Run("converts to base currency", func() {
		s.Converter.Rate("EUR", "USD", "1.2").Once()
		tx := s.create(`{"type":"expense","amount":100,"currency":"EUR","category":"Food","tags":["weekly"]}`)
		s.Equal("EUR", tx.Currency)
		s.Equal("120.00", tx.BaseAmount.StringFixed(2))
		s.Equal([]string{"weekly"}, tx.Tags)
	})

	s.Run("without auth", func() {
		resp := s.MakeRequest(fiber.MethodPost, "/api/v1/transactions", `{"type":"expense","amount":1,"category":"Food"}`, "")
		defer resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	s.Run("validation error", func() {
		resp := s.MakeRequest(fiber.MethodPost, "/api/v1/transactions", `{"type":"gift","amount":1,"category":"Food"}`, s.Token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		pd := s.Problem(resp)
		s.Equal("Validation failed", pd["title"])
	})

	s.Run("unknown category", func() {
		resp := s.MakeRequest(fiber.MethodPost, "/api/v1/transactions", `{"type":"income","amount":1,"category":"Lottery"}`, s.Token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		s.Equal("invalid category", s.Problem(resp)["detail"])
	})

	s.Run("provider unreachable", func() {
		convErr := &exchange.ConversionError{
			Kind: exchange.KindTransportFailure,
			Err:  &exchange.TransportError{Err: fmt.Errorf("dial tcp: refused")},
		}
		s.Converter.On("ConvertAmount", mock.Anything, "5", "JPY", "USD").Return(decimal.Zero, convErr).Once()
		resp := s.MakeRequest(fiber.MethodPost, "/api/v1/transactions", `{"type":"expense","amount":5,"currency":"JPY","category":"Food"}`, s.Token)
		s.Equal(fiber.StatusBadGateway, resp.StatusCode)
		s.Contains(s.Problem(resp)["detail"], "Currency conversion failed: ")
	})

	s.Run("missing api key", func() {
		convErr := &exchange.ConversionError{Kind: exchange.KindMissingCredentials, Err: exchange.ErrMissingCredentials}
		s.Converter.On("ConvertAmount", mock.Anything, "5", "GBP", "USD").Return(decimal.Zero, convErr).Once()
		resp := s.MakeRequest(fiber.MethodPost, "/api/v1/transactions", `{"type":"expense","amount":5,"currency":"GBP","category":"Food"}`, s.Token)
		defer resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func (s *TransactionTestSuite) TestListGetUpdateDelete() {
	first := s.create(`{"type":"expense","amount":10,"category":"Food","tags":["lunch"],"date":"2025-03-01T12:00:00Z"}`)
	s.create(`{"type":"income","amount":900,"category":"Salary","date":"2025-03-02T12:00:00Z"}`)

	s.Run("list with filters", func() {
		resp := s.MakeRequest(fiber.MethodGet, "/api/v1/transactions?type=expense&tag=lunch", "", s.Token)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		var page struct {
			Items []transaction.Response `json:"items"`
			Total int64                  `json:"total"`
		}
		s.Decode(resp, &page)
		s.EqualValues(1, page.Total)
		s.Equal(first.ID, page.Items[0].ID)

		resp = s.MakeRequest(fiber.MethodGet, "/api/v1/transactions?startDate=2025-03-02&endDate=2025-03-02", "", s.Token)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		s.Decode(resp, &page)
		s.EqualValues(1, page.Total)
		s.Equal("income", page.Items[0].Type)

		resp = s.MakeRequest(fiber.MethodGet, "/api/v1/transactions?startDate=yesterday", "", s.Token)
		defer resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	s.Run("get in another currency", func() {
		s.Converter.Rate("USD", "EUR", "0.5").Once()
		resp := s.MakeRequest(fiber.MethodGet, "/api/v1/transactions/"+first.ID.String()+"?currency=EUR", "", s.Token)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		var tx transaction.Response
		s.Decode(resp, &tx)
		s.Equal("EUR", tx.Currency)
		s.Equal("5.00", tx.Amount.StringFixed(2))
	})

	s.Run("other users cannot see it", func() {
		resp := s.MakeRequest(fiber.MethodGet, "/api/v1/transactions/"+first.ID.String(), "", s.TokenFor(uuid.New()))
		defer resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusNotFound, resp.StatusCode)
	})

	s.Run("update currency without amount", func() {
		resp := s.MakeRequest(fiber.MethodPut, "/api/v1/transactions/"+first.ID.String(), `{"currency":"EUR"}`, s.Token)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
		s.Equal("amount is required for currency conversion", s.Problem(resp)["detail"])
	})

	s.Run("update comments", func() {
		resp := s.MakeRequest(fiber.MethodPut, "/api/v1/transactions/"+first.ID.String(), `{"comments":"team lunch"}`, s.Token)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		var tx transaction.Response
		s.Decode(resp, &tx)
		s.Equal("team lunch", tx.Comments)
	})

	s.Run("delete", func() {
		resp := s.MakeRequest(fiber.MethodDelete, "/api/v1/transactions/"+first.ID.String(), "", s.Token)
		resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusOK, resp.StatusCode)

		resp = s.MakeRequest(fiber.MethodDelete, "/api/v1/transactions/"+first.ID.String(), "", s.Token)
		resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusNotFound, resp.StatusCode)

		resp = s.MakeRequest(fiber.MethodDelete, "/api/v1/transactions/not-a-uuid", "", s.Token)
		resp.Body.Close() //nolint:errcheck
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})
}
