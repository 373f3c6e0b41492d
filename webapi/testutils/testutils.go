// Package testutils builds a fully wired HTTP application on an in-memory
// database for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	infraeventbus "github.com/amirasaad/finance-tracker/infra/eventbus"
	"github.com/amirasaad/finance-tracker/internal/fixtures/mocks"
	"github.com/amirasaad/finance-tracker/internal/fixtures/testdb"
	"github.com/amirasaad/finance-tracker/pkg/app"
	"github.com/amirasaad/finance-tracker/pkg/config"
	"github.com/amirasaad/finance-tracker/pkg/metrics"
	"github.com/amirasaad/finance-tracker/pkg/middleware"
	"github.com/amirasaad/finance-tracker/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a suite with a fresh migrated SQLite database, a
// mocked converter and a signed token per test.
type E2ETestSuite struct {
	suite.Suite
	App       *fiber.App
	Deps      *app.App
	Converter *mocks.MockConverter
	Bus       *infraeventbus.MemoryEventBus
	Cfg       *config.App
	UserID    uuid.UUID
	Token     string
}

// TestConfig is the configuration used by handler tests.
func TestConfig() *config.App {
	return &config.App{
		Env:       "test",
		Auth:      &config.Auth{Jwt: &config.Jwt{Secret: "test-secret", Expiry: time.Hour}},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
}

// SetupTest builds a new application for every test.
func (s *E2ETestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.Cfg = TestConfig()
	s.Converter = mocks.NewMockConverter(s.T(), "USD")
	s.Bus = infraeventbus.NewWithMemory(logger)

	reg := prometheus.NewRegistry()
	metrics.New(reg).Conversion("same_currency")

	s.Deps = app.New(&app.Deps{
		Uow:       testdb.NewUoW(s.T()),
		Converter: s.Converter,
		EventBus:  s.Bus,
		Metrics:   reg,
		Logger:    logger,
	}, s.Cfg)
	s.App = webapi.SetupApp(s.Deps)

	s.UserID = uuid.New()
	s.Token = s.TokenFor(s.UserID)
}

// TokenFor signs a token for userID with the test secret.
func (s *E2ETestSuite) TokenFor(userID uuid.UUID) string {
	token, err := middleware.SignToken(s.Cfg.Auth.Jwt, userID)
	s.Require().NoError(err)
	return token
}

// MakeRequest is a helper for making HTTP requests in tests.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// Decode reads a success envelope and unmarshals its data into out.
func (s *E2ETestSuite) Decode(resp *http.Response, out any) {
	defer resp.Body.Close() //nolint:errcheck
	var envelope struct {
		Status  int             `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
}

// Problem reads a problem details body.
func (s *E2ETestSuite) Problem(resp *http.Response) map[string]any {
	defer resp.Body.Close() //nolint:errcheck
	var pd map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
