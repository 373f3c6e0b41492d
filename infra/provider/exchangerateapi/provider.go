// Package exchangerateapi talks to the exchangerate-api.com v6 pair endpoint.
package exchangerateapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/amirasaad/finance-tracker/infra/httpclient"
	"github.com/amirasaad/finance-tracker/pkg/exchange"
)

// DefaultBaseURL is the v6 API root; requests go to
// <base>/<api key>/pair/<FROM>/<TO>.
const DefaultBaseURL = "https://v6.exchangerate-api.com/v6"

// Provider implements exchange.Fetcher.
type Provider struct {
	baseURL string
	client  *httpclient.Client
	logger  *slog.Logger
}

func New(baseURL string, client *httpclient.Client, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL: baseURL,
		client:  client,
		logger:  logger.With("provider", "exchangerate-api"),
	}
}

// FetchPair returns the raw payload for any response the provider answered,
// including 4xx error bodies. Network failures and 5xx responses are
// returned as *exchange.TransportError; the API key never appears in them.
func (p *Provider) FetchPair(ctx context.Context, apiKey, from, to string) ([]byte, error) {
	endpoint, err := url.JoinPath(p.baseURL, apiKey, "pair", from, to)
	if err != nil {
		return nil, &exchange.TransportError{Err: fmt.Errorf("build provider url: %w", redact(err))}
	}

	status, body, err := p.client.GetBody(ctx, endpoint)
	if err != nil {
		p.logger.Error("Provider request failed", "from", from, "to", to, "error", redact(err))
		return nil, &exchange.TransportError{
			Err: fmt.Errorf("GET pair %s/%s: %w", from, to, redact(err)),
		}
	}
	if status >= http.StatusInternalServerError {
		p.logger.Error("Provider responded with server error", "from", from, "to", to, "status", status)
		return nil, &exchange.TransportError{
			Err: fmt.Errorf("exchange rate provider responded with status %d", status),
		}
	}
	if status != http.StatusOK {
		p.logger.Warn("Provider responded with client error", "from", from, "to", to, "status", status)
	}
	return body, nil
}

// redact drops the request URL, which carries the API key, from url errors.
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
