// Package customerdirectory resolves customer display names for statements.
package customerdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/account_ledger/internal/apperrors"
	"github.com/SscSPs/account_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/account_ledger/internal/core/ports/services"
	"github.com/SscSPs/account_ledger/internal/dto"
	"github.com/SscSPs/account_ledger/internal/middleware"
)

const maxErrorBody = 512

// HTTPDirectory looks customers up in a remote customer service.
type HTTPDirectory struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPDirectory creates a client for the customer service at baseURL.
// timeout bounds every request in addition to the caller's context.
func NewHTTPDirectory(baseURL string, timeout time.Duration) *HTTPDirectory {
	return &HTTPDirectory{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

var _ portssvc.CustomerDirectory = (*HTTPDirectory)(nil)

// GetCustomer calls GET {base}/api/v1/customers/{id}.
func (d *HTTPDirectory) GetCustomer(ctx context.Context, customerID string) (*domain.CustomerInfo, error) {
	endpoint := fmt.Sprintf("%s/api/v1/customers/%s", d.baseURL, url.PathEscape(customerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID, ok := middleware.RequestIDFromCtx(ctx); ok {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to make request: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: customer %s: %w", apperrors.ErrUpstreamUnavailable, customerID, apperrors.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: customer service returned status %d: %s", apperrors.ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	var payload dto.CustomerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", apperrors.ErrUpstreamUnavailable, err)
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Customer resolved from customer service", slog.String("customer_id", customerID))
	return &domain.CustomerInfo{CustomerID: payload.CustomerID, Name: payload.Name}, nil
}
