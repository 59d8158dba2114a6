// Package client talks to the dashboard API on behalf of terminal tools.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/Raymond9734/invoices-dashboard/internal/auth"
	"github.com/Raymond9734/invoices-dashboard/internal/handler"
	"github.com/Raymond9734/invoices-dashboard/internal/models"
	"github.com/Raymond9734/invoices-dashboard/internal/service"
)

// ErrUnauthenticated is returned when the API rejects the session
var ErrUnauthenticated = errors.New("not logged in")

// HTTPClient keeps the session cookie between calls
type HTTPClient struct {
	Base string
	HTTP *http.Client
}

// New creates a client for the API at base
func New(base string) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &HTTPClient{
		Base: strings.TrimRight(base, "/"),
		HTTP: &http.Client{
			Jar:     jar,
			Timeout: 10 * time.Second,
			// redirects carry meaning for this API
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, nil
}

// Login opens a session. On rejection the returned FormState carries the
// API's message; it is nil on success.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.FormState, error) {
	form := url.Values{"email": {email}, "password": {password}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+auth.LoginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusSeeOther {
		return nil, nil
	}

	var state models.FormState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("login failed: %s", resp.Status)
	}
	return &state, nil
}

// ListInvoices fetches the listing for the given query string
func (c *HTTPClient) ListInvoices(ctx context.Context, rawQuery string) (*handler.InvoiceListResponse, error) {
	target := c.Base + service.InvoicesPath
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusSeeOther:
		return nil, ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("list invoices failed: %s", resp.Status)
	}

	var out handler.InvoiceListResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
