// Package valuation is an HTTP client for a remote valuation engine.
package valuation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/accounts/pkg/config"
	"github.com/amirasaad/accounts/pkg/domain/account"
	"github.com/amirasaad/accounts/pkg/valuation"
	"github.com/golang-sql/civil"
)

const (
	solvePath    = "/valuations/solve"
	forecastPath = "/valuations/forecast"
)

// Client implements valuation.Engine against a remote engine speaking JSON over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New creates an engine client using config.
func New(cfg *config.Valuation, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.Url, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Request is the body sent to the engine.
type Request struct {
	Account     *account.Account           `json:"account"`
	AccountType *account.AccountType       `json:"account_type"`
	Date        civil.Date                 `json:"date"`
	Trace       bool                       `json:"trace"`
	ActionDate  *civil.Date                `json:"action_date,omitempty"`
	Options     *valuation.ForecastOptions `json:"options,omitempty"`
}

// ErrorResponse is returned by the engine on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewValuation implements valuation.Engine. No request is made until the
// valuation is solved or forecast.
func (c *Client) NewValuation(
	acc *account.Account,
	at *account.AccountType,
	date civil.Date,
	trace bool,
) (valuation.Valuation, error) {
	if c.baseURL == "" {
		return nil, valuation.ErrEngineUnavailable
	}
	return &remoteValuation{
		client: c,
		req:    Request{Account: acc, AccountType: at, Date: date, Trace: trace},
		result: &valuation.Result{Account: acc, Date: date, Trace: []valuation.TraceRecord{}},
	}, nil
}

type remoteValuation struct {
	client *Client
	req    Request
	result *valuation.Result
}

func (v *remoteValuation) SolveInstalment(ctx context.Context) error {
	return v.client.post(ctx, solvePath, v.req, v.result)
}

func (v *remoteValuation) Forecast(ctx context.Context, actionDate civil.Date, opts valuation.ForecastOptions) error {
	req := v.req
	req.ActionDate = &actionDate
	req.Options = &opts
	return v.client.post(ctx, forecastPath, req, v.result)
}

func (v *remoteValuation) Result() *valuation.Result {
	return v.result
}

func (c *Client) post(ctx context.Context, path string, body Request, out *valuation.Result) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Valuation engine request failed", "url", url, "error", err)
		return fmt.Errorf("%w: %w", valuation.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Debug("Valuation engine responded", "url", url, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(raw))
		var er ErrorResponse
		if json.Unmarshal(raw, &er) == nil && er.Error != "" {
			msg = er.Error
		}
		err := fmt.Errorf("engine returned status %d: %s", resp.StatusCode, msg)
		if resp.StatusCode == http.StatusServiceUnavailable || resp.StatusCode == http.StatusBadGateway {
			return errors.Join(valuation.ErrEngineUnavailable, err)
		}
		return err
	}

	var result valuation.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Account != nil {
		result.Account.Normalize()
		if out.Account == nil {
			out.Account = result.Account
		} else {
			*out.Account = *result.Account
		}
	}
	if result.Date.IsValid() {
		out.Date = result.Date
	}
	if result.Trace != nil {
		out.Trace = result.Trace
	}
	return nil
}
