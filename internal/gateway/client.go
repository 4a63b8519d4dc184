// Package gateway issues authenticated HTTP requests against the LMS backend
// and normalises every response into a declared envelope. It owns no state
// beyond the HTTP client: it never touches the mirror store or any screen's
// collection.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openlms-dev/admin-console/pkg/config"
	appErrors "github.com/openlms-dev/admin-console/pkg/errors"
	"github.com/openlms-dev/admin-console/pkg/logger"
	"github.com/openlms-dev/admin-console/pkg/metrics"
)

// TokenSource supplies the bearer credential attached to outgoing requests.
// An empty token is not an error at this layer; the backend decides
// authorization.
type TokenSource interface {
	Token() string
}

// Envelope is the response contract shared by every backend operation.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// Client is the shared HTTP layer under the per-entity gateways.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	recorder *metrics.Recorder
	logger   *zap.Logger
}

// NewClient builds a gateway client with a bounded request timeout so no
// call can hang a screen indefinitely.
func NewClient(cfg config.APIConfig, tokens TokenSource, recorder *metrics.Recorder, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: logger.RoundTripper(log, http.DefaultTransport),
		},
		tokens:   tokens,
		recorder: recorder,
		logger:   log,
	}
}

// do performs one request and decodes the envelope. A declined envelope
// (status false) becomes an application error carrying the backend message
// verbatim; anything uninterpretable becomes a transport error with a
// generic message.
func (c *Client) do(ctx context.Context, entity, verb, method, path string, body, result any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, body, result)
	outcome := "success"
	switch {
	case appErrors.IsTransport(err):
		outcome = "transport"
	case err != nil:
		outcome = "declined"
	}
	c.recorder.Observe(entity, verb, outcome, time.Since(start))
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, "encode request payload")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Message)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Message)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return appErrors.Wrap(
			fmt.Errorf("undecodable response (http %d)", resp.StatusCode),
			appErrors.ErrTransport.Code, appErrors.ErrTransport.Message,
		)
	}

	if !env.Status {
		if resp.StatusCode == http.StatusUnauthorized {
			return appErrors.Clone(appErrors.ErrUnauthorized, env.Message)
		}
		msg := env.Message
		if msg == "" {
			msg = appErrors.ErrApplication.Message
		}
		return appErrors.Clone(appErrors.ErrApplication, msg)
	}

	if result != nil && len(env.Result) > 0 {
		if err := json.Unmarshal(env.Result, result); err != nil {
			return appErrors.Wrap(err, appErrors.ErrTransport.Code, appErrors.ErrTransport.Message)
		}
	}

	return nil
}
