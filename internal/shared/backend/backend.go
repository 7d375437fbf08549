package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/symtons/leavedesk/internal/shared/apperror"
	"github.com/symtons/leavedesk/internal/shared/contextutil"
)

// Client is the one transport every collaborator call goes through. It owns
// authentication, request ids, idempotency keys, and mapping of failure
// responses into the apperror taxonomy. No caller ever sees a raw
// *http.Response.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	// Limiter optionally throttles outgoing calls client-side. Nil means no
	// throttling.
	Limiter *rate.Limiter
}

func NewClient(cfg Config, logger ...*zap.Logger) *Client {
	l := zap.L().Named("backend.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("backend.client")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: timeout},
		limiter: cfg.Limiter,
		logger:  l,
	}
}

// errorBody is the minimum structured error contract: every endpoint may fail
// with a body carrying at least a message, surfaced verbatim.
type errorBody struct {
	Message string `json:"message"`
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Put issues a PUT with a JSON body and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// Delete issues a DELETE and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperror.Wrap(err, apperror.CodeTransport, "Request was cancelled", 0)
		}
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return apperror.Wrap(err, apperror.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rid := contextutil.GetRequestID(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", rid)

	// Mutations carry an idempotency key so a manual retry after a transport
	// failure cannot double-apply on the server.
	if method == http.MethodPost || method == http.MethodPut {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return apperror.Wrap(err, apperror.CodeTransport, "Unable to reach the server. Please try again.", 0)
	}
	defer res.Body.Close()

	c.logger.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", res.StatusCode),
		zap.String("request_id", rid),
		zap.Duration("elapsed", time.Since(start)),
	)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeTransport, "Unable to read the server response", 0)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return c.mapFailure(method, path, res.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.Wrap(err, apperror.CodeTransport, "The server returned an unexpected response", 0)
	}
	return nil
}

func (c *Client) mapFailure(method, path string, status int, raw []byte) error {
	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	message := eb.Message

	code := apperror.CodeTransport
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		code = apperror.CodeInvalidInput
	case status == http.StatusUnauthorized:
		code = apperror.CodeUnauthorized
	case status == http.StatusForbidden:
		code = apperror.CodeForbidden
	case status == http.StatusNotFound:
		code = apperror.CodeNotFound
	case status == http.StatusConflict:
		code = apperror.CodeConflict
	case status >= 500:
		code = apperror.CodeServiceUnavailable
	}
	if message == "" {
		message = "The request could not be completed. Please try again."
	}

	c.logger.Warn("backend call rejected",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.String("code", code),
		zap.String("message", message),
	)
	return apperror.New(code, message, status)
}
