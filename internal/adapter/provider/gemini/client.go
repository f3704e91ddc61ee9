// Package gemini is the generative text client for the Gemini REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/studyplanner-backend/internal/config"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/provider"
)

const (
	defaultBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel      = "gemini-1.5-flash-latest"
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
	defaultTimeout    = 60 * time.Second
	maxRetryDelay     = 5 * time.Minute

	// maxBodyBytes caps how much of an error body is kept for diagnostics.
	maxBodyBytes = 4 << 10
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Client sends prompts to a generateContent endpoint. It keeps no state
// between calls; overlapping calls are independent.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	maxRetries int
	baseDelay  time.Duration
	httpClient *http.Client
	sleep      SleepFunc
	metrics    *Metrics
	log        *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL points the client at another endpoint (for testing).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithSleep replaces the delay primitive used between retries.
func WithSleep(fn SleepFunc) Option {
	return func(c *Client) { c.sleep = fn }
}

// WithMetrics registers attempt counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) { c.metrics = NewMetrics(reg) }
}

// NewClient creates a Client from configuration. A missing API key is not
// an error here; Generate reports it before any request is sent.
func NewClient(cfg config.GeminiConfig, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		apiKey:     cfg.APIKey,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.RetryBaseDelay,
		sleep:      sleepContext,
		log:        logger.With("adapter", "gemini"),
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.maxRetries < 0 {
		c.maxRetries = defaultMaxRetries
	}
	if c.maxRetries > config.MaxGeminiRetries {
		c.maxRetries = config.MaxGeminiRetries
	}
	if c.baseDelay <= 0 {
		c.baseDelay = defaultBaseDelay
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.httpClient = &http.Client{Timeout: timeout}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate sends prompt as the only content of a single-turn request and
// returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.do(ctx, "generate", singleTurn(prompt))
}

// Chat sends the whole conversation, oldest turn first, and returns the
// model's reply.
func (c *Client) Chat(ctx context.Context, history []domain.ChatMessage) (string, error) {
	return c.do(ctx, "chat", conversation(history))
}

// do runs the retry loop. Overload and transport failures share one budget
// of maxRetries extra attempts, waiting baseDelay, 2*baseDelay, 4*baseDelay...
// Everything else returns on the first attempt. A retry whose wait would
// outlast the ctx deadline is not started; the last failure is returned.
func (c *Client) do(ctx context.Context, op string, body generateRequest) (string, error) {
	if c.apiKey == "" {
		c.metrics.attempt(op, provider.KindConfig.String())
		return "", &provider.GenerationError{
			Kind: provider.KindConfig,
			Err:  errors.New("gemini api key is not set"),
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	for attempt := 0; ; attempt++ {
		text, err := c.attempt(ctx, payload)
		if err == nil {
			c.metrics.attempt(op, "ok")
			if attempt > 0 {
				c.log.InfoContext(ctx, "gemini succeeded after retry", slog.String("op", op), slog.Int("attempts", attempt+1))
			}
			return text, nil
		}

		var genErr *provider.GenerationError
		if !errors.As(err, &genErr) {
			if errors.Is(err, context.DeadlineExceeded) {
				// Request deadline hit mid attempt; surfaces as busy.
				c.metrics.attempt(op, "deadline")
				return "", &provider.GenerationError{Kind: provider.KindTransport, Attempts: attempt + 1, Err: err}
			}
			// Caller cancellation or a local error. Never retried.
			outcome := "error"
			if ctx.Err() != nil {
				outcome = "canceled"
			}
			c.metrics.attempt(op, outcome)
			return "", fmt.Errorf("gemini: %w", err)
		}
		genErr.Attempts = attempt + 1
		c.metrics.attempt(op, genErr.Kind.String())

		if !genErr.Kind.Retryable() {
			c.logFailure(ctx, op, genErr)
			return "", genErr
		}
		if attempt >= c.maxRetries {
			c.log.ErrorContext(ctx, "gemini retries exhausted",
				slog.String("op", op),
				slog.String("kind", genErr.Kind.String()),
				slog.Int("attempts", genErr.Attempts),
			)
			return "", genErr
		}

		delay := c.backoff(attempt)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= delay {
			c.log.WarnContext(ctx, "gemini retry skipped, request deadline too close",
				slog.String("op", op),
				slog.String("kind", genErr.Kind.String()),
				slog.Int("attempts", genErr.Attempts),
			)
			return "", genErr
		}
		c.metrics.retry(op, genErr.Kind.String())
		c.log.WarnContext(ctx, "gemini retry",
			slog.String("op", op),
			slog.String("reason", genErr.Kind.String()),
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
		)
		if err := c.sleep(ctx, delay); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return "", genErr
			}
			return "", fmt.Errorf("gemini: wait before retry: %w", err)
		}
	}
}

// attempt performs one HTTP round trip. Failures are *provider.GenerationError
// except caller cancellation, which is returned as the context error.
func (c *Client) attempt(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &provider.GenerationError{Kind: provider.KindTransport, Err: redact(err, c.apiKey)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &provider.GenerationError{Kind: provider.KindTransport, Err: fmt.Errorf("read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusServiceUnavailable:
		return "", &provider.GenerationError{
			Kind:       provider.KindOverload,
			StatusCode: resp.StatusCode,
			Body:       truncate(raw),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", &provider.GenerationError{
			Kind:       provider.KindBadStatus,
			StatusCode: resp.StatusCode,
			Body:       truncate(raw),
		}
	}

	var env generateResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", &provider.GenerationError{Kind: provider.KindEmptyResponse, Err: fmt.Errorf("decode envelope: %w", err)}
	}

	text, ok := env.text()
	if !ok {
		reason := env.blockReason()
		if reason == "" {
			reason = "no text in response"
		}
		return "", &provider.GenerationError{
			Kind: provider.KindEmptyResponse,
			Err:  fmt.Errorf("content might have been blocked: %s", reason),
		}
	}
	return text, nil
}

// backoff returns the wait before retry number attempt+1, doubling from
// baseDelay and capped at maxRetryDelay.
func (c *Client) backoff(attempt int) time.Duration {
	if attempt >= 30 {
		return maxRetryDelay
	}
	d := c.baseDelay << attempt
	if d <= 0 || d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

func (c *Client) endpoint() string {
	return c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent?key=" + url.QueryEscape(c.apiKey)
}

func (c *Client) logFailure(ctx context.Context, op string, e *provider.GenerationError) {
	attrs := []any{
		slog.String("op", op),
		slog.String("kind", e.Kind.String()),
	}
	if e.StatusCode != 0 {
		attrs = append(attrs, slog.Int("status", e.StatusCode), slog.String("body", e.Body))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}
	c.log.ErrorContext(ctx, "gemini request failed", attrs...)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(b []byte) string {
	if len(b) > maxBodyBytes {
		b = b[:maxBodyBytes]
	}
	return string(b)
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) error {
	var uerr *url.Error
	if key == "" || !errors.As(err, &uerr) {
		return err
	}
	return fmt.Errorf("%s %s: %w", uerr.Op, strings.ReplaceAll(uerr.URL, url.QueryEscape(key), "REDACTED"), uerr.Err)
}
