package ollamaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"syscall"
	"time"

	"gemma-chat/cmd/api/httpclient"
)

// Kind classifies a failed generate call.
type Kind int

const (
	// KindFailed covers every failure without a more specific kind.
	KindFailed Kind = iota
	// KindUnavailable means the inference server refused the connection.
	KindUnavailable
	// KindModelNotFound means the server answered 404, usually because the model was never pulled.
	KindModelNotFound
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindModelNotFound:
		return "model_not_found"
	default:
		return "failed"
	}
}

// GenerateError is returned by Generate for every failure.
type GenerateError struct {
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *GenerateError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("ollama generate failed (%s): status=%d body=%s", e.Kind, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("ollama generate failed (%s): %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("ollama generate failed (%s)", e.Kind)
	}
}

func (e *GenerateError) Unwrap() error { return e.Err }

// KindOf reports the Kind of err, or KindFailed if err is not a *GenerateError.
func KindOf(err error) Kind {
	var genErr *GenerateError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindFailed
}

type Config struct {
	// URL is the full generate endpoint, e.g. http://localhost:11434/api/generate.
	URL         string
	Model       string
	Temperature float64
	// Timeout of 0 leaves the call unbounded.
	Timeout time.Duration
}

type Client struct {
	base        *httpclient.BaseClient
	model       string
	temperature float64
}

type GenerateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
}

type GenerateResponse struct {
	Model    string  `json:"model"`
	Response *string `json:"response"`
	Done     bool    `json:"done"`
}

func New(cfg Config) *Client {
	httpClient := httpclient.New(httpclient.Config{Timeout: cfg.Timeout})
	return &Client{
		base:        httpclient.NewBaseClient(httpClient, cfg.URL),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Generate sends prompt in a single non-streaming request and returns the
// trimmed response text. There are no retries.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload := GenerateRequest{
		Model:       c.model,
		Prompt:      prompt,
		Stream:      false,
		Temperature: c.temperature,
	}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerateError{Kind: KindFailed, Err: err}
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, bytes.NewReader(buf))
	if err != nil {
		return "", &GenerateError{Kind: KindFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		kind := KindFailed
		if errors.Is(err, syscall.ECONNREFUSED) {
			kind = KindUnavailable
		}
		return "", &GenerateError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	const maxBodySize = 5 * 1024 * 1024
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if readErr != nil {
		return "", &GenerateError{Kind: KindFailed, Err: fmt.Errorf("ollama response read failed: %w", readErr)}
	}

	if resp.StatusCode != http.StatusOK {
		kind := KindFailed
		if resp.StatusCode == http.StatusNotFound {
			kind = KindModelNotFound
		}
		return "", &GenerateError{Kind: kind, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &GenerateError{Kind: KindFailed, Err: fmt.Errorf("ollama response decode failed: %w", err)}
	}
	if out.Response == nil {
		return "", &GenerateError{Kind: KindFailed, Err: errors.New("ollama response has no response field")}
	}
	return strings.TrimSpace(*out.Response), nil
}
