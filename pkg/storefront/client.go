package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

var errBaseURLRequired = errors.New("storefront base url is required")

// TokenProvider supplies the bearer token for authenticated calls. Returning
// an empty string leaves the request unauthenticated (public reads).
type TokenProvider func() string

// Client is the typed HTTP client for the storefront API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenProvider

	now func() time.Time
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTokenProvider sets the source of the bearer token.
func WithTokenProvider(provider TokenProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.token = provider
		}
	}
}

// NewClient builds a storefront client rooted at the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		now:        time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// ValidationError is raised before any network call when input is malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorResponse is the structured payload some server errors carry.
type ErrorResponse struct {
	AvailableStock *int `json:"availableStock"`
}

// RequestError is a non-2xx response normalized to the server message plus
// the optional structured payload.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
	Response   *ErrorResponse
}

func (e *RequestError) Error() string {
	return e.Message
}

// NetworkError is a transport failure with no response body available.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorEnvelope struct {
	Error struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// do executes one request against the API and decodes the success envelope
// into out when provided.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseRequestError(resp)
	}

	if out == nil {
		return nil
	}

	var envelope successEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &NetworkError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &NetworkError{Err: fmt.Errorf("decode payload: %w", err)}
	}
	return nil
}

func parseRequestError(resp *http.Response) *RequestError {
	reqErr := &RequestError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("request failed with status %d", resp.StatusCode),
	}

	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return reqErr
	}
	if envelope.Error.Message != "" {
		reqErr.Message = envelope.Error.Message
	}
	reqErr.Code = envelope.Error.Code

	if len(envelope.Error.Details) > 0 {
		var details ErrorResponse
		if err := json.Unmarshal(envelope.Error.Details, &details); err == nil && details.AvailableStock != nil {
			reqErr.Response = &details
		}
	}
	return reqErr
}
