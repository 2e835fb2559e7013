// Package testutil provides HTTP helpers for API-level tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecommerce/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// APIClient sends JSON requests to an in-process handler
type APIClient struct {
	t       *testing.T
	handler http.Handler
	token   string
}

// NewAPIClient creates a client for handler
func NewAPIClient(t *testing.T, handler http.Handler) *APIClient {
	return &APIClient{t: t, handler: handler}
}

// WithToken returns a copy of the client that sends a bearer token
func (c *APIClient) WithToken(token string) *APIClient {
	clone := *c
	clone.token = token
	return &clone
}

// Response is a recorded response with its decoded envelope
type Response struct {
	Code     int
	Body     []byte
	Envelope dto.Response
}

// Do sends body as JSON (nil sends no body) and decodes the envelope
func (c *APIClient) Do(method, path string, body any) *Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err, "Failed to marshal request body")
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	resp := &Response{Code: rec.Code, Body: rec.Body.Bytes()}
	if len(resp.Body) > 0 {
		_ = json.Unmarshal(resp.Body, &resp.Envelope)
	}
	return resp
}

// Get sends a GET request
func (c *APIClient) Get(path string) *Response {
	c.t.Helper()
	return c.Do(http.MethodGet, path, nil)
}

// Post sends a POST request
func (c *APIClient) Post(path string, body any) *Response {
	c.t.Helper()
	return c.Do(http.MethodPost, path, body)
}

// DataAs decodes the envelope data into T
func DataAs[T any](t *testing.T, resp *Response) T {
	t.Helper()

	var wrapper struct {
		Data T `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &wrapper), "Failed to parse response data")
	return wrapper.Data
}

// AssertSuccess asserts a successful envelope with the given status
func AssertSuccess(t *testing.T, resp *Response, status int) {
	t.Helper()
	require.Equal(t, status, resp.Code, "Unexpected status code: %s", resp.Body)
	assert.True(t, resp.Envelope.Success, "Expected success to be true")
	assert.Empty(t, resp.Envelope.Error, "Expected no error code")
}

// AssertError asserts an error envelope with the given status and code
func AssertError(t *testing.T, resp *Response, status int, code string) {
	t.Helper()
	require.Equal(t, status, resp.Code, "Unexpected status code: %s", resp.Body)
	assert.False(t, resp.Envelope.Success, "Expected success to be false")
	assert.Equal(t, code, resp.Envelope.Error, "Unexpected error code")
}
