package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// APIResponse mirrors the JSON envelope written by httputil
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

// NewHTTPRequest creates a new HTTP request for testing handlers
func NewHTTPRequest(method, path string, body interface{}) *http.Request {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// ExecuteRequest executes an HTTP request and returns the response recorder
func ExecuteRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// AssertStatus asserts the response status code
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code. Body: %s", rr.Body.String())
}

// ParseResponse decodes the envelope and, when data is not nil, its data field
func ParseResponse(t *testing.T, rr *httptest.ResponseRecorder, data interface{}) APIResponse {
	t.Helper()

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "failed to parse response body: %s", rr.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data), "failed to parse data: %s", string(resp.Data))
	}
	return resp
}

// AssertErrorCode asserts the response carries an error with code
func AssertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, code string) {
	t.Helper()
	resp := ParseResponse(t, rr, nil)
	require.NotNil(t, resp.Error, "expected error body, got %s", rr.Body.String())
	assert.Equal(t, code, resp.Error.Code)
}

// PtrString returns a pointer to the string
func PtrString(s string) *string {
	return &s
}
