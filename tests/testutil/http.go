// Package testutil provides common test utilities for the MarketHub backend.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestCase drives a single handler invocation. Body is marshaled to
// JSON when set; Setup runs against the built context before the handler,
// so tests can inject the authenticated user or a request id the way the
// middleware chain would.
type HTTPTestCase struct {
	Name           string
	Method         string
	Path           string
	Body           interface{}
	Headers        map[string]string
	ExpectedStatus int
	ExpectedBody   map[string]interface{}
	Setup          func(t *testing.T, tc *TestContext)
	Validate       func(t *testing.T, tc *TestContext)
}

// RunHTTPTestCases runs each case as its own subtest.
func RunHTTPTestCases(t *testing.T, handler gin.HandlerFunc, cases []HTTPTestCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			RunHTTPTestCase(t, handler, tc)
		})
	}
}

// RunHTTPTestCase builds the request, invokes the handler directly and
// checks the status plus any expected top-level body keys.
func RunHTTPTestCase(t *testing.T, handler gin.HandlerFunc, tc HTTPTestCase) {
	t.Helper()

	var body io.Reader
	if tc.Body != nil {
		body = ToJSONReader(t, tc.Body)
	}

	method := tc.Method
	if method == "" {
		method = http.MethodGet
	}
	path := tc.Path
	if path == "" {
		path = "/"
	}

	req := httptest.NewRequest(method, path, body)
	if tc.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range tc.Headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	testCtx := &TestContext{Context: c, Recorder: w}
	if tc.Setup != nil {
		tc.Setup(t, testCtx)
	}

	handler(c)

	if tc.ExpectedStatus != 0 {
		assert.Equal(t, tc.ExpectedStatus, w.Code, "unexpected status code")
	}
	if tc.ExpectedBody != nil {
		actual := JSONResponse(t, testCtx)
		for key, want := range tc.ExpectedBody {
			assert.Equal(t, want, actual[key], "unexpected value for key %q", key)
		}
	}
	if tc.Validate != nil {
		tc.Validate(t, testCtx)
	}
}

// JSONResponse decodes the recorded response body as a generic JSON object.
func JSONResponse(t *testing.T, tc *TestContext) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "response is not valid JSON")
	return result
}

// JSONResponseAs decodes the recorded response body into T.
func JSONResponseAs[T any](t *testing.T, tc *TestContext) T {
	t.Helper()

	var result T
	require.NoError(t, json.Unmarshal(tc.ResponseBody(), &result), "response is not valid JSON")
	return result
}

// AssertSuccessResponse checks the standard API envelope for a successful
// call and returns its data payload for further assertions.
func AssertSuccessResponse(t *testing.T, tc *TestContext) map[string]interface{} {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, true, resp["success"], "envelope should report success")
	assert.Nil(t, resp["error"], "successful envelope must carry no error")

	data, _ := resp["data"].(map[string]interface{})
	return data
}

// AssertErrorResponse checks the standard API envelope for a failed call
// and that it carries the given error code.
func AssertErrorResponse(t *testing.T, tc *TestContext, expectedCode string) {
	t.Helper()

	resp := JSONResponse(t, tc)
	assert.Equal(t, false, resp["success"], "envelope should report failure")

	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "failed envelope must carry an error object")
	assert.Equal(t, expectedCode, errObj["code"])
}

// ToJSONReader marshals v into a reader usable as a request body.
func ToJSONReader(t *testing.T, v interface{}) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err, "marshal request body")
	return bytes.NewReader(data)
}
