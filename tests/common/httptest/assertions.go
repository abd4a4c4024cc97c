//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var body errorBody
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

// AssertFieldErrors checks the per-field detail of a 422 response, in order.
func AssertFieldErrors(t *testing.T, w *httptest.ResponseRecorder, expectedFields ...string) {
	t.Helper()

	var body errorBody
	if !assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)) {
		return
	}

	var details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	if !assert.NoError(t, json.Unmarshal(body.Detail, &details), "detail is not a field error list: %s", string(body.Detail)) {
		return
	}

	fields := make([]string, 0, len(details))
	for _, d := range details {
		fields = append(fields, d.Field)
		assert.NotEmpty(t, d.Message, "field %s has no message", d.Field)
	}
	assert.Equal(t, expectedFields, fields)
}
