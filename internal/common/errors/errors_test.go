// internal/common/errors/errors_test.go
package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Logger
// ==========================

type testLogger struct {
	errorCalls []string
}

func (l *testLogger) Error(msg string, fields map[string]interface{}) {
	l.errorCalls = append(l.errorCalls, msg)
}

// ==========================
// Constructor Tests
// ==========================

func TestConstructors_SetRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"profile validation", NewProfileValidationFailedError("gpa out of range"), ErrCodeProfileValidationFailed, false},
		{"university data", NewUniversityDataInvalidError("Test U", "bad rate"), ErrCodeUniversityDataInvalid, false},
		{"no candidates", NewNoCandidatesAvailableError("empty pool"), ErrCodeNoCandidatesAvailable, false},
		{"query execution", NewQueryExecutionFailedError("stats", fmt.Errorf("boom")), ErrCodeQueryExecutionFailed, true},
		{"query timeout", NewQueryTimeoutError("stats"), ErrCodeQueryTimeout, true},
		{"college not found", NewCollegeNotFoundError("Unknown U"), ErrCodeCollegeNotFound, false},
		{"search query", NewSearchQueryFailedError("colleges", fmt.Errorf("boom")), ErrCodeSearchQueryFailed, true},
		{"scorecard timeout", NewScorecardAPITimeoutError(), ErrCodeScorecardAPITimeout, true},
		{"notification", NewNotificationSendFailedError("email", fmt.Errorf("ses down")), ErrCodeNotificationSendFailed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestStandardError_Error(t *testing.T) {
	err := NewCollegeNotFoundError("Unknown U")

	assert.Contains(t, err.Error(), "COLLEGE_NOT_FOUND")
	assert.Contains(t, err.Error(), "College not found")
}

// ==========================
// Retry Policy Tests
// ==========================

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeQueryExecutionFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeNotificationSendFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeQueryTimeout))
	assert.Equal(t, 2, GetRetryCount(ErrCodeSearchTimeout))
	assert.Equal(t, 0, GetRetryCount(ErrCodeProfileValidationFailed))
	assert.Equal(t, 0, GetRetryCount(ErrCodeCollegeNotFound))
}

func TestIsRetryableErrorCode(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeScorecardAPIFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeNoCandidatesAvailable))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeProfileValidationFailed))
	assert.Equal(t, "SCORING", GetErrorCategory(ErrCodeNoCandidatesAvailable))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeCollegeNotFound))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchTimeout))
	assert.Equal(t, "EXTERNAL_API", GetErrorCategory(ErrCodeScorecardAPIFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}

// ==========================
// BPMN Conversion Tests
// ==========================

func TestConvertToBPMNError_RetryableTechnicalError(t *testing.T) {
	stdErr := NewQueryExecutionFailedError("stats", fmt.Errorf("connection reset"))

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "QUERY_EXECUTION_FAILED", bpmnErr.Code)
	assert.Equal(t, 3, bpmnErr.Retries)
	assert.True(t, bpmnErr.Retryable)
	assert.Equal(t, string(stdErr.Code), bpmnErr.ErrorVariables["originalErrorCode"])
}

func TestConvertToBPMNError_BusinessErrorNeverRetries(t *testing.T) {
	stdErr := NewNoCandidatesAvailableError("no universities scored above threshold")

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "NO_CANDIDATES_AVAILABLE", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	assert.False(t, bpmnErr.Retryable)
}

func TestConvertToBPMNError_UnmappedCodeFallsThrough(t *testing.T) {
	stdErr := &StandardError{Code: "CUSTOM_CODE", Message: "custom"}

	bpmnErr := ConvertToBPMNError(stdErr)

	assert.Equal(t, "CUSTOM_CODE", bpmnErr.Code)
}

func TestBPMNError_ToErrorVariables(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewSearchTimeoutError("colleges"))

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "SEARCH_TIMEOUT", vars["errorCode"])
	assert.Equal(t, true, vars["retryable"])
	assert.Contains(t, vars, "errorMessage")
	assert.Contains(t, vars, "originalErrorCode")
}

// ==========================
// Handler Tests
// ==========================

func TestErrorHandler_NormalizeError(t *testing.T) {
	h := NewErrorHandler(&testLogger{})

	t.Run("standard error passes through", func(t *testing.T) {
		stdErr := NewCollegeNotFoundError("Unknown U")
		assert.Same(t, stdErr, h.normalizeError(stdErr))
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		got := h.normalizeError(fmt.Errorf("something broke"))
		require.NotNil(t, got)
		assert.Equal(t, ErrorCode("INTERNAL_ERROR"), got.Code)
		assert.Equal(t, "something broke", got.Details)
		assert.False(t, got.Retryable)
	})
}

func TestMarshalErrorVariables(t *testing.T) {
	bpmnErr := ConvertToBPMNError(NewQueryTimeoutError("stats"))

	payload := marshalErrorVariables(bpmnErr)

	assert.Contains(t, payload, `"errorCode":"QUERY_TIMEOUT"`)
}
