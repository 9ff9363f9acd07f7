// internal/workers/recommendation/score-universities/handler_test.go
package scoreuniversities

import (
	"context"
	"encoding/json"
	"testing"

	"college-match-workers/internal/common/logger"
	"college-match-workers/internal/scoring"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Test Helper Functions
// ==========================

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func createTestProfile() scoring.StudentContext {
	return scoring.StudentContext{
		IsDomestic:       true,
		StateOfResidence: "CA",
		GPA:              3.7,
		SATScore:         iptr(1400),
		IntendedMajor:    "Computer Science",
		IncomeTier:       scoring.IncomeTierMedium,
	}
}

func createTestUniversity(name string) scoring.UniversityData {
	return scoring.UniversityData{
		Name:           name,
		State:          "CA",
		AcceptanceRate: fptr(0.45),
		MedianGPA:      fptr(3.5),
		SAT25th:        iptr(1200),
		SAT75th:        iptr(1400),
		HasMajor:       true,
	}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), scoring.NewMatchScorer(scoring.DefaultConfig()), newTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_ScoresAndSorts(t *testing.T) {
	handler := newTestHandler(t)

	profile := createTestProfile()

	bestFit := createTestUniversity("Best Fit U")
	middle := createTestUniversity("Middle U")
	middle.MedianGPA = fptr(3.8)
	worstFit := createTestUniversity("Worst Fit U")
	worstFit.MedianGPA = fptr(3.95)

	input := &Input{
		StudentProfile: profile,
		Universities:   []scoring.UniversityData{worstFit, bestFit, middle},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.NotNil(t, output)
	assert.Equal(t, 3, output.ScoredCount)
	assert.Len(t, output.ScoredUniversities, 3)

	// Sorted by match score descending; the student clears Best Fit's
	// median by the widest margin.
	assert.Equal(t, "Best Fit U", output.ScoredUniversities[0]["name"])
	assert.Equal(t, "Middle U", output.ScoredUniversities[1]["name"])
	assert.Equal(t, "Worst Fit U", output.ScoredUniversities[2]["name"])
}

func TestHandler_Execute_PopulatesResultFields(t *testing.T) {
	handler := newTestHandler(t)

	input := &Input{
		StudentProfile: createTestProfile(),
		Universities:   []scoring.UniversityData{createTestUniversity("Test University")},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	result := output.ScoredUniversities[0]

	score := result["matchScore"].(float64)
	prob := result["admissionProbability"].(float64)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
	assert.GreaterOrEqual(t, prob, 5.0)
	assert.LessOrEqual(t, prob, 95.0)
	assert.Contains(t, []string{"Reach", "Target", "Safety"}, result["label"])
	assert.NotEmpty(t, result["reasoning"])

	breakdown := result["breakdown"].(map[string]float64)
	assert.Contains(t, breakdown, "academicFit")
	assert.Contains(t, breakdown, "majorStrength")
}

func TestHandler_Execute_NoStatsUniversityScoresNeutral(t *testing.T) {
	handler := newTestHandler(t)

	input := &Input{
		StudentProfile: createTestProfile(),
		Universities: []scoring.UniversityData{
			{Name: "Unknown College", HasMajor: true},
		},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	// All factors fall back to their neutral values:
	// 75*0.375 + 65*0.25 + 55*0.25 + 70*0.125 = 66.875, rounded to 66.9.
	assert.Equal(t, 66.9, output.ScoredUniversities[0]["matchScore"])
}

func TestHandler_Execute_PayloadOmittingHasMajor(t *testing.T) {
	handler := newTestHandler(t)

	// Job variables as the orchestration layer sends them: major availability
	// is rarely stated and must not zero out the major strength factor.
	payload := `{
		"studentProfile": {"isDomestic": true, "gpa": 3.7, "intendedMajor": "Computer Science", "incomeTier": "MEDIUM"},
		"universities": [{"name": "Ranked U", "majorRanking": 3, "studentMajor": "Computer Science"}]
	}`

	var input Input
	assert.NoError(t, json.Unmarshal([]byte(payload), &input))

	output, err := handler.Execute(context.Background(), &input)

	assert.NoError(t, err)
	breakdown := output.ScoredUniversities[0]["breakdown"].(map[string]float64)
	// Rank 3 maps to 96; an omitted hasMajor must not disqualify the record.
	assert.Greater(t, breakdown["majorStrength"], 90.0)
}

func TestHandler_Execute_EmptyUniversityList(t *testing.T) {
	handler := newTestHandler(t)

	input := &Input{
		StudentProfile: createTestProfile(),
		Universities:   nil,
	}

	output, err := handler.Execute(context.Background(), input)

	assert.NoError(t, err)
	assert.Equal(t, 0, output.ScoredCount)
	assert.Empty(t, output.ScoredUniversities)
}

// ==========================
// Validation Tests
// ==========================

func TestHandler_Execute_InvalidProfile(t *testing.T) {
	handler := newTestHandler(t)

	profile := createTestProfile()
	profile.GPA = 4.5

	input := &Input{
		StudentProfile: profile,
		Universities:   []scoring.UniversityData{createTestUniversity("Test University")},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrProfileValidationFailed)
	assert.Nil(t, output)
}

func TestHandler_Execute_InvalidUniversityRecord(t *testing.T) {
	handler := newTestHandler(t)

	bad := createTestUniversity("Bad Data U")
	bad.AcceptanceRate = fptr(1.4)

	input := &Input{
		StudentProfile: createTestProfile(),
		Universities:   []scoring.UniversityData{bad},
	}

	output, err := handler.Execute(context.Background(), input)

	assert.ErrorIs(t, err, ErrUniversityDataInvalid)
	assert.Nil(t, output)
	assert.Contains(t, err.Error(), "Bad Data U")
}

func TestHandler_Execute_NilInput(t *testing.T) {
	handler := newTestHandler(t)

	output, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
	assert.Nil(t, output)
}

// ==========================
// Error Mapping Tests
// ==========================

func TestHandler_MapErrorToCode(t *testing.T) {
	handler := newTestHandler(t)

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"profile validation", ErrProfileValidationFailed, "PROFILE_VALIDATION_FAILED"},
		{"university data", ErrUniversityDataInvalid, "UNIVERSITY_DATA_INVALID"},
		{"unknown", context.DeadlineExceeded, "SCORING_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, handler.mapErrorToCode(tt.err))
		})
	}
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkHandler_Execute(b *testing.B) {
	handler := NewHandler(LoadConfig(), scoring.NewMatchScorer(scoring.DefaultConfig()), logger.NewNoOpLogger())

	universities := make([]scoring.UniversityData, 0, 20)
	for i := 0; i < 20; i++ {
		universities = append(universities, createTestUniversity("Bench U"))
	}
	input := &Input{
		StudentProfile: createTestProfile(),
		Universities:   universities,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
