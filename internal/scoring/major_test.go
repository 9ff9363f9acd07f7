// internal/scoring/major_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMajorStrengthFactor_NoMajorIsDisqualifying(t *testing.T) {
	factor := &MajorStrengthFactor{Weight: 0.20}

	u := testUniversity("Test U")
	u.HasMajor = false
	u.MajorRanking = iptr(1)
	u.VectorSimilarity = 0.95

	// Ranking and similarity data are irrelevant when the major is not offered.
	assert.Equal(t, 0.0, factor.Calculate(testContext(), u))
}

func TestMajorStrengthFactor_RankingSteps(t *testing.T) {
	factor := &MajorStrengthFactor{Weight: 0.20}

	tests := []struct {
		rank     int
		expected float64
	}{
		{1, 100.0},
		{5, 92.0},
		{6, 89.0},
		{10, 85.0},
		{11, 84.5},
		{25, 77.5},
		{26, 76.6},
		{50, 67.0},
		{51, 66.7},
		{100, 52.0},
		{150, 47.0},
		{300, 40.0}, // floors at 40
	}

	for _, tt := range tests {
		u := testUniversity("Test U")
		u.MajorRanking = iptr(tt.rank)
		u.StudentMajor = "Computer Science"

		assert.InDelta(t, tt.expected, factor.Calculate(testContext(), u), 0.001, "rank %d", tt.rank)
	}
}

func TestMajorStrengthFactor_MismatchedMajorDataIsLowConfidence(t *testing.T) {
	factor := &MajorStrengthFactor{Weight: 0.20}

	u := testUniversity("Test U")
	u.MajorRanking = iptr(1)
	u.StudentMajor = "Art History"

	// Top-ranked, but for a different program than the student wants.
	assert.Equal(t, 60.0, factor.Calculate(testContext(), u))
}

func TestMajorStrengthFactor_AbbreviationMatch(t *testing.T) {
	factor := &MajorStrengthFactor{Weight: 0.20}

	u := testUniversity("Test U")
	u.MajorRanking = iptr(3)
	u.StudentMajor = "CS"

	// "Computer Science" matches "CS" through the abbreviation dictionary.
	assert.Equal(t, 96.0, factor.Calculate(testContext(), u))
}

func TestMajorStrengthFactor_SimilarityFallback(t *testing.T) {
	factor := &MajorStrengthFactor{Weight: 0.20}

	tests := []struct {
		similarity float64
		expected   float64
	}{
		{0.95, 85.0},
		{0.85, 75.0},
		{0.75, 65.0},
		{0.65, 55.0},
		{0.3, 45.0},
	}

	for _, tt := range tests {
		u := testUniversity("Test U")
		u.VectorSimilarity = tt.similarity

		assert.Equal(t, tt.expected, factor.Calculate(testContext(), u), "similarity %.2f", tt.similarity)
	}
}

func TestMajorStrengthFactor_NoDataIsNeutral(t *testing.T) {
	factor := &MajorStrengthFactor{Weight: 0.20}

	assert.Equal(t, 65.0, factor.Calculate(testContext(), testUniversity("Test U")))
}
