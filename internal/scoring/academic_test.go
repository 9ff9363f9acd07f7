// internal/scoring/academic_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcademicFitFactor_GPAOnly(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}

	tests := []struct {
		name     string
		gpa      float64
		median   float64
		expected float64
	}{
		{"at median reads competitive", 3.8, 3.8, 82.0},
		{"one sigma above", 3.92, 3.8, 92.0},
		{"well above clamps at 98", 4.0, 3.0, 98.0},
		{"well below clamps at 45", 2.5, 3.9, 45.0},
		{"quarter sigma below", 3.77, 3.8, 79.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.GPA = tt.gpa
			u := testUniversity("Test U")
			u.MedianGPA = fptr(tt.median)

			assert.InDelta(t, tt.expected, factor.Calculate(ctx, u), 0.001)
		})
	}
}

func TestAcademicFitFactor_MonotonicInGPA(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}
	u := testUniversity("Test U")
	u.MedianGPA = fptr(3.7)

	prev := -1.0
	for gpa := 0.0; gpa <= 4.0; gpa += 0.05 {
		ctx := testContext()
		ctx.GPA = gpa
		score := factor.Calculate(ctx, u)
		assert.GreaterOrEqual(t, score, prev, "score decreased at gpa %.2f", gpa)
		prev = score
	}
}

func TestAcademicFitFactor_TestScoreOnly(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}

	// Band 1400-1560, midpoint 1480.
	tests := []struct {
		name     string
		sat      int
		expected float64
	}{
		{"above 75th", 1600, 90.5},
		{"at 75th", 1560, 88.0},
		{"between mid and 75th", 1520, 84.0},
		{"at midpoint", 1480, 80.0},
		{"between 25th and mid", 1440, 77.5},
		{"at 25th", 1400, 75.0},
		{"one step below 25th", 1320, 58.0},
		{"far below floors at 40", 800, 40.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.SATScore = iptr(tt.sat)
			u := testUniversity("Test U")
			u.SAT25th = iptr(1400)
			u.SAT75th = iptr(1560)

			assert.InDelta(t, tt.expected, factor.Calculate(ctx, u), 0.001)
		})
	}
}

func TestAcademicFitFactor_CombinesTestAndGPA(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}

	ctx := testContext()
	ctx.GPA = 3.8
	ctx.SATScore = iptr(1600)
	u := testUniversity("Test U")
	u.MedianGPA = fptr(3.8)
	u.SAT25th = iptr(1400)
	u.SAT75th = iptr(1560)

	// Test 90.5 at 60%, GPA 82 at 40%.
	assert.InDelta(t, 87.1, factor.Calculate(ctx, u), 0.001)
}

func TestAcademicFitFactor_ACTConversion(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}

	ctx := testContext()
	ctx.ACTScore = iptr(30) // converts to 1390
	u := testUniversity("Test U")
	u.SAT25th = iptr(1300)
	u.SAT75th = iptr(1500)

	// 1390 is between 25th and midpoint 1400: 75 + 5*(90/100).
	assert.InDelta(t, 79.5, factor.Calculate(ctx, u), 0.001)

	// Off-table ACT falls back to the linear formula.
	assert.Equal(t, 400+12*40, actToSAT(12))
}

func TestAcademicFitFactor_NoDataIsNeutral(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}

	score := factor.Calculate(testContext(), testUniversity("Unknown U"))
	assert.Equal(t, 75.0, score)
}

func TestAcademicFitFactor_AtMedianNoTestsInvariant(t *testing.T) {
	factor := &AcademicFitFactor{Weight: 0.30}

	for _, median := range []float64{2.5, 3.0, 3.5, 3.9, 4.0} {
		ctx := testContext()
		ctx.GPA = median
		u := testUniversity("Test U")
		u.MedianGPA = fptr(median)

		score := factor.Calculate(ctx, u)
		assert.GreaterOrEqual(t, score, 75.0)
		assert.LessOrEqual(t, score, 85.0)
	}
}
