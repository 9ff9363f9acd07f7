// internal/scoring/financial_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newFinancialFactor() *FinancialFitFactor {
	return &FinancialFitFactor{Weight: 0.20, Config: DefaultConfig()}
}

func TestFinancialFitFactor_DomesticInState(t *testing.T) {
	factor := newFinancialFactor()

	ctx := testContext()
	ctx.StateOfResidence = "CA"
	ctx.IncomeTier = IncomeTierMedium

	u := testUniversity("State U")
	u.State = "CA"
	u.TuitionInState = fptr(14000)
	u.TuitionOutOfState = fptr(44000)
	u.MeetsFullNeed = true

	// In-state advantage saturates at 100, weighted 1.5x; aid generosity 85.
	// (150 + 85) / 2 caps at 100.
	assert.InDelta(t, 100.0, factor.Calculate(ctx, u), 0.001)
}

func TestFinancialFitFactor_DomesticOutOfState(t *testing.T) {
	factor := newFinancialFactor()

	ctx := testContext()
	ctx.StateOfResidence = "TX"
	ctx.IncomeTier = IncomeTierLow

	u := testUniversity("State U")
	u.State = "CA"

	// Out-of-state 60 weighted 1.5x plus low-income aid 55, averaged.
	assert.InDelta(t, 72.5, factor.Calculate(ctx, u), 0.001)
}

func TestFinancialFitFactor_DomesticInStateNoTuitionData(t *testing.T) {
	factor := newFinancialFactor()

	ctx := testContext()
	ctx.StateOfResidence = "wa"
	ctx.IncomeTier = IncomeTierHigh

	u := testUniversity("State U")
	u.State = "WA" // case-insensitive state match

	// In-state without tuition figures assumes 85; high income aid 65.
	assert.InDelta(t, (85*1.5+65)/2, factor.Calculate(ctx, u), 0.001)
}

func TestFinancialFitFactor_DomesticFirstGen(t *testing.T) {
	factor := newFinancialFactor()

	ctx := testContext()
	ctx.IsFirstGen = true
	ctx.IncomeTier = IncomeTierMedium

	u := testUniversity("Test U")
	u.AvgAidPackage = fptr(30000)

	// No state data drops the in-state component; aid 70 plus first-gen 75.
	assert.InDelta(t, 72.5, factor.Calculate(ctx, u), 0.001)
}

func TestFinancialFitFactor_AidGenerosityTiers(t *testing.T) {
	tests := []struct {
		name     string
		tier     string
		fullNeed bool
		avgAid   *float64
		expected float64
	}{
		{"low meets full need", IncomeTierLow, true, nil, 95.0},
		{"low with large aid", IncomeTierLow, false, fptr(45000), 80.0},
		{"low with small aid", IncomeTierLow, false, fptr(20000), 55.0},
		{"medium meets full need", IncomeTierMedium, true, nil, 85.0},
		{"medium with aid", IncomeTierMedium, false, fptr(26000), 70.0},
		{"medium without aid", IncomeTierMedium, false, nil, 55.0},
		{"high is flat", IncomeTierHigh, true, fptr(60000), 65.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.IncomeTier = tt.tier

			u := testUniversity("Test U")
			u.MeetsFullNeed = tt.fullNeed
			u.AvgAidPackage = tt.avgAid

			assert.Equal(t, tt.expected, aidGenerosity(ctx, u))
		})
	}
}

func TestFinancialFitFactor_International(t *testing.T) {
	tests := []struct {
		name      string
		tier      string
		needBlind bool
		fullNeed  bool
		avgAid    *float64
		expected  float64
	}{
		{"low income need-blind", IncomeTierLow, true, false, nil, 95.0},
		{"medium income meets need", IncomeTierMedium, false, true, nil, 80.0},
		{"medium income limited aid", IncomeTierMedium, false, false, nil, 50.0},
		{"high income merit focus", IncomeTierHigh, false, false, nil, 70.0},
		{"large aid bonus caps at 100", IncomeTierLow, true, false, fptr(52000), 100.0},
		{"moderate aid bonus", IncomeTierMedium, false, true, fptr(35000), 88.0},
	}

	factor := newFinancialFactor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext()
			ctx.IsDomestic = false
			ctx.IncomeTier = tt.tier

			u := testUniversity("Test U")
			u.NeedBlindInternational = tt.needBlind
			u.MeetsFullNeed = tt.fullNeed
			u.AvgAidPackage = tt.avgAid

			assert.InDelta(t, tt.expected, factor.Calculate(ctx, u), 0.001)
		})
	}
}
