// internal/scoring/financial.go
package scoring

import (
	"math"
	"strings"
)

// FinancialFitFactor estimates affordability. Domestic and international
// students get entirely different policies: in-state tuition and aid
// generosity for domestic, need-blind/meets-full-need policy for
// international.
type FinancialFitFactor struct {
	Weight float64
	Config Config
}

func (f *FinancialFitFactor) Name() string        { return FactorFinancialFit }
func (f *FinancialFitFactor) BaseWeight() float64 { return f.Weight }

func (f *FinancialFitFactor) Applicable(_ *StudentContext) bool { return true }

func (f *FinancialFitFactor) Calculate(ctx *StudentContext, u *UniversityData) float64 {
	if ctx.IsDomestic {
		return f.domestic(ctx, u)
	}
	return f.international(ctx, u)
}

// domestic averages the applicable components: in-state advantage (weighted
// 1.5x), aid generosity by income tier, and a flat first-gen entry. Missing
// components are dropped from the average, not zeroed.
func (f *FinancialFitFactor) domestic(ctx *StudentContext, u *UniversityData) float64 {
	var scores []float64

	if inState, ok := inStateAdvantage(ctx, u); ok {
		scores = append(scores, inState*1.5)
	}

	scores = append(scores, aidGenerosity(ctx, u))

	if ctx.IsFirstGen {
		scores = append(scores, 75.0)
	}

	if len(scores) == 0 {
		return 60.0
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return math.Min(100, sum/float64(len(scores)))
}

// international starts from a policy base keyed by income tier and need-blind
// status, then adds aid-package bonuses capped at 100.
func (f *FinancialFitFactor) international(ctx *StudentContext, u *UniversityData) float64 {
	var base float64
	if ctx.IncomeTier == IncomeTierLow || ctx.IncomeTier == IncomeTierMedium {
		switch {
		case u.NeedBlindInternational:
			base = 95.0
		case u.MeetsFullNeed:
			base = f.Config.IntlMeetsNeedBase
		default:
			base = f.Config.IntlLimitedAidBase
		}
	} else {
		// High income: merit focus, need-blind policy matters less.
		base = 70.0
	}

	if u.AvgAidPackage != nil {
		if *u.AvgAidPackage >= 50000 {
			base = math.Min(100, base+15)
		} else if *u.AvgAidPackage >= 30000 {
			base = math.Min(100, base+8)
		}
	}

	return base
}

// inStateAdvantage scores the tuition benefit of attending in-state. Returns
// false when either state is unknown.
func inStateAdvantage(ctx *StudentContext, u *UniversityData) (float64, bool) {
	if ctx.StateOfResidence == "" || u.State == "" {
		return 0, false
	}

	if !strings.EqualFold(ctx.StateOfResidence, u.State) {
		return 60.0, true
	}

	if u.TuitionInState != nil && u.TuitionOutOfState != nil && *u.TuitionOutOfState > 0 {
		savings := 1 - *u.TuitionInState / *u.TuitionOutOfState
		return math.Min(100, 70+savings*60), true
	}
	return 85.0, true
}

// aidGenerosity scores the university's aid policy against the student's
// income tier.
func aidGenerosity(ctx *StudentContext, u *UniversityData) float64 {
	switch ctx.IncomeTier {
	case IncomeTierLow:
		if u.MeetsFullNeed {
			return 95.0
		}
		if u.AvgAidPackage != nil && *u.AvgAidPackage >= 40000 {
			return 80.0
		}
		return 55.0
	case IncomeTierMedium:
		if u.MeetsFullNeed {
			return 85.0
		}
		if u.AvgAidPackage != nil && *u.AvgAidPackage >= 25000 {
			return 70.0
		}
		return 55.0
	default:
		return 65.0
	}
}
