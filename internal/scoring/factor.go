// internal/scoring/factor.go
package scoring

// Factor computes a 0-100 sub-score for one dimension of student/university
// fit. Implementations must be side-effect-free and must never fail on
// missing optional data; absence degrades to a documented neutral value.
type Factor interface {
	// Name is the stable identifier used as a breakdown key.
	Name() string
	// BaseWeight is the factor's weight in (0,1] before normalization.
	BaseWeight() float64
	// Applicable reports whether this factor participates in scoring for
	// the given student. Factors returning false are excluded and their
	// weight is redistributed.
	Applicable(ctx *StudentContext) bool
	// Calculate returns the factor's score in [0,100].
	Calculate(ctx *StudentContext, u *UniversityData) float64
}

// Breakdown key names. These are load-bearing: WeightsUsed and the flat
// output map are keyed by them.
const (
	FactorAcademicFit    = "academic_fit"
	FactorMajorStrength  = "major_strength"
	FactorFinancialFit   = "financial_fit"
	FactorLocationFit    = "location_fit"
	FactorSpecialFactors = "special_factors"
)

// defaultFactors returns the closed set of five production factors. Only
// special factors are conditionally applicable.
func defaultFactors(cfg Config) []Factor {
	return []Factor{
		&AcademicFitFactor{Weight: cfg.AcademicWeight},
		&MajorStrengthFactor{Weight: cfg.MajorWeight},
		&FinancialFitFactor{Weight: cfg.FinancialWeight, Config: cfg},
		&LocationFitFactor{Weight: cfg.LocationWeight},
		&SpecialFactorsFactor{Weight: cfg.SpecialWeight},
	}
}

// applicableFactors filters the factor set for one student. First pass of the
// two-pass weight redistribution.
func applicableFactors(factors []Factor, ctx *StudentContext) []Factor {
	out := make([]Factor, 0, len(factors))
	for _, f := range factors {
		if f.Applicable(ctx) {
			out = append(out, f)
		}
	}
	return out
}

// normalizeWeights rescales the applicable factors' base weights to sum to
// exactly 1.0. Second pass of the redistribution; keeps scores from deflating
// for students without legacy/athlete status.
func normalizeWeights(factors []Factor) map[string]float64 {
	weights := make(map[string]float64, len(factors))
	if len(factors) == 0 {
		return weights
	}

	total := 0.0
	for _, f := range factors {
		total += f.BaseWeight()
	}
	if total == 0 {
		equal := 1.0 / float64(len(factors))
		for _, f := range factors {
			weights[f.Name()] = equal
		}
		return weights
	}

	for _, f := range factors {
		weights[f.Name()] = f.BaseWeight() / total
	}
	return weights
}
