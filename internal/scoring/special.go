// internal/scoring/special.go
package scoring

import "strings"

// SpecialFactorsFactor covers legacy and athlete advantages. This is the only
// factor that can be excluded from scoring entirely; when excluded its weight
// is redistributed to the core factors.
type SpecialFactorsFactor struct {
	Weight float64
}

func (f *SpecialFactorsFactor) Name() string        { return FactorSpecialFactors }
func (f *SpecialFactorsFactor) BaseWeight() float64 { return f.Weight }

func (f *SpecialFactorsFactor) Applicable(ctx *StudentContext) bool {
	return ctx.HasLegacy || ctx.IsAthlete
}

// Calculate returns the best single advantage. Legacy and athlete boosts do
// not stack.
func (f *SpecialFactorsFactor) Calculate(ctx *StudentContext, u *UniversityData) float64 {
	best := 0.0

	if ctx.HasLegacy {
		best = legacyScore(ctx, u)
	}
	if ctx.IsAthlete && 80.0 > best {
		best = 80.0
	}
	return best
}

// legacyScore: 95 when the student has legacy at this specific university,
// 70 with legacy listed elsewhere, 65 when the flag is set but no schools
// are listed.
func legacyScore(ctx *StudentContext, u *UniversityData) float64 {
	if len(ctx.LegacyUniversities) == 0 {
		return 65.0
	}
	if hasLegacyAt(ctx, u) {
		return 95.0
	}
	return 70.0
}

// hasLegacyAt matches the university against the legacy list by substring in
// either direction, case-insensitive.
func hasLegacyAt(ctx *StudentContext, u *UniversityData) bool {
	uniName := strings.ToLower(u.Name)
	for _, legacy := range ctx.LegacyUniversities {
		l := strings.ToLower(legacy)
		if l == "" {
			continue
		}
		if strings.Contains(uniName, l) || strings.Contains(l, uniName) {
			return true
		}
	}
	return false
}
