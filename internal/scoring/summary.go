// internal/scoring/summary.go
package scoring

import "fmt"

// buildReasoning composes a short deterministic explanation from the
// breakdown: the strongest factor plus the label. The presentation layer may
// rewrite this; the engine's version exists so output is useful without one.
func buildReasoning(s *ScoredUniversity) string {
	name, score := strongestFactor(&s.Breakdown)
	if name == "" {
		return fmt.Sprintf("%s school with a %.0f%% overall match.", s.Label, s.MatchScore)
	}
	return fmt.Sprintf("%s school with a %.0f%% overall match; strongest dimension is %s (%.0f).",
		s.Label, s.MatchScore, factorDisplayName(name), score)
}

func strongestFactor(b *ScoreBreakdown) (string, float64) {
	best := ""
	bestScore := 0.0
	for name, weight := range b.WeightsUsed {
		if weight == 0 {
			continue
		}
		score := factorScore(b, name)
		if score > bestScore {
			best = name
			bestScore = score
		}
	}
	return best, bestScore
}

func factorScore(b *ScoreBreakdown, name string) float64 {
	switch name {
	case FactorAcademicFit:
		return b.AcademicFit
	case FactorMajorStrength:
		return b.MajorStrength
	case FactorFinancialFit:
		return b.FinancialFit
	case FactorLocationFit:
		return b.LocationFit
	case FactorSpecialFactors:
		return b.SpecialFactors
	default:
		return 0
	}
}

func factorDisplayName(name string) string {
	switch name {
	case FactorAcademicFit:
		return "academic fit"
	case FactorMajorStrength:
		return "program strength"
	case FactorFinancialFit:
		return "financial fit"
	case FactorLocationFit:
		return "location fit"
	case FactorSpecialFactors:
		return "special circumstances"
	default:
		return name
	}
}

// buildFinancialAidSummary describes the university's aid posture for this
// student in one sentence.
func buildFinancialAidSummary(ctx *StudentContext, u *UniversityData) string {
	if !ctx.IsDomestic {
		switch {
		case u.NeedBlindInternational:
			return "Need-blind for international applicants."
		case u.MeetsFullNeed:
			return "Need-aware for international applicants but meets full demonstrated need."
		case u.AvgAidPackage != nil:
			return fmt.Sprintf("Average aid package around $%.0f; international aid is limited.", *u.AvgAidPackage)
		default:
			return "Limited financial aid for international applicants."
		}
	}

	switch {
	case u.MeetsFullNeed:
		return "Meets full demonstrated need for domestic students."
	case u.AvgAidPackage != nil:
		return fmt.Sprintf("Average aid package around $%.0f.", *u.AvgAidPackage)
	default:
		return "No aid statistics on record."
	}
}
