// internal/scoring/scorer.go
package scoring

import "sort"

// MatchScorer aggregates the factor scores into a single weighted match score
// per university. It is a pure computation: no I/O, no shared state, safe to
// use concurrently across requests.
type MatchScorer struct {
	cfg        Config
	factors    []Factor
	classifier *LabelClassifier
}

// NewMatchScorer builds a scorer with the default five-factor set.
func NewMatchScorer(cfg Config) *MatchScorer {
	return NewMatchScorerWithFactors(cfg, defaultFactors(cfg))
}

// NewMatchScorerWithFactors builds a scorer with a custom factor list. Used
// for tuning experiments; production runs use the default set.
func NewMatchScorerWithFactors(cfg Config, factors []Factor) *MatchScorer {
	return &MatchScorer{
		cfg:        cfg,
		factors:    factors,
		classifier: NewLabelClassifier(cfg),
	}
}

// ScoreUniversity computes the weighted match score, breakdown, admission
// probability and label for a single university.
func (m *MatchScorer) ScoreUniversity(ctx *StudentContext, u *UniversityData) ScoredUniversity {
	applicable := applicableFactors(m.factors, ctx)
	weights := normalizeWeights(applicable)

	scores := make(map[string]float64, len(applicable))
	total := 0.0
	for _, f := range applicable {
		s := f.Calculate(ctx, u)
		scores[f.Name()] = s
		total += s * weights[f.Name()]
	}

	breakdown := ScoreBreakdown{
		AcademicFit:    scores[FactorAcademicFit],
		MajorStrength:  scores[FactorMajorStrength],
		FinancialFit:   scores[FactorFinancialFit],
		LocationFit:    scores[FactorLocationFit],
		SpecialFactors: scores[FactorSpecialFactors],
		WeightsUsed:    weights,
	}

	probability := m.classifier.AdmissionProbability(ctx, u)
	label := m.classifier.Classify(ctx, u)

	scored := ScoredUniversity{
		University:           *u,
		MatchScore:           total,
		AdmissionProbability: probability,
		Breakdown:            breakdown,
		Label:                label,
	}
	scored.Reasoning = buildReasoning(&scored)
	scored.FinancialAidSummary = buildFinancialAidSummary(ctx, u)
	return scored
}

// ScoreUniversities scores every candidate and sorts descending by match
// score. The sort is stable, so equal scores keep their input order.
func (m *MatchScorer) ScoreUniversities(ctx *StudentContext, universities []UniversityData) []ScoredUniversity {
	scored := make([]ScoredUniversity, 0, len(universities))
	for i := range universities {
		scored = append(scored, m.ScoreUniversity(ctx, &universities[i]))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	return scored
}
