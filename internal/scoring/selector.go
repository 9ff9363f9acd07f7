// internal/scoring/selector.go
package scoring

import "sort"

var labelOrder = map[AdmissionLabel]int{
	LabelReach:  0,
	LabelTarget: 1,
	LabelSafety: 2,
}

// SelectRecommendations scores all candidates and assembles the final list
// honoring the requested label distribution. Zero candidates yields an empty
// list, never an error.
//
// Candidates are partitioned by label before threshold filtering so the
// safety guarantee holds even when every safety school misses the threshold:
// the product never under-supplies safety options while any exist.
func (m *MatchScorer) SelectRecommendations(ctx *StudentContext, universities []UniversityData, counts *LabelCounts) []ScoredUniversity {
	requested := m.cfg.DefaultCounts
	if counts != nil {
		requested = *counts
	}

	allScored := m.ScoreUniversities(ctx, universities)

	var allReaches, allTargets, allSafeties []ScoredUniversity
	for _, s := range allScored {
		switch s.Label {
		case LabelReach:
			allReaches = append(allReaches, s)
		case LabelTarget:
			allTargets = append(allTargets, s)
		case LabelSafety:
			allSafeties = append(allSafeties, s)
		}
	}

	viableReaches := aboveThreshold(allReaches, m.cfg.MinMatchThreshold)
	viableTargets := aboveThreshold(allTargets, m.cfg.MinMatchThreshold)
	viableSafeties := aboveThreshold(allSafeties, m.cfg.SafetyMatchThreshold)

	// Backfill safeties from the unfiltered pool when too few clear the
	// bar; the lists are already score-descending.
	if len(viableSafeties) < requested.Safety && len(allSafeties) > len(viableSafeties) {
		viableSafeties = allSafeties
		if len(viableSafeties) > requested.Safety {
			viableSafeties = viableSafeties[:requested.Safety]
		}
	}

	recommendations := make([]ScoredUniversity, 0, requested.Total())
	recommendations = append(recommendations, takeTop(viableReaches, requested.Reach)...)
	recommendations = append(recommendations, takeTop(viableTargets, requested.Target)...)
	recommendations = append(recommendations, takeTop(viableSafeties, requested.Safety)...)

	// Fill remaining slots from any unselected candidate above the safety
	// bar, regardless of label.
	if remaining := requested.Total() - len(recommendations); remaining > 0 {
		selected := make(map[string]bool, len(recommendations))
		for _, r := range recommendations {
			selected[r.University.Name] = true
		}
		for _, s := range allScored {
			if remaining == 0 {
				break
			}
			if selected[s.University.Name] || s.MatchScore < m.cfg.SafetyMatchThreshold {
				continue
			}
			recommendations = append(recommendations, s)
			selected[s.University.Name] = true
			remaining--
		}
	}

	// Final presentation order: Reach, Target, Safety, score-descending
	// within each group.
	sort.SliceStable(recommendations, func(i, j int) bool {
		if labelOrder[recommendations[i].Label] != labelOrder[recommendations[j].Label] {
			return labelOrder[recommendations[i].Label] < labelOrder[recommendations[j].Label]
		}
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	return recommendations
}

func aboveThreshold(scored []ScoredUniversity, threshold float64) []ScoredUniversity {
	out := make([]ScoredUniversity, 0, len(scored))
	for _, s := range scored {
		if s.MatchScore >= threshold {
			out = append(out, s)
		}
	}
	return out
}

func takeTop(scored []ScoredUniversity, n int) []ScoredUniversity {
	if len(scored) > n {
		return scored[:n]
	}
	return scored
}
