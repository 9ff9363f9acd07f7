// internal/scoring/selector_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Candidate builders tuned for the default testContext (domestic, GPA 3.8,
// Computer Science, medium income). Labels follow from acceptance rate and
// GPA percentile position; match scores clear the selection thresholds.

func reachCandidate(name string) UniversityData {
	u := *testUniversity(name)
	u.AcceptanceRate = fptr(0.05)
	u.MedianGPA = fptr(3.9)
	return u
}

func targetCandidate(name string, medianGPA float64) UniversityData {
	u := *testUniversity(name)
	u.AcceptanceRate = fptr(0.50)
	u.MedianGPA = fptr(medianGPA)
	return u
}

func safetyCandidate(name string) UniversityData {
	u := *testUniversity(name)
	u.AcceptanceRate = fptr(0.80)
	u.MedianGPA = fptr(3.2)
	return u
}

func TestSelectRecommendations_Distribution(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	universities := []UniversityData{
		safetyCandidate("Safety A"),
		targetCandidate("Target A", 3.7),
		reachCandidate("Reach A"),
		targetCandidate("Target B", 3.8),
		safetyCandidate("Safety B"),
		reachCandidate("Reach B"),
		targetCandidate("Target C", 3.9),
	}

	counts := &LabelCounts{Reach: 1, Target: 2, Safety: 2}
	recs := scorer.SelectRecommendations(testContext(), universities, counts)

	assert.Len(t, recs, 5)

	labels := make([]AdmissionLabel, 0, len(recs))
	for _, r := range recs {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []AdmissionLabel{LabelReach, LabelTarget, LabelTarget, LabelSafety, LabelSafety}, labels)

	// Score-descending within each label group.
	assert.Equal(t, "Target A", recs[1].University.Name)
	assert.Equal(t, "Target B", recs[2].University.Name)
	assert.GreaterOrEqual(t, recs[3].MatchScore, recs[4].MatchScore)
}

func TestSelectRecommendations_NilCountsUseDefaults(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	universities := []UniversityData{
		reachCandidate("Reach A"),
		reachCandidate("Reach B"),
		targetCandidate("Target A", 3.7),
		targetCandidate("Target B", 3.8),
		targetCandidate("Target C", 3.9),
		safetyCandidate("Safety A"),
		safetyCandidate("Safety B"),
		safetyCandidate("Safety C"),
	}

	recs := scorer.SelectRecommendations(testContext(), universities, nil)

	// Default distribution is 1 reach, 2 targets, 2 safeties.
	assert.Len(t, recs, 5)
	assert.Equal(t, LabelReach, recs[0].Label)
	assert.Equal(t, LabelSafety, recs[4].Label)
}

func TestSelectRecommendations_EmptyInput(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	recs := scorer.SelectRecommendations(testContext(), nil, nil)
	assert.Empty(t, recs)
}

func TestSelectRecommendations_SafetyBackfillBelowThreshold(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	ctx := testContext()
	ctx.CampusPreference = CampusUrban

	// Open-admission school with no academic stats, no matching major and a
	// rural campus: scores 47.5, below the safety threshold of 50.
	weak := *testUniversity("Weak Safety U")
	weak.HasMajor = false
	weak.AcceptanceRate = fptr(0.90)
	weak.CampusSetting = CampusRural

	counts := &LabelCounts{Safety: 1}
	recs := scorer.SelectRecommendations(ctx, []UniversityData{weak}, counts)

	// The only safety available is kept even though it misses the bar.
	assert.Len(t, recs, 1)
	assert.Equal(t, "Weak Safety U", recs[0].University.Name)
	assert.Equal(t, LabelSafety, recs[0].Label)
	assert.InDelta(t, 47.5, recs[0].MatchScore, 0.001)
}

func TestSelectRecommendations_NoBackfillForReaches(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	ctx := testContext()
	ctx.CampusPreference = CampusUrban

	// A reach scoring 47.5 misses both the match threshold and the
	// any-label fill floor, so it is never forced into the list.
	weak := reachCandidate("Weak Reach U")
	weak.HasMajor = false
	weak.MedianGPA = nil
	weak.CampusSetting = CampusRural

	counts := &LabelCounts{Reach: 1}
	recs := scorer.SelectRecommendations(ctx, []UniversityData{weak}, counts)

	assert.Empty(t, recs)
}

func TestSelectRecommendations_FillsShortfallFromOtherLabels(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	universities := []UniversityData{
		targetCandidate("Target A", 3.7),
		targetCandidate("Target B", 3.8),
		targetCandidate("Target C", 3.9),
		safetyCandidate("Safety A"),
	}

	// Two reaches requested but none exist: the open slots are filled by
	// the remaining targets instead of being left empty.
	counts := &LabelCounts{Reach: 2, Target: 1, Safety: 1}
	recs := scorer.SelectRecommendations(testContext(), universities, counts)

	assert.Len(t, recs, 4)

	byLabel := map[AdmissionLabel]int{}
	for _, r := range recs {
		byLabel[r.Label]++
	}
	assert.Equal(t, 3, byLabel[LabelTarget])
	assert.Equal(t, 1, byLabel[LabelSafety])

	// Presentation order still groups targets before safeties.
	assert.Equal(t, LabelTarget, recs[0].Label)
	assert.Equal(t, LabelSafety, recs[3].Label)
}

func TestSelectRecommendations_NoDuplicates(t *testing.T) {
	scorer := NewMatchScorer(DefaultConfig())

	universities := []UniversityData{
		targetCandidate("Target A", 3.7),
		safetyCandidate("Safety A"),
	}

	// Requesting more than exists must not repeat a university.
	counts := &LabelCounts{Reach: 2, Target: 2, Safety: 2}
	recs := scorer.SelectRecommendations(testContext(), universities, counts)

	seen := map[string]bool{}
	for _, r := range recs {
		assert.False(t, seen[r.University.Name], "duplicate %s", r.University.Name)
		seen[r.University.Name] = true
	}
	assert.Len(t, recs, 2)
}
