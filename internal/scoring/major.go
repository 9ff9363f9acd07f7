// internal/scoring/major.go
package scoring

import (
	"math"
	"strings"
)

// majorAbbreviations maps canonical major names to accepted short forms so
// that "Computer Science" and "CS" compare equal.
var majorAbbreviations = map[string][]string{
	"computer science":        {"cs", "compsci", "computing"},
	"electrical engineering":  {"ee", "eecs"},
	"mechanical engineering":  {"me", "mech eng"},
	"chemical engineering":    {"che", "chem eng"},
	"biomedical engineering":  {"bme", "biomed"},
	"data science":            {"ds", "data analytics"},
	"machine learning":        {"ml", "ai", "artificial intelligence"},
	"business administration": {"bba", "business", "management"},
	"economics":               {"econ"},
	"mathematics":             {"math", "maths"},
	"biology":                 {"bio", "life sciences"},
	"chemistry":               {"chem"},
	"physics":                 {"phys"},
	"psychology":              {"psych"},
}

// MajorStrengthFactor scores the university's program quality for the
// student's intended major.
type MajorStrengthFactor struct {
	Weight float64
}

func (f *MajorStrengthFactor) Name() string        { return FactorMajorStrength }
func (f *MajorStrengthFactor) BaseWeight() float64 { return f.Weight }

func (f *MajorStrengthFactor) Applicable(_ *StudentContext) bool { return true }

// Calculate returns 0 when the university does not offer the major at all
// (disqualifying, not merely penalizing), neutral 60 when the record's
// program data describes a different major than the student's, a step-function
// score from the major ranking when present, a similarity-bucket fallback
// otherwise, and neutral 65 with no program data at all.
func (f *MajorStrengthFactor) Calculate(ctx *StudentContext, u *UniversityData) float64 {
	if !u.HasMajor {
		return 0.0
	}

	if u.StudentMajor != "" && ctx.IntendedMajor != "" {
		if !majorsMatch(strings.ToLower(ctx.IntendedMajor), strings.ToLower(u.StudentMajor)) {
			// Ranking data is for a different program; treat it as
			// low-confidence rather than trusting it.
			return 60.0
		}
	}

	if u.MajorRanking != nil {
		return scoreFromRanking(*u.MajorRanking)
	}

	if u.VectorSimilarity > 0 {
		return scoreFromSimilarity(u.VectorSimilarity)
	}

	return 65.0
}

// majorsMatch fuzzy-compares two lowercased major names: direct substring
// match either direction, or a hit through the abbreviation dictionary.
func majorsMatch(studentMajor, uniMajor string) bool {
	if strings.Contains(uniMajor, studentMajor) || strings.Contains(studentMajor, uniMajor) {
		return true
	}

	for fullName, abbrevs := range majorAbbreviations {
		if strings.Contains(fullName, studentMajor) || strings.Contains(studentMajor, fullName) {
			if containsAbbrev(uniMajor, abbrevs) {
				return true
			}
		}
		if strings.Contains(fullName, uniMajor) || strings.Contains(uniMajor, fullName) {
			if containsAbbrev(studentMajor, abbrevs) {
				return true
			}
		}
	}
	return false
}

func containsAbbrev(major string, abbrevs []string) bool {
	for _, a := range abbrevs {
		if major == a || strings.Contains(major, a) {
			return true
		}
	}
	return false
}

// scoreFromRanking maps a 1-based national program ranking onto a decreasing
// step function: top programs cluster near 100, long-tail programs floor at 40.
func scoreFromRanking(rank int) float64 {
	r := float64(rank)
	switch {
	case rank <= 5:
		return 100 - (r-1)*2
	case rank <= 10:
		return 90 - (r-5)*1
	case rank <= 25:
		return 85 - (r-10)*0.5
	case rank <= 50:
		return 77 - (r-25)*0.4
	case rank <= 100:
		return 67 - (r-50)*0.3
	default:
		return math.Max(40, 52-(r-100)*0.1)
	}
}

// scoreFromSimilarity buckets the vector-search relevance score as a proxy
// for program strength when no ranking exists.
func scoreFromSimilarity(similarity float64) float64 {
	switch {
	case similarity >= 0.9:
		return 85.0
	case similarity >= 0.8:
		return 75.0
	case similarity >= 0.7:
		return 65.0
	case similarity >= 0.6:
		return 55.0
	default:
		return 45.0
	}
}
