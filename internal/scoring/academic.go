// internal/scoring/academic.go
package scoring

import "math"

// Assumed standard deviation of admitted-student GPA around the median.
const gpaStdDev = 0.12

// actToSATTable maps ACT composite scores to their SAT equivalents. Scores
// outside the table fall back to 400 + act*40.
var actToSATTable = map[int]int{
	36: 1600, 35: 1560, 34: 1520, 33: 1490,
	32: 1450, 31: 1420, 30: 1390, 29: 1350,
	28: 1310, 27: 1280, 26: 1240, 25: 1210,
	24: 1180, 23: 1140, 22: 1110, 21: 1080,
	20: 1040, 19: 1010, 18: 970, 17: 930,
	16: 890, 15: 850, 14: 800, 13: 760,
}

func actToSAT(act int) int {
	if sat, ok := actToSATTable[act]; ok {
		return sat
	}
	return 400 + act*40
}

// effectiveSAT returns the student's SAT score, converting from ACT when no
// SAT score exists. Returns false when the student has neither.
func effectiveSAT(ctx *StudentContext) (int, bool) {
	if ctx.SATScore != nil {
		return *ctx.SATScore, true
	}
	if ctx.ACTScore != nil {
		return actToSAT(*ctx.ACTScore), true
	}
	return 0, false
}

// AcademicFitFactor compares the student's GPA and test scores against the
// university's admitted-student statistics.
type AcademicFitFactor struct {
	Weight float64
}

func (f *AcademicFitFactor) Name() string        { return FactorAcademicFit }
func (f *AcademicFitFactor) BaseWeight() float64 { return f.Weight }

func (f *AcademicFitFactor) Applicable(_ *StudentContext) bool { return true }

// Calculate combines a GPA sub-score and a test-score sub-score when both are
// available (test 60%, GPA 40%), uses whichever exists alone otherwise, and
// returns neutral 75 when the university publishes neither statistic.
func (f *AcademicFitFactor) Calculate(ctx *StudentContext, u *UniversityData) float64 {
	gpaScore, hasGPA := f.gpaFit(ctx.GPA, u)
	testScore, hasTest := f.testFit(ctx, u)

	switch {
	case hasGPA && hasTest:
		return testScore*0.6 + gpaScore*0.4
	case hasTest:
		return testScore
	case hasGPA:
		return gpaScore
	default:
		return 75.0
	}
}

// gpaFit maps the student's GPA deviation from the median onto [45,98] via a
// Z-score. A student exactly at the median reads as competitive (82), not
// penalized.
func (f *AcademicFitFactor) gpaFit(gpa float64, u *UniversityData) (float64, bool) {
	if u.MedianGPA == nil {
		return 0, false
	}
	z := (gpa - *u.MedianGPA) / gpaStdDev
	return clamp(82+10*z, 45, 98), true
}

// testFit positions the student's SAT (or converted ACT) against the
// university's 25th/75th percentile band.
func (f *AcademicFitFactor) testFit(ctx *StudentContext, u *UniversityData) (float64, bool) {
	sat, ok := effectiveSAT(ctx)
	if !ok || u.SAT25th == nil || u.SAT75th == nil {
		return 0, false
	}

	lo := float64(*u.SAT25th)
	hi := float64(*u.SAT75th)
	mid := (lo + hi) / 2
	score := float64(sat)

	switch {
	case score >= hi:
		return math.Min(98, 88+((score-hi)/80)*5), true
	case score >= mid:
		return 80 + 8*(score-mid)/(hi-mid), true
	case score >= lo:
		return 75 + 5*(score-lo)/(mid-lo), true
	default:
		return math.Max(40, 70-12*(lo-score)/80), true
	}
}
