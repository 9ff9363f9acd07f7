// internal/scoring/classifier.go
package scoring

import "math"

// LabelClassifier assigns Reach/Target/Safety labels and estimates admission
// probability from the acceptance rate and the student's percentile position
// among admitted students.
type LabelClassifier struct {
	cfg Config
}

// NewLabelClassifier builds a classifier with the given thresholds.
func NewLabelClassifier(cfg Config) *LabelClassifier {
	return &LabelClassifier{cfg: cfg}
}

// Classify labels the university for this student. Rule order matters:
//
//  1. Sub-threshold acceptance rate is a Reach no matter the stats, unless
//     the probability estimate reads >= 70 — a strong candidate at a hard
//     school is a Target, not pure chance.
//  2. With percentile data: bottom quartile is a Reach, top quartile is a
//     Safety only when the school is not itself selective, everything in
//     between is a Target.
//  3. Without percentile data, fall back on probability bands alone.
func (lc *LabelClassifier) Classify(ctx *StudentContext, u *UniversityData) AdmissionLabel {
	probability := lc.AdmissionProbability(ctx, u)

	if u.AcceptanceRate != nil && *u.AcceptanceRate < lc.cfg.ReachAcceptanceThreshold {
		if probability >= 70 {
			return LabelTarget
		}
		return LabelReach
	}

	if pp, ok := lc.percentilePosition(ctx, u); ok {
		switch {
		case pp < 25:
			return LabelReach
		case pp > 75:
			if u.AcceptanceRate == nil || *u.AcceptanceRate > lc.cfg.SafetyAcceptanceThreshold {
				return LabelSafety
			}
			return LabelTarget
		default:
			return LabelTarget
		}
	}

	switch {
	case probability >= 70:
		return LabelSafety
	case probability >= 30:
		return LabelTarget
	default:
		return LabelReach
	}
}

// AdmissionProbability estimates the chance of admission on a [5,95] scale.
// Base is the acceptance rate (or 50 when unknown), adjusted by percentile
// position and flat special-circumstance bonuses.
func (lc *LabelClassifier) AdmissionProbability(ctx *StudentContext, u *UniversityData) float64 {
	base := 50.0
	if u.AcceptanceRate != nil {
		base = *u.AcceptanceRate * 100
	}

	if pp, ok := lc.percentilePosition(ctx, u); ok {
		switch {
		case pp >= 75:
			base = math.Min(95, base*1.3+20)
		case pp >= 50:
			base = math.Min(85, base*1.1+10)
		case pp >= 25:
			base = base * 0.9
		default:
			base = math.Max(5, base*0.5-10)
		}
	}

	if ctx.HasLegacy && hasLegacyAt(ctx, u) {
		base = math.Min(95, base+15)
	}
	if ctx.IsAthlete {
		base = math.Min(95, base+10)
	}
	if ctx.IsFirstGen {
		base = math.Min(95, base+3)
	}

	return clamp(base, 5, 95)
}

// percentilePosition estimates where the student falls among admitted
// students on a 0-100 scale (50 = at median). GPA and SAT positions combine
// 55/45 when both exist; returns false when neither statistic is available,
// in which case probability skips the percentile adjustment entirely.
func (lc *LabelClassifier) percentilePosition(ctx *StudentContext, u *UniversityData) (float64, bool) {
	var positions []float64

	if u.MedianGPA != nil {
		gpaPos := clamp(50+25*(ctx.GPA-*u.MedianGPA)/0.3, 0, 100)
		positions = append(positions, gpaPos)
	}

	if sat, ok := effectiveSAT(ctx); ok && u.SAT25th != nil && u.SAT75th != nil {
		positions = append(positions, satPercentile(float64(sat), float64(*u.SAT25th), float64(*u.SAT75th)))
	}

	switch len(positions) {
	case 0:
		return 0, false
	case 1:
		return positions[0], true
	default:
		return positions[0]*0.55 + positions[1]*0.45, true
	}
}

// satPercentile interpolates the SAT score across [25th, mid, 75th] onto the
// percentile scale, extrapolating past the 75th by at most 25 points.
func satPercentile(sat, lo, hi float64) float64 {
	mid := (lo + hi) / 2

	switch {
	case sat <= lo:
		return math.Max(0, 25-(lo-sat)/5)
	case sat >= hi:
		return 75 + math.Min(25, (sat-hi)/50*25)
	case sat <= mid:
		return 25 + (sat-lo)/(mid-lo)*25
	default:
		return 50 + (sat-mid)/(hi-mid)*25
	}
}
