// internal/scoring/location.go
package scoring

import "strings"

// campusAdjacency covers preference/setting pairs that are close enough to
// count as a partial match. Suburban bridges urban and rural; urban vs rural
// is a full mismatch.
var campusAdjacency = map[[2]string]float64{
	{CampusUrban, CampusSuburban}: 75.0,
	{CampusSuburban, CampusUrban}: 75.0,
	{CampusSuburban, CampusRural}: 75.0,
	{CampusRural, CampusSuburban}: 75.0,
}

// LocationFitFactor scores lifestyle fit: campus setting preference and
// post-graduation goal alignment.
type LocationFitFactor struct {
	Weight float64
}

func (f *LocationFitFactor) Name() string        { return FactorLocationFit }
func (f *LocationFitFactor) BaseWeight() float64 { return f.Weight }

func (f *LocationFitFactor) Applicable(_ *StudentContext) bool { return true }

// Calculate averages up to two sub-scores; neutral 70 when neither applies.
func (f *LocationFitFactor) Calculate(ctx *StudentContext, u *UniversityData) float64 {
	var scores []float64

	if campus, ok := campusSettingScore(ctx, u); ok {
		scores = append(scores, campus)
	}
	if career, ok := careerAlignmentScore(ctx, u); ok {
		scores = append(scores, career)
	}

	if len(scores) == 0 {
		return 70.0
	}

	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

func campusSettingScore(ctx *StudentContext, u *UniversityData) (float64, bool) {
	if ctx.CampusPreference == "" {
		return 0, false
	}
	if u.CampusSetting == "" {
		return 70.0, true
	}

	pref := strings.ToUpper(ctx.CampusPreference)
	setting := strings.ToUpper(u.CampusSetting)

	if pref == setting {
		return 95.0, true
	}
	if score, ok := campusAdjacency[[2]string{pref, setting}]; ok {
		return score, true
	}
	return 45.0, true
}

// careerAlignmentScore uses campus setting as a proxy for career outcomes:
// urban campuses score higher for job placement and entrepreneurship.
func careerAlignmentScore(ctx *StudentContext, u *UniversityData) (float64, bool) {
	if ctx.PostGradGoal == "" || strings.EqualFold(ctx.PostGradGoal, GoalUndecided) {
		return 0, false
	}

	urban := strings.EqualFold(u.CampusSetting, CampusUrban)

	switch strings.ToUpper(ctx.PostGradGoal) {
	case GoalJobPlacement:
		if urban {
			return 85.0, true
		}
		return 70.0, true
	case GoalGraduateSchool:
		return 75.0, true
	case GoalEntrepreneurship:
		if urban {
			return 80.0, true
		}
		return 70.0, true
	default:
		return 70.0, true
	}
}
