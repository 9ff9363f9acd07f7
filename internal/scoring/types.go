// internal/scoring/types.go
package scoring

import (
	"encoding/json"
	"fmt"
	"math"
)

// AdmissionLabel buckets a university by admission likelihood for a student.
type AdmissionLabel string

const (
	LabelReach  AdmissionLabel = "Reach"
	LabelTarget AdmissionLabel = "Target"
	LabelSafety AdmissionLabel = "Safety"
)

// Income tiers used by the financial fit factor.
const (
	IncomeTierLow    = "LOW"
	IncomeTierMedium = "MEDIUM"
	IncomeTierHigh   = "HIGH"
)

// Campus settings understood by the location fit factor.
const (
	CampusUrban    = "URBAN"
	CampusSuburban = "SUBURBAN"
	CampusRural    = "RURAL"
)

// Post-graduation goals understood by the career alignment sub-score.
const (
	GoalJobPlacement     = "JOB_PLACEMENT"
	GoalGraduateSchool   = "GRADUATE_SCHOOL"
	GoalEntrepreneurship = "ENTREPRENEURSHIP"
	GoalUndecided        = "UNDECIDED"
)

// MajorUndeclared is the intended major assumed for profiles that do not
// state one.
const MajorUndeclared = "Undeclared"

// StudentContext is the normalized, read-only view of a student profile that
// the scoring factors consume. It is built once per scoring request by the
// upstream profile-normalization step and never mutated here.
type StudentContext struct {
	IsDomestic         bool     `json:"isDomestic"`
	CitizenshipStatus  string   `json:"citizenshipStatus"`
	Nationality        string   `json:"nationality,omitempty"`
	StateOfResidence   string   `json:"stateOfResidence,omitempty"`
	GPA                float64  `json:"gpa"`
	SATScore           *int     `json:"satScore,omitempty"`
	ACTScore           *int     `json:"actScore,omitempty"`
	APCount            int      `json:"apCount"`
	IntendedMajor      string   `json:"intendedMajor"`
	IncomeTier         string   `json:"incomeTier"`
	IsFirstGen         bool     `json:"isFirstGen"`
	CampusPreference   string   `json:"campusPreference,omitempty"`
	PostGradGoal       string   `json:"postGradGoal,omitempty"`
	IsAthlete          bool     `json:"isAthlete"`
	HasLegacy          bool     `json:"hasLegacy"`
	LegacyUniversities []string `json:"legacyUniversities,omitempty"`
}

// UnmarshalJSON applies payload defaults: a profile that omits the intended
// major is treated as undeclared.
func (c *StudentContext) UnmarshalJSON(data []byte) error {
	type plain StudentContext
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.IntendedMajor == "" {
		p.IntendedMajor = MajorUndeclared
	}
	*c = StudentContext(p)
	return nil
}

// Validate rejects structurally invalid profiles before they reach a factor.
func (c *StudentContext) Validate() error {
	if c.GPA < 0.0 || c.GPA > 4.0 {
		return fmt.Errorf("gpa %.2f outside [0.0, 4.0]", c.GPA)
	}
	if c.SATScore != nil && (*c.SATScore < 400 || *c.SATScore > 1600) {
		return fmt.Errorf("sat score %d outside [400, 1600]", *c.SATScore)
	}
	if c.ACTScore != nil && (*c.ACTScore < 1 || *c.ACTScore > 36) {
		return fmt.Errorf("act score %d outside [1, 36]", *c.ACTScore)
	}
	if c.APCount < 0 {
		return fmt.Errorf("ap count %d negative", c.APCount)
	}
	return nil
}

// UniversityData is one university's statistics as known at scoring time.
// Every optional field may be absent; factors degrade to documented neutral
// values instead of failing the record.
type UniversityData struct {
	Name string `json:"name"`

	// Admission statistics
	AcceptanceRate *float64 `json:"acceptanceRate,omitempty"` // 0.0-1.0
	MedianGPA      *float64 `json:"medianGpa,omitempty"`      // 0.0-4.0
	SAT25th        *int     `json:"sat25th,omitempty"`        // 400-1600
	SAT75th        *int     `json:"sat75th,omitempty"`        // 400-1600

	// Tuition
	TuitionInState       *float64 `json:"tuitionInState,omitempty"`
	TuitionOutOfState    *float64 `json:"tuitionOutOfState,omitempty"`
	TuitionInternational *float64 `json:"tuitionInternational,omitempty"`

	// Program
	MajorRanking     *int    `json:"majorRanking,omitempty"` // 1-based, smaller = stronger
	HasMajor         bool    `json:"hasMajor"`
	StudentMajor     string  `json:"studentMajor,omitempty"`
	VectorSimilarity float64 `json:"vectorSimilarity"` // 0.0-1.0 relevance proxy

	// Aid policy
	NeedBlindInternational bool     `json:"needBlindInternational"`
	NeedBlindDomestic      bool     `json:"needBlindDomestic"`
	AvgAidPackage          *float64 `json:"avgAidPackage,omitempty"`
	MeetsFullNeed          bool     `json:"meetsFullNeed"`

	// Fit
	CampusSetting string `json:"campusSetting,omitempty"`
	State         string `json:"state,omitempty"`
}

// UnmarshalJSON defaults HasMajor to true for records that never state major
// availability. Offering the major is the common case; false is an explicit
// disqualification, not an absence of data.
func (u *UniversityData) UnmarshalJSON(data []byte) error {
	type plain UniversityData
	p := plain{HasMajor: true}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UniversityData(p)
	return nil
}

// Validate rejects structurally invalid records at the boundary so factor
// code never has to branch on impossible data.
func (u *UniversityData) Validate() error {
	if u.Name == "" {
		return fmt.Errorf("university name is required")
	}
	if u.AcceptanceRate != nil && (*u.AcceptanceRate < 0.0 || *u.AcceptanceRate > 1.0) {
		return fmt.Errorf("%s: acceptance rate %.3f outside [0.0, 1.0]", u.Name, *u.AcceptanceRate)
	}
	if u.MedianGPA != nil && (*u.MedianGPA < 0.0 || *u.MedianGPA > 4.0) {
		return fmt.Errorf("%s: median gpa %.2f outside [0.0, 4.0]", u.Name, *u.MedianGPA)
	}
	if u.SAT25th != nil && (*u.SAT25th < 400 || *u.SAT25th > 1600) {
		return fmt.Errorf("%s: sat 25th %d outside [400, 1600]", u.Name, *u.SAT25th)
	}
	if u.SAT75th != nil && (*u.SAT75th < 400 || *u.SAT75th > 1600) {
		return fmt.Errorf("%s: sat 75th %d outside [400, 1600]", u.Name, *u.SAT75th)
	}
	if u.SAT25th != nil && u.SAT75th != nil && *u.SAT25th > *u.SAT75th {
		return fmt.Errorf("%s: sat 25th %d above sat 75th %d", u.Name, *u.SAT25th, *u.SAT75th)
	}
	if u.MajorRanking != nil && *u.MajorRanking < 1 {
		return fmt.Errorf("%s: major ranking %d below 1", u.Name, *u.MajorRanking)
	}
	if u.VectorSimilarity < 0.0 || u.VectorSimilarity > 1.0 {
		return fmt.Errorf("%s: vector similarity %.3f outside [0.0, 1.0]", u.Name, u.VectorSimilarity)
	}
	return nil
}

// ScoreBreakdown holds the per-factor sub-scores behind a match score.
// Sub-scores not computed for a student default to 0.0; WeightsUsed always
// sums to 1.0 over the applicable factors.
type ScoreBreakdown struct {
	AcademicFit     float64 `json:"academicFit"`
	MajorStrength   float64 `json:"majorStrength"`
	FinancialFit    float64 `json:"financialFit"`
	LocationFit     float64 `json:"locationFit"`
	CareerAlignment float64 `json:"careerAlignment"`
	SpecialFactors  float64 `json:"specialFactors"`

	WeightsUsed map[string]float64 `json:"weightsUsed"`
}

// ScoredUniversity is the final per-university scoring result. Immutable once
// produced; its lifetime is a single scoring call.
type ScoredUniversity struct {
	University           UniversityData `json:"university"`
	MatchScore           float64        `json:"matchScore"`           // 0-100
	AdmissionProbability float64        `json:"admissionProbability"` // 5-95
	Breakdown            ScoreBreakdown `json:"breakdown"`
	Label                AdmissionLabel `json:"label"`
	Reasoning            string         `json:"reasoning,omitempty"`
	FinancialAidSummary  string         `json:"financialAidSummary,omitempty"`
}

// ToMap flattens the result into primitives for the presentation layer.
func (s *ScoredUniversity) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"name":                 s.University.Name,
		"label":                string(s.Label),
		"matchScore":           round1(s.MatchScore),
		"admissionProbability": round1(s.AdmissionProbability),
		"breakdown": map[string]float64{
			"academicFit":     round1(s.Breakdown.AcademicFit),
			"majorStrength":   round1(s.Breakdown.MajorStrength),
			"financialFit":    round1(s.Breakdown.FinancialFit),
			"locationFit":     round1(s.Breakdown.LocationFit),
			"careerAlignment": round1(s.Breakdown.CareerAlignment),
			"specialFactors":  round1(s.Breakdown.SpecialFactors),
		},
		"reasoning":           s.Reasoning,
		"financialAidSummary": s.FinancialAidSummary,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
