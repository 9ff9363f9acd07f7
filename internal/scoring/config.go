// internal/scoring/config.go
package scoring

// LabelCounts is the requested distribution of recommendations per label.
type LabelCounts struct {
	Reach  int `json:"reach" mapstructure:"reach"`
	Target int `json:"target" mapstructure:"target"`
	Safety int `json:"safety" mapstructure:"safety"`
}

// Total returns the combined number of requested recommendations.
func (c LabelCounts) Total() int {
	return c.Reach + c.Target + c.Safety
}

// Config carries every tunable constant of the engine. All values are
// calibrated heuristics, not laws of nature; callers may override any of them.
type Config struct {
	// Base factor weights before normalization.
	AcademicWeight  float64 `mapstructure:"academic_weight"`
	MajorWeight     float64 `mapstructure:"major_weight"`
	FinancialWeight float64 `mapstructure:"financial_weight"`
	LocationWeight  float64 `mapstructure:"location_weight"`
	SpecialWeight   float64 `mapstructure:"special_weight"`

	// Classification thresholds on acceptance rate.
	ReachAcceptanceThreshold  float64 `mapstructure:"reach_acceptance_threshold"`
	SafetyAcceptanceThreshold float64 `mapstructure:"safety_acceptance_threshold"`

	// Minimum match score to recommend a Reach/Target, and the lower bar
	// applied to Safety candidates.
	MinMatchThreshold    float64 `mapstructure:"min_match_threshold"`
	SafetyMatchThreshold float64 `mapstructure:"safety_match_threshold"`

	// Financial-fit tier bases for need-aware international applicants.
	// The 80/50 boundary is a judgment call inherited from product tuning.
	IntlMeetsNeedBase  float64 `mapstructure:"intl_meets_need_base"`
	IntlLimitedAidBase float64 `mapstructure:"intl_limited_aid_base"`

	// Default label distribution of a recommendation list.
	DefaultCounts LabelCounts `mapstructure:"default_counts"`
}

// DefaultConfig returns the production-calibrated engine constants.
func DefaultConfig() Config {
	return Config{
		AcademicWeight:  0.30,
		MajorWeight:     0.20,
		FinancialWeight: 0.20,
		LocationWeight:  0.10,
		SpecialWeight:   0.10,

		ReachAcceptanceThreshold:  0.15,
		SafetyAcceptanceThreshold: 0.35,

		MinMatchThreshold:    60.0,
		SafetyMatchThreshold: 50.0,

		IntlMeetsNeedBase:  80.0,
		IntlLimitedAidBase: 50.0,

		DefaultCounts: LabelCounts{Reach: 1, Target: 2, Safety: 2},
	}
}
