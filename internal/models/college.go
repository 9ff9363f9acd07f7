// internal/models/college.go
package models

// CollegeDocument mirrors the Elasticsearch index mapping for the colleges
// index. Search results and seed data share this shape.
type CollegeDocument struct {
	Name           string   `json:"name"`
	State          string   `json:"state,omitempty"`
	CampusSetting  string   `json:"campus_setting,omitempty"`
	Majors         []string `json:"majors,omitempty"`
	AcceptanceRate *float64 `json:"acceptance_rate,omitempty"`
	MedianGPA      *float64 `json:"median_gpa,omitempty"`
	TuitionInState *float64 `json:"tuition_in_state,omitempty"`
	Ranking        *int     `json:"ranking,omitempty"`
}
