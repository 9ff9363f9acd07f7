// internal/workers/recommendation/select-recommendations/models.go
package selectrecommendations

import "college-match-workers/internal/scoring"

type Input struct {
	StudentProfile scoring.StudentContext   `json:"studentProfile"`
	Universities   []scoring.UniversityData `json:"universities"`
	LabelCounts    *scoring.LabelCounts     `json:"labelCounts,omitempty"`
}

type Output struct {
	RecommendationRunID string                   `json:"recommendationRunId"`
	Recommendations     []map[string]interface{} `json:"recommendations"`
	LabelDistribution   map[string]int           `json:"labelDistribution"`
	GeneratedAt         string                   `json:"generatedAt"`
}
