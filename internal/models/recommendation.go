// internal/models/recommendation.go
// Package models holds wire types shared by workers that hand process
// variables to each other inside a recommendation workflow.
package models

// RecommendationSummary is the slimmed-down recommendation the selection
// task passes to downstream notification tasks.
type RecommendationSummary struct {
	Name       string  `json:"name"`
	Label      string  `json:"label"`
	MatchScore float64 `json:"matchScore"`
}
