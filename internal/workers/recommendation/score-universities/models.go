// internal/workers/recommendation/score-universities/models.go
package scoreuniversities

import "college-match-workers/internal/scoring"

type Input struct {
	StudentProfile scoring.StudentContext   `json:"studentProfile"`
	Universities   []scoring.UniversityData `json:"universities"`
}

type Output struct {
	ScoredUniversities []map[string]interface{} `json:"scoredUniversities"`
	ScoredCount        int                      `json:"scoredCount"`
}
