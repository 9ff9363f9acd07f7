// internal/workers/college-data/fetch-college-stats/models.go
package fetchcollegestats

import "college-match-workers/internal/scoring"

type Input struct {
	CollegeNames  []string `json:"collegeNames"`
	IntendedMajor string   `json:"intendedMajor,omitempty"`
}

type Output struct {
	Universities    []scoring.UniversityData `json:"universities"`
	MissingColleges []string                 `json:"missingColleges,omitempty"`
	FetchedCount    int                      `json:"fetchedCount"`
}
