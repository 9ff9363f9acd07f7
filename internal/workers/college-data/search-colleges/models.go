// internal/workers/college-data/search-colleges/models.go
package searchcolleges

type SearchFilters struct {
	Keywords          string   `json:"keywords,omitempty"`
	States            []string `json:"states,omitempty"`
	CampusSettings    []string `json:"campusSettings,omitempty"`
	Major             string   `json:"major,omitempty"`
	MinAcceptanceRate *float64 `json:"minAcceptanceRate,omitempty"`
	MaxAcceptanceRate *float64 `json:"maxAcceptanceRate,omitempty"`
	MaxTuition        *float64 `json:"maxTuition,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Input struct {
	Filters    SearchFilters `json:"filters"`
	Pagination Pagination    `json:"pagination"`
}

type Output struct {
	Colleges  []map[string]interface{} `json:"colleges"`
	TotalHits int64                    `json:"totalHits"`
	Took      int64                    `json:"took"`
}
