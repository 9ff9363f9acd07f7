// pkg/registry/schema.go
package registry

// Categories group activities by the part of the recommendation pipeline
// they serve. The registry rejects anything else.
const (
	CategoryRecommendation = "recommendation"
	CategoryCollegeData    = "college-data"
	CategoryCommunication  = "communication"
)

// KnownCategories lists every accepted activity category.
var KnownCategories = []string{
	CategoryRecommendation,
	CategoryCollegeData,
	CategoryCommunication,
}

// ActivityRegistry catalogs the Zeebe task types this service implements.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one task type: how to address it, what payloads it
// accepts and produces, and which workflows use it. Input and output
// schemas are standard JSON Schema documents.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	for _, known := range KnownCategories {
		if c == known {
			return true
		}
	}
	return false
}
