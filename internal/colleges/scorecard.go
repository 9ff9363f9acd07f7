// internal/colleges/scorecard.go
package colleges

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	commonhttp "college-match-workers/internal/common/http"
	"college-match-workers/internal/scoring"
)

// ScorecardClient fetches admission statistics from the College Scorecard API
// when a college is missing from our own tables. Results are best effort: any
// field the API does not report stays nil and the scoring factors fall back to
// their neutral values.
type ScorecardClient struct {
	httpClient *commonhttp.Client
	baseURL    string
	apiKey     string
}

func NewScorecardClient(baseURL, apiKey string, timeout time.Duration) *ScorecardClient {
	return &ScorecardClient{
		httpClient: commonhttp.NewClient(timeout),
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type scorecardResponse struct {
	Results []scorecardSchool `json:"results"`
}

type scorecardSchool struct {
	School struct {
		Name  string `json:"name"`
		State string `json:"state"`
	} `json:"school"`
	Latest struct {
		Admissions struct {
			AdmissionRate struct {
				Overall *float64 `json:"overall"`
			} `json:"admission_rate"`
			SATScores struct {
				Percentile25 *float64 `json:"25th_percentile_combined"`
				Percentile75 *float64 `json:"75th_percentile_combined"`
			} `json:"sat_scores"`
		} `json:"admissions"`
		Cost struct {
			TuitionInState    *float64 `json:"tuition_in_state"`
			TuitionOutOfState *float64 `json:"tuition_out_of_state"`
		} `json:"cost"`
	} `json:"latest"`
}

// FetchByName looks a school up by exact name. Returns nil without error when
// the API has no record for it.
func (c *ScorecardClient) FetchByName(ctx context.Context, name string) (*scoring.UniversityData, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("school.name", name)
	q.Set("fields", "school.name,school.state,latest.admissions,latest.cost")
	q.Set("per_page", "1")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/v1/schools?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build scorecard request: %w", err)
	}

	resp, err := c.httpClient.DoWithContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("scorecard request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scorecard API returned status %d", resp.StatusCode)
	}

	var parsed scorecardResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode scorecard response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return nil, nil
	}

	return mapScorecardSchool(&parsed.Results[0]), nil
}

func mapScorecardSchool(s *scorecardSchool) *scoring.UniversityData {
	u := &scoring.UniversityData{
		Name:     s.School.Name,
		State:    s.School.State,
		HasMajor: true, // Scorecard reports no program catalog
	}

	if rate := s.Latest.Admissions.AdmissionRate.Overall; rate != nil {
		u.AcceptanceRate = rate
	}
	if p := s.Latest.Admissions.SATScores.Percentile25; p != nil {
		v := int(*p)
		u.SAT25th = &v
	}
	if p := s.Latest.Admissions.SATScores.Percentile75; p != nil {
		v := int(*p)
		u.SAT75th = &v
	}
	u.TuitionInState = s.Latest.Cost.TuitionInState
	u.TuitionOutOfState = s.Latest.Cost.TuitionOutOfState

	return u
}
