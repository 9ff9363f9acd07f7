// internal/workers/college-data/search-colleges/query.go
package searchcolleges

// buildQuery assembles the Elasticsearch bool query for a filter set. An empty
// filter set degrades to match_all so browsing without filters still works.
func buildQuery(f SearchFilters) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if f.Keywords != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  f.Keywords,
				"fields": []string{"name^3", "majors^2", "state"},
				"type":   "best_fields",
			},
		})
	}

	if f.Major != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"match": map[string]interface{}{"majors": f.Major},
		})
	}

	if len(f.States) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"state": f.States},
		})
	}

	if len(f.CampusSettings) > 0 {
		filterClauses = append(filterClauses, map[string]interface{}{
			"terms": map[string]interface{}{"campus_setting": f.CampusSettings},
		})
	}

	if f.MinAcceptanceRate != nil || f.MaxAcceptanceRate != nil {
		bounds := map[string]interface{}{}
		if f.MinAcceptanceRate != nil {
			bounds["gte"] = *f.MinAcceptanceRate
		}
		if f.MaxAcceptanceRate != nil {
			bounds["lte"] = *f.MaxAcceptanceRate
		}
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{"acceptance_rate": bounds},
		})
	}

	if f.MaxTuition != nil {
		filterClauses = append(filterClauses, map[string]interface{}{
			"range": map[string]interface{}{
				"tuition_in_state": map[string]interface{}{"lte": *f.MaxTuition},
			},
		})
	}

	if len(mustClauses) == 0 && len(filterClauses) == 0 {
		return map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	boolQuery := map[string]interface{}{}
	if len(mustClauses) > 0 {
		boolQuery["must"] = mustClauses
	}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
}
