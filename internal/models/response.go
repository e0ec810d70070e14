package models

type SearchMetadata struct {
	TotalResults         int      `json:"total_results"`
	DestinationsSearched int      `json:"destinations_searched"`
	DestinationsFailed   int      `json:"destinations_failed"`
	FailedDestinations   []string `json:"failed_destinations,omitempty"`
	SearchTimeMs         int64    `json:"search_time_ms"`
	CacheHit             bool     `json:"cache_hit"`
}

type SearchResponse struct {
	Criteria SearchCriteria `json:"criteria"`
	Metadata SearchMetadata `json:"metadata"`
	Trips    []Trip         `json:"trips"`
}

type PlanResponse struct {
	Timeline *RouteTimeline `json:"timeline,omitempty"`
	Skipped  []Stop         `json:"skipped,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
