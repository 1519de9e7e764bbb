package dto

// CountBucketResponse one aggregation bucket.
type CountBucketResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// OrganizationSummaryResponse the org-admin dashboard payload.
type OrganizationSummaryResponse struct {
	TotalTickets       int64                 `json:"total_tickets"`
	OpenTickets        int64                 `json:"open_tickets"`
	ClosedTickets      int64                 `json:"closed_tickets"`
	ByStatus           []CountBucketResponse `json:"by_status"`
	ByPriority         []CountBucketResponse `json:"by_priority"`
	ByCategory         []CountBucketResponse `json:"by_category"`
	AvgResolutionHours float64               `json:"avg_resolution_hours"`
	TotalTimeMinutes   int64                 `json:"total_time_minutes"`
}

// PlatformStatsResponse super-admin overview.
type PlatformStatsResponse struct {
	Organizations int64 `json:"organizations"`
	Users         int64 `json:"users"`
	Tickets       int64 `json:"tickets"`
	OpenTickets   int64 `json:"open_tickets"`
}
