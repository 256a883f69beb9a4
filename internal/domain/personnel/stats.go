package personnel

// DashboardStats summarizes record health for the admin dashboard.
type DashboardStats struct {
	TotalEmployees int `json:"totalEmployees"`
	CompletedDocs  int `json:"completedDocs"`
	PendingDocs    int `json:"pendingDocs"`
	Verified       int `json:"verified"`
}

// ComputeStats buckets employees by completion percentage and counts
// approved records.
func ComputeStats(employees []Employee) DashboardStats {
	stats := DashboardStats{TotalEmployees: len(employees)}
	for _, emp := range employees {
		if emp.CompletionPercentage > 80 {
			stats.CompletedDocs++
		}
		if emp.CompletionPercentage < 50 {
			stats.PendingDocs++
		}
		if emp.VerificationStatus == VerificationApproved {
			stats.Verified++
		}
	}
	return stats
}
