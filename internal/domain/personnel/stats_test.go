package personnel

import "testing"

func TestComputeStats(t *testing.T) {
	employees := []Employee{
		{CompletionPercentage: 95, VerificationStatus: VerificationApproved},
		{CompletionPercentage: 81, VerificationStatus: VerificationPending},
		{CompletionPercentage: 80, VerificationStatus: VerificationRevision},
		{CompletionPercentage: 49, VerificationStatus: VerificationPending},
		{CompletionPercentage: 20, VerificationStatus: VerificationApproved},
	}

	stats := ComputeStats(employees)
	if stats.TotalEmployees != 5 {
		t.Fatalf("expected 5 employees, got %d", stats.TotalEmployees)
	}
	if stats.CompletedDocs != 2 {
		t.Fatalf("expected 2 above 80%%, got %d", stats.CompletedDocs)
	}
	if stats.PendingDocs != 2 {
		t.Fatalf("expected 2 below 50%%, got %d", stats.PendingDocs)
	}
	if stats.Verified != 2 {
		t.Fatalf("expected 2 verified, got %d", stats.Verified)
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	if stats != (DashboardStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
