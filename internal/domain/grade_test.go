package domain

import "testing"

func TestCanUseTemplate(t *testing.T) {
	basic := Template{ID: "t0", RequiredRank: 0}
	silver := Template{ID: "t1", RequiredRank: 1}
	gold := Template{ID: "t2", RequiredRank: 2}

	if CanUseTemplate(Grade{Rank: 1}, gold) {
		t.Fatalf("rank 1 should be denied a rank-2 template")
	}
	if !CanUseTemplate(Grade{Rank: 2}, silver) {
		t.Fatalf("rank 2 should be allowed a rank-1 template")
	}
	if !CanUseTemplate(Grade{Rank: 2}, gold) {
		t.Fatalf("rank 2 should be allowed a rank-2 template")
	}
	// Unassigned grade only passes the lowest required rank.
	if !CanUseTemplate(Grade{}, basic) {
		t.Fatalf("unassigned grade should pass a rank-0 template")
	}
	if CanUseTemplate(Grade{}, silver) {
		t.Fatalf("unassigned grade should be denied a gated template")
	}
}
