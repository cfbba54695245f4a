package service

import (
	"testing"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/repository"
)

func TestAggregateUsage(t *testing.T) {
	rows := []repository.UsageRow{
		{ResourceID: 3, ResourceName: "c", StartTime: domain.NewClock(9, 0), EndTime: domain.NewClock(10, 0)},
		{ResourceID: 1, ResourceName: "a", StartTime: domain.NewClock(9, 0), EndTime: domain.NewClock(10, 0)},
		{ResourceID: 2, ResourceName: "b", StartTime: domain.NewClock(9, 0), EndTime: domain.NewClock(12, 0)},
		{ResourceID: 4, ResourceName: "d", StartTime: domain.NewClock(9, 0), EndTime: domain.NewClock(9, 0)},
	}

	got := aggregateUsage(rows)

	want := []int64{2, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d: %+v", len(want), len(got), got)
	}
	for i, id := range want {
		if got[i].ResourceID != id {
			t.Errorf("position %d: expected resource %d, got %d", i, id, got[i].ResourceID)
		}
	}
	if got[0].TotalHours != 3 {
		t.Errorf("expected 3 hours, got %v", got[0].TotalHours)
	}
}
