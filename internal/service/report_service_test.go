package service_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/repository"
	"github.com/office-booking-api/internal/service"
	"github.com/office-booking-api/internal/testutil"
)

func TestResourceUsage(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2024, 6, 10, 18, 0, 0, 0, time.UTC)
	today := domain.DateOf(now)

	room := testutil.MustCreateResource(t, db, "Переговорная №1", "комната")
	projector := testutil.MustCreateResource(t, db, "Проектор №1", "проектор")
	idle := testutil.MustCreateResource(t, db, "Парковка №7", "парковка")
	emp := testutil.MustCreateEmployee(t, db, "Иванов Иван", "ivanov@company.com")

	testutil.MustCreateBooking(t, db, room.ID, emp.ID, today.AddDays(-1), domain.NewClock(9, 0), domain.NewClock(10, 30))
	testutil.MustCreateBooking(t, db, room.ID, emp.ID, today.AddDays(-3), domain.NewClock(14, 0), domain.NewClock(15, 0))
	// вне окна
	testutil.MustCreateBooking(t, db, room.ID, emp.ID, today.AddDays(-40), domain.NewClock(9, 0), domain.NewClock(17, 0))
	testutil.MustCreateBooking(t, db, idle.ID, emp.ID, today.AddDays(-40), domain.NewClock(9, 0), domain.NewClock(17, 0))
	// граница окна включается
	testutil.MustCreateBooking(t, db, projector.ID, emp.ID, today.AddDays(-30), domain.NewClock(10, 0), domain.NewClock(10, 45))

	svc := service.NewReportService(repository.NewBookingRepository(db), 30, func() time.Time { return now })

	report, err := svc.ResourceUsage(context.Background())
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if len(report) != 2 {
		t.Fatalf("expected 2 resources in report, got %d: %+v", len(report), report)
	}
	if report[0].ResourceID != room.ID || report[0].ResourceName != room.Name {
		t.Errorf("expected room first, got %+v", report[0])
	}
	if math.Abs(report[0].TotalHours-2.5) > 1e-9 {
		t.Errorf("expected 2.5 hours, got %v", report[0].TotalHours)
	}
	if report[1].ResourceID != projector.ID || math.Abs(report[1].TotalHours-0.75) > 1e-9 {
		t.Errorf("expected projector with 0.75 hours, got %+v", report[1])
	}
}

func TestResourceUsage_Empty(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.MustCreateResource(t, db, "Переговорная №1", "комната")

	svc := service.NewReportService(repository.NewBookingRepository(db), 0, nil)

	report, err := svc.ResourceUsage(context.Background())
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if report == nil || len(report) != 0 {
		t.Errorf("expected empty non-nil report, got %#v", report)
	}
}
