package service

import (
	"context"
	"sort"
	"time"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/repository"
)

// DefaultReportWindowDays - длина окна отчёта по загрузке в днях
const DefaultReportWindowDays = 30

// ReportService определяет интерфейс построения отчётов
type ReportService interface {
	ResourceUsage(ctx context.Context) ([]domain.ResourceUsage, error)
}

type reportService struct {
	bookingRepo repository.BookingRepository
	windowDays  int
	now         func() time.Time
}

// NewReportService создаёт сервис отчётов. now == nil означает time.Now.
func NewReportService(bookingRepo repository.BookingRepository, windowDays int, now func() time.Time) ReportService {
	if windowDays <= 0 {
		windowDays = DefaultReportWindowDays
	}
	if now == nil {
		now = time.Now
	}
	return &reportService{
		bookingRepo: bookingRepo,
		windowDays:  windowDays,
		now:         now,
	}
}

// ResourceUsage суммирует забронированные часы по ресурсам за последние windowDays дней
// (включая границу окна) и сортирует по убыванию.
func (s *reportService) ResourceUsage(ctx context.Context) ([]domain.ResourceUsage, error) {
	since := domain.DateOf(s.now()).AddDays(-s.windowDays)

	rows, err := s.bookingRepo.UsageSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return aggregateUsage(rows), nil
}

func aggregateUsage(rows []repository.UsageRow) []domain.ResourceUsage {
	index := make(map[int64]int)
	report := make([]domain.ResourceUsage, 0)

	for _, row := range rows {
		hours := domain.Slot{Start: row.StartTime, End: row.EndTime}.Hours()

		i, ok := index[row.ResourceID]
		if !ok {
			i = len(report)
			index[row.ResourceID] = i
			report = append(report, domain.ResourceUsage{
				ResourceID:   row.ResourceID,
				ResourceName: row.ResourceName,
			})
		}
		report[i].TotalHours += hours
	}

	// Ресурсы без забронированных часов в отчёт не попадают
	filtered := report[:0]
	for _, usage := range report {
		if usage.TotalHours > 0 {
			filtered = append(filtered, usage)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].TotalHours != filtered[j].TotalHours {
			return filtered[i].TotalHours > filtered[j].TotalHours
		}
		return filtered[i].ResourceID < filtered[j].ResourceID
	})

	return filtered
}
