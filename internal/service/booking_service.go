package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/dto"
	"github.com/office-booking-api/internal/events"
	"github.com/office-booking-api/internal/repository"
)

// BookingService определяет интерфейс бизнес-логики для бронирований
type BookingService interface {
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, query *dto.ListQuery) ([]domain.Booking, error)
	Today(ctx context.Context) ([]domain.Booking, error)
	ByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error)
	ByEmployee(ctx context.Context, employeeID int64) ([]domain.Booking, error)
	Update(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// BookingPolicy задаёт настраиваемые правила проверки бронирований
type BookingPolicy struct {
	// ValidateReferencesOnUpdate включает проверку существования нового
	// resource_id/employee_id при обновлении, так же как при создании.
	ValidateReferencesOnUpdate bool
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	resRepo     repository.ResourceRepository
	empRepo     repository.EmployeeRepository
	tx          repository.Transactor
	publisher   events.Publisher
	policy      BookingPolicy
	logger      *slog.Logger
	now         func() time.Time

	// writeMu сериализует изменения бронирований в пределах процесса.
	// Чтение его не захватывает.
	writeMu sync.Mutex
}

// BookingServiceOption настраивает сервис бронирований
type BookingServiceOption func(*bookingService)

// WithClock подменяет источник текущего времени
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *bookingService) {
		s.now = now
	}
}

// WithPublisher задаёт издателя событий
func WithPublisher(p events.Publisher) BookingServiceOption {
	return func(s *bookingService) {
		s.publisher = p
	}
}

// NewBookingService создаёт новый экземпляр сервиса
func NewBookingService(
	bookingRepo repository.BookingRepository,
	resRepo repository.ResourceRepository,
	empRepo repository.EmployeeRepository,
	tx repository.Transactor,
	policy BookingPolicy,
	logger *slog.Logger,
	opts ...BookingServiceOption,
) BookingService {
	s := &bookingService{
		bookingRepo: bookingRepo,
		resRepo:     resRepo,
		empRepo:     empRepo,
		tx:          tx,
		publisher:   events.NopPublisher{},
		policy:      policy,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create проверяет и сохраняет новое бронирование.
// Порядок проверок: интервал, ресурс, сотрудник, пересечения.
func (s *bookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*domain.Booking, error) {
	booking := &domain.Booking{
		ResourceID: req.ResourceID,
		EmployeeID: req.EmployeeID,
		Date:       *req.Date,
		StartTime:  *req.StartTime,
		EndTime:    *req.EndTime,
	}

	if !booking.Slot().Valid() {
		return nil, domain.ErrInvalidInterval
	}

	err := s.locked(ctx, func(ctx context.Context) error {
		if _, err := s.resRepo.GetByID(ctx, booking.ResourceID); err != nil {
			return err
		}
		if _, err := s.empRepo.GetByID(ctx, booking.EmployeeID); err != nil {
			return err
		}
		if err := s.ensureSlotFree(ctx, booking, nil); err != nil {
			return err
		}
		return s.bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		slog.Int64("id", booking.ID),
		slog.Int64("resource_id", booking.ResourceID),
		slog.Int64("employee_id", booking.EmployeeID),
		slog.String("date", booking.Date.String()),
		slog.String("start_time", booking.StartTime.String()),
		slog.String("end_time", booking.EndTime.String()),
	)
	s.publish(ctx, events.BookingCreated, booking)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookingRepo.GetDetailedByID(ctx, id)
}

func (s *bookingService) List(ctx context.Context, query *dto.ListQuery) ([]domain.Booking, error) {
	return s.bookingRepo.List(ctx, query.Skip, query.Limit)
}

func (s *bookingService) Today(ctx context.Context) ([]domain.Booking, error) {
	return s.bookingRepo.ListByDate(ctx, domain.DateOf(s.now()))
}

func (s *bookingService) ByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error) {
	if _, err := s.resRepo.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByResource(ctx, resourceID)
}

func (s *bookingService) ByEmployee(ctx context.Context, employeeID int64) ([]domain.Booking, error) {
	if _, err := s.empRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListByEmployee(ctx, employeeID)
}

// Update накладывает переданные поля на текущее бронирование и повторно
// проверяет получившийся интервал, исключая само бронирование из поиска пересечений.
func (s *bookingService) Update(ctx context.Context, id int64, req *dto.UpdateBookingRequest) (*domain.Booking, error) {
	var updated *domain.Booking
	err := s.locked(ctx, func(ctx context.Context) error {
		existing, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		merged := mergeBooking(existing, req)

		if !merged.Slot().Valid() {
			return domain.ErrInvalidInterval
		}

		if s.policy.ValidateReferencesOnUpdate {
			if err := s.ensureReferences(ctx, req); err != nil {
				return err
			}
		}

		if err := s.ensureSlotFree(ctx, merged, &id); err != nil {
			return err
		}

		if err := s.bookingRepo.Update(ctx, merged); err != nil {
			return err
		}
		updated = merged
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking updated", slog.Int64("id", id))
	s.publish(ctx, events.BookingUpdated, updated)

	return updated, nil
}

func (s *bookingService) Delete(ctx context.Context, id int64) error {
	var deleted *domain.Booking
	err := s.locked(ctx, func(ctx context.Context) error {
		existing, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		deleted = existing
		return s.bookingRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("booking deleted", slog.Int64("id", id))
	s.publish(ctx, events.BookingDeleted, deleted)

	return nil
}

// locked выполняет fn в транзакции под writeMu. Блокировка снимается сразу после
// фиксации, публикация событий идёт уже без неё.
func (s *bookingService) locked(ctx context.Context, fn func(ctx context.Context) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.tx.WithinTransaction(ctx, fn)
}

// mergeBooking возвращает копию бронирования с применёнными полями запроса
func mergeBooking(existing *domain.Booking, req *dto.UpdateBookingRequest) *domain.Booking {
	merged := *existing
	merged.Resource = nil
	merged.Employee = nil

	if req.ResourceID != nil {
		merged.ResourceID = *req.ResourceID
	}
	if req.EmployeeID != nil {
		merged.EmployeeID = *req.EmployeeID
	}
	if req.Date != nil {
		merged.Date = *req.Date
	}
	if req.StartTime != nil {
		merged.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		merged.EndTime = *req.EndTime
	}

	return &merged
}

// ensureReferences проверяет существование явно переданных ресурса и сотрудника
func (s *bookingService) ensureReferences(ctx context.Context, req *dto.UpdateBookingRequest) error {
	if req.ResourceID != nil {
		if _, err := s.resRepo.GetByID(ctx, *req.ResourceID); err != nil {
			return err
		}
	}
	if req.EmployeeID != nil {
		if _, err := s.empRepo.GetByID(ctx, *req.EmployeeID); err != nil {
			return err
		}
	}
	return nil
}

func (s *bookingService) ensureSlotFree(ctx context.Context, b *domain.Booking, excludeID *int64) error {
	conflict, err := s.bookingRepo.HasConflict(ctx, b.ResourceID, b.Date, b.StartTime, b.EndTime, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return domain.ErrSlotConflict
	}
	return nil
}

// publish отправляет событие после фиксации транзакции; ошибка брокера не отменяет операцию
func (s *bookingService) publish(ctx context.Context, eventType string, b *domain.Booking) {
	if err := s.publisher.Publish(ctx, events.NewBookingEvent(eventType, b, s.now())); err != nil {
		s.logger.Warn("failed to publish booking event",
			slog.String("type", eventType),
			slog.Int64("id", b.ID),
			slog.Any("error", err),
		)
	}
}
