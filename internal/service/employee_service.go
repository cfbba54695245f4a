package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/dto"
	"github.com/office-booking-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context, query *dto.ListQuery) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	empRepo     repository.EmployeeRepository
	bookingRepo repository.BookingRepository
	tx          repository.Transactor
	logger      *slog.Logger
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(
	empRepo repository.EmployeeRepository,
	bookingRepo repository.BookingRepository,
	tx repository.Transactor,
	logger *slog.Logger,
) EmployeeService {
	return &employeeService{
		empRepo:     empRepo,
		bookingRepo: bookingRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	email := normalizeEmail(req.Email)

	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	emp := &domain.Employee{
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
	}

	if err := s.empRepo.Create(ctx, emp); err != nil {
		return nil, err
	}

	s.logger.Info("employee created", slog.Int64("id", emp.ID))
	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.empRepo.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, query *dto.ListQuery) ([]domain.Employee, error) {
	return s.empRepo.List(ctx, query.Skip, query.Limit)
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	var updated domain.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.empRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Изменения применяются к копии, пока не пройдены все проверки
		updated = *emp

		if req.FullName != nil {
			updated.FullName = strings.TrimSpace(*req.FullName)
		}

		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if email != emp.Email {
				if err := s.ensureEmailFree(ctx, email, id); err != nil {
					return err
				}
			}
			updated.Email = email
		}

		return s.empRepo.Update(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", slog.Int64("id", id))
	return &updated, nil
}

// Delete удаляет сотрудника вместе с его бронированиями в одной транзакции
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	var removed int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.empRepo.GetByID(ctx, id); err != nil {
			return err
		}

		n, err := s.bookingRepo.DeleteByEmployeeID(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return s.empRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("employee deleted", slog.Int64("id", id), slog.Int64("bookings_removed", removed))
	return nil
}

// ensureEmailFree проверяет, что email не занят другим сотрудником (кроме selfID)
func (s *employeeService) ensureEmailFree(ctx context.Context, email string, selfID int64) error {
	existing, err := s.empRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return domain.ErrDuplicateEmail
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
