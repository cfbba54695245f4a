package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/dto"
	"github.com/office-booking-api/internal/repository"
)

// ResourceService определяет интерфейс бизнес-логики для ресурсов
type ResourceService interface {
	Create(ctx context.Context, req *dto.CreateResourceRequest) (*domain.Resource, error)
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	List(ctx context.Context, query *dto.ListQuery) ([]domain.Resource, error)
	Update(ctx context.Context, id int64, req *dto.UpdateResourceRequest) (*domain.Resource, error)
	Delete(ctx context.Context, id int64) error
}

type resourceService struct {
	resRepo     repository.ResourceRepository
	bookingRepo repository.BookingRepository
	tx          repository.Transactor
	logger      *slog.Logger
}

// NewResourceService создаёт новый экземпляр сервиса
func NewResourceService(
	resRepo repository.ResourceRepository,
	bookingRepo repository.BookingRepository,
	tx repository.Transactor,
	logger *slog.Logger,
) ResourceService {
	return &resourceService{
		resRepo:     resRepo,
		bookingRepo: bookingRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (s *resourceService) Create(ctx context.Context, req *dto.CreateResourceRequest) (*domain.Resource, error) {
	res := &domain.Resource{
		Name:     strings.TrimSpace(req.Name),
		Type:     strings.TrimSpace(req.Type),
		Capacity: req.Capacity,
	}

	if err := s.resRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("resource created", slog.Int64("id", res.ID), slog.String("type", res.Type))
	return res, nil
}

func (s *resourceService) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	return s.resRepo.GetByID(ctx, id)
}

func (s *resourceService) List(ctx context.Context, query *dto.ListQuery) ([]domain.Resource, error) {
	return s.resRepo.List(ctx, query.Skip, query.Limit)
}

func (s *resourceService) Update(ctx context.Context, id int64, req *dto.UpdateResourceRequest) (*domain.Resource, error) {
	var res *domain.Resource
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.resRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			res.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			res.Type = strings.TrimSpace(*req.Type)
		}
		switch {
		case req.Capacity != nil:
			capacity := *req.Capacity
			res.Capacity = &capacity
		case req.CapacitySet:
			res.Capacity = nil
		}

		return s.resRepo.Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("resource updated", slog.Int64("id", id))
	return res, nil
}

// Delete удаляет ресурс вместе с его бронированиями в одной транзакции
func (s *resourceService) Delete(ctx context.Context, id int64) error {
	var removed int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.resRepo.GetByID(ctx, id); err != nil {
			return err
		}

		n, err := s.bookingRepo.DeleteByResourceID(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return s.resRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("resource deleted", slog.Int64("id", id), slog.Int64("bookings_removed", removed))
	return nil
}
