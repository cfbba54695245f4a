package repository

import (
	"context"
	"errors"

	"github.com/office-booking-api/internal/domain"
	"gorm.io/gorm"
)

// ResourceRepository определяет интерфейс для работы с ресурсами
type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) error
	GetByID(ctx context.Context, id int64) (*domain.Resource, error)
	List(ctx context.Context, skip, limit int) ([]domain.Resource, error)
	Update(ctx context.Context, res *domain.Resource) error
	Delete(ctx context.Context, id int64) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository создаёт новый экземпляр репозитория
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	return conn(ctx, r.db).Create(res).Error
}

func (r *resourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	var res domain.Resource
	err := conn(ctx, r.db).First(&res, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *resourceRepository) List(ctx context.Context, skip, limit int) ([]domain.Resource, error) {
	resources := make([]domain.Resource, 0)
	err := conn(ctx, r.db).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&resources).Error
	return resources, err
}

func (r *resourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	return updateRow(ctx, r.db, res, domain.ErrResourceNotFound)
}

func (r *resourceRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&domain.Resource{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}
