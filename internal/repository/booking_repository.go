package repository

import (
	"context"
	"errors"

	"github.com/office-booking-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingRepository определяет интерфейс для работы с бронированиями
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetDetailedByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, skip, limit int) ([]domain.Booking, error)
	ListByDate(ctx context.Context, date domain.Date) ([]domain.Booking, error)
	ListByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	DeleteByResourceID(ctx context.Context, resourceID int64) (int64, error)
	DeleteByEmployeeID(ctx context.Context, employeeID int64) (int64, error)
	HasConflict(ctx context.Context, resourceID int64, date domain.Date, start, end domain.Clock, excludeID *int64) (bool, error)
	UsageSince(ctx context.Context, since domain.Date) ([]UsageRow, error)
}

// UsageRow - одно бронирование в отчётном окне вместе с названием ресурса
type UsageRow struct {
	ResourceID   int64
	ResourceName string
	StartTime    domain.Clock
	EndTime      domain.Clock
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository создаёт новый экземпляр репозитория
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return conn(ctx, r.db).Omit(clause.Associations).Create(booking).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	err := conn(ctx, r.db).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) GetDetailedByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.detailed(ctx).First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context, skip, limit int) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	err := r.detailed(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) ListByDate(ctx context.Context, date domain.Date) ([]domain.Booking, error) {
	return r.listOrdered(ctx, "date = ?", date)
}

func (r *bookingRepository) ListByResource(ctx context.Context, resourceID int64) ([]domain.Booking, error) {
	return r.listOrdered(ctx, "resource_id = ?", resourceID)
}

func (r *bookingRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]domain.Booking, error) {
	return r.listOrdered(ctx, "employee_id = ?", employeeID)
}

func (r *bookingRepository) listOrdered(ctx context.Context, cond string, arg any) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	err := r.detailed(ctx).
		Where(cond, arg).
		Order("date ASC").
		Order("start_time ASC").
		Order("id ASC").
		Find(&bookings).Error
	return bookings, err
}

// detailed подгружает связанные ресурс и сотрудника
func (r *bookingRepository) detailed(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("Resource").Preload("Employee")
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return updateRow(ctx, r.db, booking, domain.ErrBookingNotFound)
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	result := conn(ctx, r.db).Delete(&domain.Booking{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *bookingRepository) DeleteByResourceID(ctx context.Context, resourceID int64) (int64, error) {
	result := conn(ctx, r.db).Where("resource_id = ?", resourceID).Delete(&domain.Booking{})
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) DeleteByEmployeeID(ctx context.Context, employeeID int64) (int64, error) {
	result := conn(ctx, r.db).Where("employee_id = ?", employeeID).Delete(&domain.Booking{})
	return result.RowsAffected, result.Error
}

// HasConflict проверяет, пересекается ли интервал [start, end) с существующими
// бронированиями ресурса на дату. excludeID исключает бронирование из проверки (при обновлении).
func (r *bookingRepository) HasConflict(
	ctx context.Context,
	resourceID int64,
	date domain.Date,
	start, end domain.Clock,
	excludeID *int64,
) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&domain.Booking{}).
		Where("resource_id = ? AND date = ?", resourceID, date).
		Where("start_time < ? AND end_time > ?", end, start)

	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	err := query.Count(&count).Error
	return count > 0, err
}

func (r *bookingRepository) UsageSince(ctx context.Context, since domain.Date) ([]UsageRow, error) {
	rows := make([]UsageRow, 0)
	err := conn(ctx, r.db).
		Table("bookings").
		Select("bookings.resource_id, resources.name AS resource_name, bookings.start_time, bookings.end_time").
		Joins("JOIN resources ON resources.id = bookings.resource_id").
		Where("bookings.date >= ?", since).
		Order("bookings.resource_id ASC").
		Scan(&rows).Error
	return rows, err
}
