package dto

import (
	"encoding/json"
	"time"

	"github.com/office-booking-api/internal/domain"
)

// CreateEmployeeRequest - запрос на создание сотрудника
type CreateEmployeeRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
}

// UpdateEmployeeRequest - запрос на частичное обновление сотрудника
type UpdateEmployeeRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=100"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
}

// CreateResourceRequest - запрос на создание ресурса
type CreateResourceRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Type     string `json:"type" validate:"required,min=1,max=50"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=0"`
}

// UpdateResourceRequest - запрос на частичное обновление ресурса.
// "capacity": null сбрасывает вместимость, отсутствие поля оставляет её как есть.
type UpdateResourceRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Type     *string `json:"type" validate:"omitempty,min=1,max=50"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`

	// CapacitySet - поле capacity присутствовало в запросе (в том числе как null)
	CapacitySet bool `json:"-"`
}

func (r *UpdateResourceRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateResourceRequest
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	_, decoded.CapacitySet = fields["capacity"]

	*r = UpdateResourceRequest(decoded)
	return nil
}

// CreateBookingRequest - запрос на создание бронирования
type CreateBookingRequest struct {
	ResourceID int64         `json:"resource_id" validate:"required,gt=0"`
	EmployeeID int64         `json:"employee_id" validate:"required,gt=0"`
	Date       *domain.Date  `json:"date" validate:"required"`
	StartTime  *domain.Clock `json:"start_time" validate:"required"`
	EndTime    *domain.Clock `json:"end_time" validate:"required"`
}

// UpdateBookingRequest - запрос на частичное обновление бронирования.
// Незаданные (nil) поля сохраняют текущие значения.
type UpdateBookingRequest struct {
	ResourceID *int64        `json:"resource_id" validate:"omitempty,gt=0"`
	EmployeeID *int64        `json:"employee_id" validate:"omitempty,gt=0"`
	Date       *domain.Date  `json:"date"`
	StartTime  *domain.Clock `json:"start_time"`
	EndTime    *domain.Clock `json:"end_time"`
}

// ListQuery - параметры постраничной выборки
type ListQuery struct {
	Skip  int `validate:"min=0"`
	Limit int `validate:"min=1,max=1000"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// ResourceResponse - ответ с данными ресурса
type ResourceResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Capacity  *int      `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingResponse - ответ с данными бронирования
type BookingResponse struct {
	ID         int64        `json:"id"`
	ResourceID int64        `json:"resource_id"`
	EmployeeID int64        `json:"employee_id"`
	Date       domain.Date  `json:"date"`
	StartTime  domain.Clock `json:"start_time"`
	EndTime    domain.Clock `json:"end_time"`
}

// BookingDetailResponse - бронирование с вложенными ресурсом и сотрудником
type BookingDetailResponse struct {
	BookingResponse
	Resource *ResourceResponse `json:"resource,omitempty"`
	Employee *EmployeeResponse `json:"employee,omitempty"`
}

// ResourceUsageResponse - строка отчёта по загрузке ресурсов
type ResourceUsageResponse struct {
	ResourceID   int64   `json:"resource_id"`
	ResourceName string  `json:"resource_name"`
	TotalHours   float64 `json:"total_hours"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
