package domain

import (
	"time"
)

// Employee представляет сотрудника
type Employee struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName  string    `json:"full_name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}

// Resource представляет бронируемый ресурс (переговорная, проектор)
type Resource struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Type      string    `json:"type" gorm:"type:varchar(50);not null"`
	Capacity  *int      `json:"capacity"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Resource) TableName() string {
	return "resources"
}

// Booking представляет бронирование ресурса сотрудником на интервал в пределах одного дня
type Booking struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ResourceID int64     `json:"resource_id" gorm:"not null;index"`
	EmployeeID int64     `json:"employee_id" gorm:"not null;index"`
	Date       Date      `json:"date" gorm:"column:date;type:date;not null"`
	StartTime  Clock     `json:"start_time" gorm:"type:time;not null"`
	EndTime    Clock     `json:"end_time" gorm:"type:time;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	Resource *Resource `json:"-" gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE"`
	Employee *Employee `json:"-" gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// TableName задаёт имя таблицы для GORM
func (Booking) TableName() string {
	return "bookings"
}

// Slot возвращает временной интервал бронирования
func (b *Booking) Slot() Slot {
	return Slot{Start: b.StartTime, End: b.EndTime}
}

// ResourceUsage - суммарная загрузка ресурса за отчётный период
type ResourceUsage struct {
	ResourceID   int64
	ResourceName string
	TotalHours   float64
}
