// Package testutil открывает изолированную БД SQLite в памяти с применёнными миграциями.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/migrations"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB возвращает новую пустую БД для теста. Каждый вызов получает отдельную базу.
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:booking_test_%d?mode=memory&cache=shared&_foreign_keys=1", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("failed to get sql.DB: %v", err)
	}
	// Одно соединение: база в памяти живёт, пока открыто хотя бы одно соединение,
	// а SQLite всё равно допускает одного писателя.
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := migrations.Up(sqlDB, migrations.DialectSQLite); err != nil {
		tb.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// MustCreateEmployee сохраняет сотрудника напрямую через gorm
func MustCreateEmployee(tb testing.TB, db *gorm.DB, fullName, email string) *domain.Employee {
	tb.Helper()
	emp := &domain.Employee{FullName: fullName, Email: email}
	if err := db.Create(emp).Error; err != nil {
		tb.Fatalf("failed to create employee: %v", err)
	}
	return emp
}

// MustCreateResource сохраняет ресурс напрямую через gorm
func MustCreateResource(tb testing.TB, db *gorm.DB, name, resourceType string) *domain.Resource {
	tb.Helper()
	res := &domain.Resource{Name: name, Type: resourceType}
	if err := db.Create(res).Error; err != nil {
		tb.Fatalf("failed to create resource: %v", err)
	}
	return res
}

// MustCreateBooking сохраняет бронирование без проверок пересечений
func MustCreateBooking(tb testing.TB, db *gorm.DB, resourceID, employeeID int64, date domain.Date, start, end domain.Clock) *domain.Booking {
	tb.Helper()
	b := &domain.Booking{
		ResourceID: resourceID,
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	}
	if err := db.Omit("Resource", "Employee").Create(b).Error; err != nil {
		tb.Fatalf("failed to create booking: %v", err)
	}
	return b
}
