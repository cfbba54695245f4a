package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrInvalidInterval  = errors.New("end time must be after start time")
	ErrResourceNotFound = errors.New("resource not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSlotConflict     = errors.New("resource is already booked for this time slot")
	ErrDuplicateEmail   = errors.New("email already registered")
)
