package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/dto"
)

const (
	defaultSkip  = 0
	defaultLimit = 100
)

// Коды ошибок в теле ответа
const (
	codeInvalidBody      = "invalid_request_body"
	codeValidation       = "validation_error"
	codeInvalidID        = "invalid_id"
	codeInvalidQuery     = "invalid_query"
	codeInvalidInterval  = "invalid_interval"
	codeDuplicateEmail   = "duplicate_email"
	codeResourceNotFound = "resource_not_found"
	codeEmployeeNotFound = "employee_not_found"
	codeBookingNotFound  = "booking_not_found"
	codeSlotConflict     = "slot_conflict"
	codeNotFound         = "not_found"
	codeInternal         = "internal_error"
)

// responder содержит общие для всех обработчиков методы формирования ответов
type responder struct {
	logger *slog.Logger
}

func (h responder) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h responder) respondError(w http.ResponseWriter, status int, errMsg, code, details string) {
	w.WriteHeader(status)
	resp := dto.ErrorResponse{Error: errMsg, Code: code}
	if details != "" {
		resp.Message = details
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

func (h responder) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInterval):
		h.respondError(w, http.StatusBadRequest, "end_time must be later than start_time", codeInvalidInterval, "")
	case errors.Is(err, domain.ErrDuplicateEmail):
		h.respondError(w, http.StatusBadRequest, "employee with this email already exists", codeDuplicateEmail, "")
	case errors.Is(err, domain.ErrResourceNotFound):
		h.respondError(w, http.StatusNotFound, "resource not found", codeResourceNotFound, "")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", codeEmployeeNotFound, "")
	case errors.Is(err, domain.ErrBookingNotFound):
		h.respondError(w, http.StatusNotFound, "booking not found", codeBookingNotFound, "")
	case errors.Is(err, domain.ErrSlotConflict):
		h.respondError(w, http.StatusConflict, "resource is already booked for this time", codeSlotConflict, "")
	default:
		h.logger.Error("internal error",
			slog.Any("error", err),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error", codeInternal, "")
	}
}

func extractID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	if raw == "" {
		return 0, errors.New("id is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be an integer: %q", raw)
	}
	if id <= 0 {
		return 0, fmt.Errorf("id must be positive: %d", id)
	}
	return id, nil
}

// parseListQuery читает skip/limit; отсутствующие параметры получают значения по умолчанию
func parseListQuery(r *http.Request) (dto.ListQuery, error) {
	query := dto.ListQuery{
		Skip:  defaultSkip,
		Limit: defaultLimit,
	}

	if skipStr := r.URL.Query().Get("skip"); skipStr != "" {
		skip, err := strconv.Atoi(skipStr)
		if err != nil {
			return query, fmt.Errorf("skip must be an integer: %q", skipStr)
		}
		query.Skip = skip
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return query, fmt.Errorf("limit must be an integer: %q", limitStr)
		}
		query.Limit = limit
	}

	return query, nil
}

func toEmployeeResponse(emp *domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:        emp.ID,
		FullName:  emp.FullName,
		Email:     emp.Email,
		CreatedAt: emp.CreatedAt,
	}
}

func toResourceResponse(res *domain.Resource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:        res.ID,
		Name:      res.Name,
		Type:      res.Type,
		Capacity:  res.Capacity,
		CreatedAt: res.CreatedAt,
	}
}

func toBookingResponse(b *domain.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:         b.ID,
		ResourceID: b.ResourceID,
		EmployeeID: b.EmployeeID,
		Date:       b.Date,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
}

func toBookingDetailResponse(b *domain.Booking) dto.BookingDetailResponse {
	resp := dto.BookingDetailResponse{BookingResponse: toBookingResponse(b)}

	if b.Resource != nil {
		res := toResourceResponse(b.Resource)
		resp.Resource = &res
	}
	if b.Employee != nil {
		emp := toEmployeeResponse(b.Employee)
		resp.Employee = &emp
	}

	return resp
}
