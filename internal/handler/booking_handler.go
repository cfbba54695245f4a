package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/office-booking-api/internal/domain"
	"github.com/office-booking-api/internal/dto"
	"github.com/office-booking-api/internal/service"
)

type BookingHandler struct {
	responder
	bookingService service.BookingService
	reportService  service.ReportService
	validator      *validator.Validate
}

func NewBookingHandler(
	bookingService service.BookingService,
	reportService service.ReportService,
	logger *slog.Logger,
) *BookingHandler {
	return &BookingHandler{
		responder:      responder{logger: logger},
		bookingService: bookingService,
		reportService:  reportService,
		validator:      validator.New(),
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", codeInvalidBody, err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", codeValidation, err.Error())
		return
	}

	booking, err := h.bookingService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query parameters", codeInvalidQuery, err.Error())
		return
	}

	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", codeValidation, err.Error())
		return
	}

	bookings, err := h.bookingService.List(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondBookings(w, bookings)
}

func (h *BookingHandler) Today(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.Today(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondBookings(w, bookings)
}

func (h *BookingHandler) ByResource(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid resource id", codeInvalidID, err.Error())
		return
	}

	bookings, err := h.bookingService.ByResource(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondBookings(w, bookings)
}

func (h *BookingHandler) ByEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid employee id", codeInvalidID, err.Error())
		return
	}

	bookings, err := h.bookingService.ByEmployee(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondBookings(w, bookings)
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid booking id", codeInvalidID, err.Error())
		return
	}

	booking, err := h.bookingService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toBookingDetailResponse(booking))
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid booking id", codeInvalidID, err.Error())
		return
	}

	var req dto.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", codeInvalidBody, err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", codeValidation, err.Error())
		return
	}

	booking, err := h.bookingService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid booking id", codeInvalidID, err.Error())
		return
	}

	if err := h.bookingService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResourceUsage отдаёт отчёт по загрузке ресурсов; часы округляются до сотых
func (h *BookingHandler) ResourceUsage(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.ResourceUsage(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.ResourceUsageResponse, len(report))
	for i, usage := range report {
		resp[i] = dto.ResourceUsageResponse{
			ResourceID:   usage.ResourceID,
			ResourceName: usage.ResourceName,
			TotalHours:   math.Round(usage.TotalHours*100) / 100,
		}
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) respondBookings(w http.ResponseWriter, bookings []domain.Booking) {
	resp := make([]dto.BookingDetailResponse, len(bookings))
	for i := range bookings {
		resp[i] = toBookingDetailResponse(&bookings[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}
