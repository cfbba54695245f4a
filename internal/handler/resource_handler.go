package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/office-booking-api/internal/dto"
	"github.com/office-booking-api/internal/service"
)

type ResourceHandler struct {
	responder
	resService service.ResourceService
	validator  *validator.Validate
}

func NewResourceHandler(resService service.ResourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{
		responder:  responder{logger: logger},
		resService: resService,
		validator:  validator.New(),
	}
}

func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", codeInvalidBody, err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", codeValidation, err.Error())
		return
	}

	res, err := h.resService.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, toResourceResponse(res))
}

func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseListQuery(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid query parameters", codeInvalidQuery, err.Error())
		return
	}

	if err := h.validator.Struct(&query); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", codeValidation, err.Error())
		return
	}

	resources, err := h.resService.List(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := make([]dto.ResourceResponse, len(resources))
	for i := range resources {
		resp[i] = toResourceResponse(&resources[i])
	}
	h.respondJSON(w, http.StatusOK, resp)
}

func (h *ResourceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid resource id", codeInvalidID, err.Error())
		return
	}

	res, err := h.resService.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toResourceResponse(res))
}

func (h *ResourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid resource id", codeInvalidID, err.Error())
		return
	}

	var req dto.UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", codeInvalidBody, err.Error())
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation error", codeValidation, err.Error())
		return
	}

	res, err := h.resService.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toResourceResponse(res))
}

func (h *ResourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := extractID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid resource id", codeInvalidID, err.Error())
		return
	}

	if err := h.resService.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
