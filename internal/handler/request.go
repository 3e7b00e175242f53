package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pawsitivewalks/pawsitivewalks/internal/auth"
	"github.com/pawsitivewalks/pawsitivewalks/internal/handler/dto"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
	"github.com/pawsitivewalks/pawsitivewalks/internal/service"
)

// RequestHandler handles HTTP requests for walking requests.
type RequestHandler struct {
	svc    *service.RequestService
	logger *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(svc *service.RequestService, logger *slog.Logger) *RequestHandler {
	return &RequestHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/requests.
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	input := service.RequestListInput{
		Filter: repository.RequestFilter{
			CreatedBy:     query.Get("createdBy"),
			Size:          query.Get("size"),
			Location:      query.Get("location"),
			PreferredTime: query.Get("preferredTime"),
			Status:        query.Get("status"),
			OpenToSocial:  queryBool(r, "openToSocial"),
		},
		Page: service.Page{
			Page:     queryInt(r, "page"),
			PageSize: queryInt(r, "pageSize"),
		},
	}

	result, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRequestListResponse(result.Data, result.Total, result.Page, result.PageSize))
}

// Get handles GET /api/requests/{id}.
func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RequestEnvelope{Request: req})
}

// Create handles POST /api/requests.
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.RequestInput
	if !decodeJSON(w, r, &input) {
		return
	}

	req, err := h.svc.Create(r.Context(), input, auth.UserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("request_created", "request_id", req.ID, "created_by", req.CreatedBy)
	writeJSON(w, http.StatusCreated, dto.RequestEnvelope{Request: req})
}

// Update handles PUT /api/requests/{id}.
func (h *RequestHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input service.RequestInput
	if !decodeJSON(w, r, &input) {
		return
	}

	req, err := h.svc.Update(r.Context(), id, input, auth.UserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("request_updated", "request_id", req.ID, "status", string(req.Status))
	writeJSON(w, http.StatusOK, dto.RequestEnvelope{Request: req})
}

// Delete handles DELETE /api/requests/{id}.
func (h *RequestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("request_deleted", "request_id", id)
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Request deleted successfully"})
}
