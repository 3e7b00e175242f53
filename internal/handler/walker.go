package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pawsitivewalks/pawsitivewalks/internal/auth"
	"github.com/pawsitivewalks/pawsitivewalks/internal/handler/dto"
	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
	"github.com/pawsitivewalks/pawsitivewalks/internal/service"
)

// WalkerHandler handles HTTP requests for walker profiles.
type WalkerHandler struct {
	svc    *service.WalkerService
	logger *slog.Logger
}

// NewWalkerHandler creates a new WalkerHandler.
func NewWalkerHandler(svc *service.WalkerService, logger *slog.Logger) *WalkerHandler {
	return &WalkerHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/walkers.
func (h *WalkerHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := repository.WalkerFilter{
		Size:     query.Get("size"),
		Location: query.Get("location"),
		Time:     query.Get("time"),
	}
	if exp, err := strconv.Atoi(query.Get("experience")); err == nil {
		filter.MinExperience = &exp
	}
	switch query.Get("availability") {
	case "weekdays":
		filter.Weekdays = true
	case "weekends":
		filter.Weekends = true
	}

	myPosts, _ := strconv.ParseBool(query.Get("myPosts"))

	result, err := h.svc.List(r.Context(), service.WalkerListInput{
		Filter:      filter,
		MyPosts:     myPosts,
		RequesterID: auth.UserIDFromContext(r.Context()),
		Page: service.Page{
			Page:     queryInt(r, "page"),
			PageSize: queryInt(r, "pageSize"),
		},
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToWalkerListResponse(result.Data, result.Total, result.Page, result.PageSize, result.TotalPages))
}

// Get handles GET /api/walkers/{id}.
func (h *WalkerHandler) Get(w http.ResponseWriter, r *http.Request) {
	walker, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.WalkerEnvelope{Walker: walker})
}

// Create handles POST /api/walkers.
func (h *WalkerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.WalkerInput
	if !decodeJSON(w, r, &input) {
		return
	}

	walker, err := h.svc.Create(r.Context(), input, auth.UserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logWalker("walker_created", walker)
	writeJSON(w, http.StatusCreated, dto.WalkerEnvelope{Walker: walker})
}

// Update handles PUT /api/walkers/{id}.
func (h *WalkerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input service.WalkerInput
	if !decodeJSON(w, r, &input) {
		return
	}

	walker, err := h.svc.Update(r.Context(), id, input, auth.UserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logWalker("walker_updated", walker)
	writeJSON(w, http.StatusOK, dto.WalkerEnvelope{Walker: walker})
}

// Delete handles DELETE /api/walkers/{id}.
func (h *WalkerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id, auth.UserIDFromContext(r.Context())); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("walker_deleted", "walker_id", id)
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Walker deleted successfully"})
}

func (h *WalkerHandler) logWalker(msg string, walker *model.Walker) {
	h.logger.Info(msg,
		"walker_id", walker.ID,
		"user_id", walker.UserID,
		"service_areas", len(walker.ServiceAreas),
	)
}
