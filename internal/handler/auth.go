package handler

import (
	"log/slog"
	"net/http"

	"github.com/pawsitivewalks/pawsitivewalks/internal/auth"
	"github.com/pawsitivewalks/pawsitivewalks/internal/handler/dto"
	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/service"
)

// SessionManager starts and destroys user sessions.
type SessionManager interface {
	Start(w http.ResponseWriter, r *http.Request, userID string) error
	Destroy(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler handles registration, login, logout and session lookup.
type AuthHandler struct {
	svc      *service.AuthService
	sessions SessionManager
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, sessions SessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		sessions: sessions,
		logger:   logger,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	if !h.startSession(w, r, user) {
		return
	}

	h.logger.Info("user_registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, dto.UserEnvelope{User: dto.ToUserResponse(user)})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	if !h.startSession(w, r, user) {
		return
	}

	h.logger.Info("user_logged_in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, dto.UserEnvelope{User: dto.ToUserResponse(user)})
}

// Logout handles GET /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		h.logger.Error("failed to destroy session", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.svc.RecordLogout()
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserEnvelope{User: dto.ToUserResponse(user)})
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *model.User) bool {
	if err := h.sessions.Start(w, r, user.ID); err != nil {
		h.logger.Error("failed to start session",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID),
		)
		writeError(w, http.StatusInternalServerError, "SESSION_ERROR", "Internal Server Error")
		return false
	}
	return true
}
