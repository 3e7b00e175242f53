// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is a user without credentials.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UserEnvelope wraps a user response.
type UserEnvelope struct {
	User *UserResponse `json:"user"`
}

// RequestEnvelope wraps a single request.
type RequestEnvelope struct {
	Request *model.Request `json:"request"`
}

// RequestListResponse is one page of requests.
type RequestListResponse struct {
	Data     []*model.Request `json:"data"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// WalkerEnvelope wraps a single walker.
type WalkerEnvelope struct {
	Walker *model.Walker `json:"walker"`
}

// WalkerListResponse is one page of walkers.
type WalkerListResponse struct {
	Data       []*model.Walker `json:"data"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// ToUserResponse converts a User model to UserResponse DTO.
func ToUserResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ToRequestListResponse converts a page of requests. Data is never null.
func ToRequestListResponse(items []*model.Request, total int64, page, pageSize int) *RequestListResponse {
	if items == nil {
		items = []*model.Request{}
	}
	return &RequestListResponse{Data: items, Total: total, Page: page, PageSize: pageSize}
}

// ToWalkerListResponse converts a page of walkers. Data is never null.
func ToWalkerListResponse(items []*model.Walker, total int64, page, pageSize, totalPages int) *WalkerListResponse {
	if items == nil {
		items = []*model.Walker{}
	}
	return &WalkerListResponse{Data: items, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}
