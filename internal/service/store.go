package service

import (
	"context"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
)

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

// RequestStore persists walking requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, req *model.Request) error
	GetRequestByID(ctx context.Context, id string) (*model.Request, error)
	ListRequests(ctx context.Context, filter repository.RequestFilter, limit, offset int) ([]*model.Request, error)
	CountRequests(ctx context.Context, filter repository.RequestFilter) (int64, error)
	UpdateRequest(ctx context.Context, req *model.Request) error
	DeleteRequest(ctx context.Context, id string) error
}

// WalkerStore persists walker profiles.
type WalkerStore interface {
	CreateWalker(ctx context.Context, w *model.Walker) error
	GetWalkerByID(ctx context.Context, id string) (*model.Walker, error)
	ListWalkers(ctx context.Context, filter repository.WalkerFilter, limit, offset int) ([]*model.Walker, error)
	CountWalkers(ctx context.Context, filter repository.WalkerFilter) (int64, error)
	UpdateWalker(ctx context.Context, w *model.Walker) error
	DeleteWalker(ctx context.Context, id string) error
}
