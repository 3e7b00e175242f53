// Package memstore provides an in-memory stand-in for the Postgres repository.
package memstore

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
)

// Store is an in-memory stand-in for repository.Repository.
// It mirrors the repository's filter, ordering and sentinel error semantics.
type Store struct {
	mu       sync.Mutex
	users    map[string]*model.User
	requests map[string]*model.Request
	walkers  map[string]*model.Walker

	// Err, when set, is returned by every call.
	Err error
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:    make(map[string]*model.User),
		requests: make(map[string]*model.Request),
		walkers:  make(map[string]*model.Walker),
	}
}

// Ping implements the health checker contract.
func (s *Store) Ping(ctx context.Context) error {
	return s.Err
}

// CreateUser stores a copy of user, enforcing email uniqueness.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// GetUserByID returns a copy of the user with id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail returns a copy of the user with email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// CreateRequest stores a copy of req.
func (s *Store) CreateRequest(ctx context.Context, req *model.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	cp := *req
	s.requests[req.ID] = &cp
	return nil
}

// GetRequestByID returns a copy of the request with id.
func (s *Store) GetRequestByID(ctx context.Context, id string) (*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

// ListRequests pages through matching requests newest first.
func (s *Store) ListRequests(ctx context.Context, filter repository.RequestFilter, limit, offset int) ([]*model.Request, error) {
	matched, err := s.matchRequests(filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt.UnixNano(), matched[j].CreatedAt.UnixNano(), matched[i].ID, matched[j].ID)
	})
	return window(matched, limit, offset), nil
}

// CountRequests counts matching requests.
func (s *Store) CountRequests(ctx context.Context, filter repository.RequestFilter) (int64, error) {
	matched, err := s.matchRequests(filter)
	return int64(len(matched)), err
}

// UpdateRequest replaces a stored request.
func (s *Store) UpdateRequest(ctx context.Context, req *model.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.requests[req.ID]
	if !ok {
		return repository.ErrRequestNotFound
	}
	cp := *req
	cp.CreatedBy = existing.CreatedBy
	cp.CreatedAt = existing.CreatedAt
	s.requests[req.ID] = &cp
	return nil
}

// DeleteRequest removes a stored request.
func (s *Store) DeleteRequest(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.requests[id]; !ok {
		return repository.ErrRequestNotFound
	}
	delete(s.requests, id)
	return nil
}

// CreateWalker stores a copy of w.
func (s *Store) CreateWalker(ctx context.Context, w *model.Walker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.walkers[w.ID] = cloneWalker(w)
	return nil
}

// GetWalkerByID returns a copy of the walker with id.
func (s *Store) GetWalkerByID(ctx context.Context, id string) (*model.Walker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	w, ok := s.walkers[id]
	if !ok {
		return nil, repository.ErrWalkerNotFound
	}
	return cloneWalker(w), nil
}

// ListWalkers pages through matching walkers newest first.
func (s *Store) ListWalkers(ctx context.Context, filter repository.WalkerFilter, limit, offset int) ([]*model.Walker, error) {
	matched, err := s.matchWalkers(filter)
	if err != nil {
		return nil, err
	}
	sort.Slice(matched, func(i, j int) bool {
		return newerFirst(matched[i].CreatedAt.UnixNano(), matched[j].CreatedAt.UnixNano(), matched[i].ID, matched[j].ID)
	})
	return window(matched, limit, offset), nil
}

// CountWalkers counts matching walkers.
func (s *Store) CountWalkers(ctx context.Context, filter repository.WalkerFilter) (int64, error) {
	matched, err := s.matchWalkers(filter)
	return int64(len(matched)), err
}

// UpdateWalker replaces the editable fields of a stored walker.
func (s *Store) UpdateWalker(ctx context.Context, w *model.Walker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	existing, ok := s.walkers[w.ID]
	if !ok {
		return repository.ErrWalkerNotFound
	}
	cp := cloneWalker(w)
	cp.Rating = existing.Rating
	cp.CompletedWalks = existing.CompletedWalks
	cp.UserID = existing.UserID
	cp.CreatedAt = existing.CreatedAt
	s.walkers[w.ID] = cp
	return nil
}

// DeleteWalker removes a stored walker.
func (s *Store) DeleteWalker(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.walkers[id]; !ok {
		return repository.ErrWalkerNotFound
	}
	delete(s.walkers, id)
	return nil
}

func (s *Store) matchRequests(f repository.RequestFilter) ([]*model.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*model.Request
	for _, r := range s.requests {
		switch {
		case f.CreatedBy != "" && r.CreatedBy != f.CreatedBy,
			f.Size != "" && r.Size != f.Size,
			f.Location != "" && !containsFold(r.Location, f.Location),
			f.PreferredTime != "" && r.PreferredTime != f.PreferredTime,
			f.Status != "" && string(r.Status) != f.Status,
			f.OpenToSocial != nil && r.OpenToSocial != *f.OpenToSocial:
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) matchWalkers(f repository.WalkerFilter) ([]*model.Walker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []*model.Walker
	for _, w := range s.walkers {
		switch {
		case f.UserID != "" && w.UserID != f.UserID,
			f.Size != "" && !slices.Contains(w.PreferredDogSizes, f.Size),
			f.Location != "" && !slices.ContainsFunc(w.ServiceAreas, func(a string) bool { return containsFold(a, f.Location) }),
			f.MinExperience != nil && w.ExperienceYears < *f.MinExperience,
			f.Time != "" && !slices.Contains(w.Availability.Times, f.Time),
			f.Weekdays && !w.Availability.Weekdays,
			f.Weekends && !w.Availability.Weekends:
			continue
		}
		out = append(out, cloneWalker(w))
	}
	return out, nil
}

func cloneWalker(w *model.Walker) *model.Walker {
	cp := *w
	cp.ServiceAreas = slices.Clone(w.ServiceAreas)
	cp.PreferredDogSizes = slices.Clone(w.PreferredDogSizes)
	cp.Availability.Times = slices.Clone(w.Availability.Times)
	return &cp
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func newerFirst(a, b int64, idA, idB string) bool {
	if a != b {
		return a > b
	}
	return idA > idB
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}
