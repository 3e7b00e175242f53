package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawsitivewalks/pawsitivewalks/internal/metrics"
	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
)

// WalkerService handles walker profile business logic.
type WalkerService struct {
	store   WalkerStore
	metrics metrics.Recorder
}

// NewWalkerService creates a new WalkerService.
func NewWalkerService(store WalkerStore, recorder metrics.Recorder) *WalkerService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &WalkerService{store: store, metrics: recorder}
}

// AvailabilityInput is the client view of walker availability.
type AvailabilityInput struct {
	Weekdays bool     `json:"weekdays"`
	Weekends bool     `json:"weekends"`
	Times    []string `json:"times" validate:"omitempty,dive,timeslot"`
}

// WalkerInput is the client-editable part of a walker profile.
// Rating, completed walks and the owner are never taken from clients.
type WalkerInput struct {
	Name              string             `json:"name" validate:"required"`
	Email             *string            `json:"email"`
	Phone             *string            `json:"phone"`
	ExperienceYears   *int               `json:"experienceYears" validate:"omitempty,min=0"`
	HourlyRate        *float64           `json:"hourlyRate" validate:"omitempty,min=0"`
	MaxDogsPerWalk    *int               `json:"maxDogsPerWalk" validate:"omitempty,min=1,max=10"`
	ServiceAreas      []string           `json:"serviceAreas"`
	PreferredDogSizes []string           `json:"preferredDogSizes" validate:"omitempty,dive,dogsize"`
	Availability      *AvailabilityInput `json:"availability"`
	Bio               *string            `json:"bio"`
	OpenToGroupWalks  bool               `json:"openToGroupWalks"`
}

func (in *WalkerInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = trimPtr(in.Email)
	in.Phone = trimPtr(in.Phone)
	in.Bio = trimPtr(in.Bio)
	in.ServiceAreas = compactStrings(in.ServiceAreas)
	in.PreferredDogSizes = compactStrings(lower(in.PreferredDogSizes))
	if in.Availability != nil {
		in.Availability.Times = compactStrings(lower(in.Availability.Times))
	}
}

func (in *WalkerInput) apply(w *model.Walker) {
	w.Name = in.Name
	w.OpenToGroupWalks = in.OpenToGroupWalks

	setIfPresent(&w.Email, in.Email)
	setIfPresent(&w.Phone, in.Phone)
	setIfPresent(&w.Bio, in.Bio)
	if in.ExperienceYears != nil {
		w.ExperienceYears = *in.ExperienceYears
	}
	if in.HourlyRate != nil {
		w.HourlyRate = *in.HourlyRate
	}
	if in.MaxDogsPerWalk != nil {
		w.MaxDogsPerWalk = *in.MaxDogsPerWalk
	}
	if in.ServiceAreas != nil {
		w.ServiceAreas = in.ServiceAreas
	}
	if in.PreferredDogSizes != nil {
		w.PreferredDogSizes = in.PreferredDogSizes
	}
	if in.Availability != nil {
		w.Availability = model.Availability{
			Weekdays: in.Availability.Weekdays,
			Weekends: in.Availability.Weekends,
			Times:    in.Availability.Times,
		}
	}

	if w.ServiceAreas == nil {
		w.ServiceAreas = []string{}
	}
	if w.PreferredDogSizes == nil {
		w.PreferredDogSizes = []string{}
	}
	if w.Availability.Times == nil {
		w.Availability.Times = []string{}
	}
}

// WalkerListInput defines input for listing walkers.
type WalkerListInput struct {
	Filter repository.WalkerFilter
	// MyPosts restricts results to RequesterID's profiles.
	MyPosts     bool
	RequesterID string
	Page        Page
}

// WalkerPage is one page of walkers.
type WalkerPage struct {
	Data       []*model.Walker
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// List returns a page of walkers matching the filter, newest first.
func (s *WalkerService) List(ctx context.Context, input WalkerListInput) (*WalkerPage, error) {
	page := input.Page.Normalize()
	filter := input.Filter

	if input.MyPosts {
		if input.RequesterID == "" {
			return &WalkerPage{Data: []*model.Walker{}, Page: page.Page, PageSize: page.PageSize}, nil
		}
		filter.UserID = input.RequesterID
	}

	start := time.Now()
	items, total, err := fetchPage(ctx,
		func(ctx context.Context) ([]*model.Walker, error) {
			return s.store.ListWalkers(ctx, filter, page.PageSize, page.Offset())
		},
		func(ctx context.Context) (int64, error) {
			return s.store.CountWalkers(ctx, filter)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list walkers: %w", err)
	}
	s.metrics.ObserveListQuery("walker", time.Since(start))

	return &WalkerPage{
		Data:       items,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages(total),
	}, nil
}

// Get retrieves a walker by ID.
func (s *WalkerService) Get(ctx context.Context, id string) (*model.Walker, error) {
	if !model.ValidID(id) {
		return nil, newValidationError("Invalid walker ID format")
	}
	return s.load(ctx, id)
}

// Create validates input and stores a new profile owned by ownerID.
func (s *WalkerService) Create(ctx context.Context, input WalkerInput, ownerID string) (*model.Walker, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	w := &model.Walker{
		ID:             model.NewIDAt(now),
		MaxDogsPerWalk: model.DefaultMaxDogsPerWalk,
		Rating:         model.DefaultWalkerRating,
		UserID:         ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	input.apply(w)

	if err := s.store.CreateWalker(ctx, w); err != nil {
		return nil, fmt.Errorf("failed to create walker: %w", err)
	}

	s.metrics.IncListingMutation("walker", "create")
	return w, nil
}

// Update merges input into an existing profile owned by requesterID.
func (s *WalkerService) Update(ctx context.Context, id string, input WalkerInput, requesterID string) (*model.Walker, error) {
	if !model.ValidID(id) {
		return nil, newValidationError("Invalid walker ID format")
	}
	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	w, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(kindWalkers, "update", w.UserID, requesterID); err != nil {
		return nil, err
	}

	input.apply(w)
	w.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateWalker(ctx, w); err != nil {
		if errors.Is(err, repository.ErrWalkerNotFound) {
			return nil, ErrWalkerNotFound
		}
		return nil, fmt.Errorf("failed to update walker: %w", err)
	}

	s.metrics.IncListingMutation("walker", "update")
	return w, nil
}

// Delete removes a profile owned by requesterID.
func (s *WalkerService) Delete(ctx context.Context, id, requesterID string) error {
	if !model.ValidID(id) {
		return newValidationError("Invalid walker ID format")
	}

	w, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(kindWalkers, "delete", w.UserID, requesterID); err != nil {
		return err
	}

	if err := s.store.DeleteWalker(ctx, id); err != nil {
		if errors.Is(err, repository.ErrWalkerNotFound) {
			return ErrWalkerNotFound
		}
		return fmt.Errorf("failed to delete walker: %w", err)
	}

	s.metrics.IncListingMutation("walker", "delete")
	return nil
}

func (s *WalkerService) load(ctx context.Context, id string) (*model.Walker, error) {
	w, err := s.store.GetWalkerByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrWalkerNotFound) {
			return nil, ErrWalkerNotFound
		}
		return nil, fmt.Errorf("failed to get walker: %w", err)
	}
	return w, nil
}

func lower(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
