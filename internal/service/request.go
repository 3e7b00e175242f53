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

// RequestService handles walking request business logic.
type RequestService struct {
	store   RequestStore
	metrics metrics.Recorder
}

// NewRequestService creates a new RequestService.
func NewRequestService(store RequestStore, recorder metrics.Recorder) *RequestService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RequestService{store: store, metrics: recorder}
}

// RequestInput is the client-editable part of a request.
// Optional fields are pointers so updates can tell "absent" from "cleared".
// Empty enum strings mean "not supplied".
type RequestInput struct {
	DogName      string  `json:"dogName" validate:"required"`
	Breed        string  `json:"breed" validate:"required"`
	Age          *int    `json:"age" validate:"omitempty,min=0,max=30"`
	Size         string  `json:"size" validate:"omitempty,dogsize"`
	Temperament  string  `json:"temperament" validate:"omitempty,temperament"`
	SpecialNeeds *string `json:"specialNeeds"`

	Frequency     string  `json:"frequency" validate:"omitempty,frequency"`
	PreferredTime string  `json:"preferredTime" validate:"omitempty,timeslot"`
	Duration      *int    `json:"duration" validate:"omitempty,min=10,max=240"`
	StartDate     *string `json:"startDate"`

	Location       string   `json:"location" validate:"required"`
	PickupLocation *string  `json:"pickupLocation"`
	Budget         *float64 `json:"budget" validate:"omitempty,min=0"`

	OwnerName  string  `json:"ownerName" validate:"required"`
	OwnerPhone *string `json:"ownerPhone"`
	OwnerEmail string  `json:"ownerEmail" validate:"required"`

	OpenToSocial bool    `json:"openToSocial"`
	SocialNote   *string `json:"socialNote"`

	Status string `json:"status" validate:"omitempty,requeststatus"`
}

func (in *RequestInput) normalize() {
	in.DogName = strings.TrimSpace(in.DogName)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Size = strings.TrimSpace(in.Size)
	in.Temperament = strings.TrimSpace(in.Temperament)
	in.SpecialNeeds = trimPtr(in.SpecialNeeds)
	in.Frequency = strings.TrimSpace(in.Frequency)
	in.PreferredTime = strings.TrimSpace(in.PreferredTime)
	in.StartDate = trimPtr(in.StartDate)
	in.Location = strings.TrimSpace(in.Location)
	in.PickupLocation = trimPtr(in.PickupLocation)
	in.OwnerName = strings.TrimSpace(in.OwnerName)
	in.OwnerPhone = trimPtr(in.OwnerPhone)
	in.OwnerEmail = strings.TrimSpace(in.OwnerEmail)
	in.SocialNote = trimPtr(in.SocialNote)
	in.Status = strings.TrimSpace(in.Status)
}

// apply copies the input onto req. Absent optional fields keep their current value.
func (in *RequestInput) apply(req *model.Request) {
	req.DogName = in.DogName
	req.Breed = in.Breed
	req.Location = in.Location
	req.OwnerName = in.OwnerName
	req.OwnerEmail = in.OwnerEmail
	req.OpenToSocial = in.OpenToSocial

	if in.Age != nil {
		req.Age = in.Age
	}
	if in.Duration != nil {
		req.Duration = in.Duration
	}
	if in.Budget != nil {
		req.Budget = in.Budget
	}
	setIfPresent(&req.SpecialNeeds, in.SpecialNeeds)
	setIfPresent(&req.StartDate, in.StartDate)
	setIfPresent(&req.PickupLocation, in.PickupLocation)
	setIfPresent(&req.OwnerPhone, in.OwnerPhone)
	setIfPresent(&req.SocialNote, in.SocialNote)
	setIfNotEmpty(&req.Size, in.Size)
	setIfNotEmpty(&req.Temperament, in.Temperament)
	setIfNotEmpty(&req.Frequency, in.Frequency)
	setIfNotEmpty(&req.PreferredTime, in.PreferredTime)
}

// RequestListInput defines input for listing requests.
type RequestListInput struct {
	Filter repository.RequestFilter
	Page   Page
}

// RequestPage is one page of requests.
type RequestPage struct {
	Data     []*model.Request
	Total    int64
	Page     int
	PageSize int
}

// List returns a page of requests matching the filter, newest first.
func (s *RequestService) List(ctx context.Context, input RequestListInput) (*RequestPage, error) {
	page := input.Page.Normalize()
	start := time.Now()

	items, total, err := fetchPage(ctx,
		func(ctx context.Context) ([]*model.Request, error) {
			return s.store.ListRequests(ctx, input.Filter, page.PageSize, page.Offset())
		},
		func(ctx context.Context) (int64, error) {
			return s.store.CountRequests(ctx, input.Filter)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	s.metrics.ObserveListQuery("request", time.Since(start))

	return &RequestPage{Data: items, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

// Get retrieves a request by ID.
func (s *RequestService) Get(ctx context.Context, id string) (*model.Request, error) {
	if !model.ValidID(id) {
		return nil, newValidationError("Invalid request ID format")
	}
	return s.load(ctx, id)
}

// Create validates input and stores a new open request owned by ownerID.
// Client-supplied status is ignored.
func (s *RequestService) Create(ctx context.Context, input RequestInput, ownerID string) (*model.Request, error) {
	if ownerID == "" {
		return nil, ErrUnauthenticated
	}
	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	req := &model.Request{
		ID:        model.NewIDAt(now),
		Status:    model.RequestStatusOpen,
		CreatedBy: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.apply(req)

	if err := s.store.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	s.metrics.IncListingMutation("request", "create")
	return req, nil
}

// Update merges input into an existing request owned by requesterID.
func (s *RequestService) Update(ctx context.Context, id string, input RequestInput, requesterID string) (*model.Request, error) {
	if !model.ValidID(id) {
		return nil, newValidationError("Invalid request ID format")
	}
	input.normalize()
	if err := validateStruct(&input); err != nil {
		return nil, err
	}

	req, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(kindRequests, "update", req.CreatedBy, requesterID); err != nil {
		return nil, err
	}

	input.apply(req)
	if input.Status != "" {
		req.Status = model.RequestStatus(input.Status)
	}
	req.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateRequest(ctx, req); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to update request: %w", err)
	}

	s.metrics.IncListingMutation("request", "update")
	return req, nil
}

// Delete removes a request owned by requesterID.
func (s *RequestService) Delete(ctx context.Context, id, requesterID string) error {
	if !model.ValidID(id) {
		return newValidationError("Invalid request ID format")
	}

	req, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(kindRequests, "delete", req.CreatedBy, requesterID); err != nil {
		return err
	}

	if err := s.store.DeleteRequest(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return ErrRequestNotFound
		}
		return fmt.Errorf("failed to delete request: %w", err)
	}

	s.metrics.IncListingMutation("request", "delete")
	return nil
}

func (s *RequestService) load(ctx context.Context, id string) (*model.Request, error) {
	req, err := s.store.GetRequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
