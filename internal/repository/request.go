package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

// ErrRequestNotFound is returned when no request matches the given id.
var ErrRequestNotFound = errors.New("request not found")

// RequestFilter defines sparse filters for listing requests.
// Zero values mean "no constraint".
type RequestFilter struct {
	CreatedBy     string
	Size          string
	Location      string
	PreferredTime string
	Status        string
	OpenToSocial  *bool
}

func (f RequestFilter) where() *whereBuilder {
	b := &whereBuilder{}
	if f.CreatedBy != "" {
		b.add("created_by = $%d", f.CreatedBy)
	}
	if f.Size != "" {
		b.add("size = $%d", f.Size)
	}
	if f.Location != "" {
		b.add(`location ILIKE $%d ESCAPE '\'`, containsPattern(f.Location))
	}
	if f.PreferredTime != "" {
		b.add("preferred_time = $%d", f.PreferredTime)
	}
	if f.Status != "" {
		b.add("status = $%d", f.Status)
	}
	if f.OpenToSocial != nil {
		b.add("open_to_social = $%d", *f.OpenToSocial)
	}
	return b
}

const requestColumns = `id, dog_name, breed, age, size, temperament, special_needs,
	frequency, preferred_time, duration, start_date,
	location, pickup_location, budget,
	owner_name, owner_phone, owner_email,
	open_to_social, social_note, status, COALESCE(created_by, ''), created_at, updated_at`

// CreateRequest inserts a new request.
func (r *Repository) CreateRequest(ctx context.Context, req *model.Request) error {
	query := `
		INSERT INTO requests (
			id, dog_name, breed, age, size, temperament, special_needs,
			frequency, preferred_time, duration, start_date,
			location, pickup_location, budget,
			owner_name, owner_phone, owner_email,
			open_to_social, social_note, status, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`

	_, err := r.pool.Exec(ctx, query,
		req.ID, req.DogName, req.Breed, req.Age, req.Size, req.Temperament, req.SpecialNeeds,
		req.Frequency, req.PreferredTime, req.Duration, req.StartDate,
		req.Location, req.PickupLocation, req.Budget,
		req.OwnerName, req.OwnerPhone, req.OwnerEmail,
		req.OpenToSocial, req.SocialNote, string(req.Status), nullIfEmpty(req.CreatedBy),
		req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// GetRequestByID retrieves a request by its ID.
func (r *Repository) GetRequestByID(ctx context.Context, id string) (*model.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request by ID: %w", err)
	}

	return req, nil
}

// ListRequests returns one page of requests matching filter, newest first.
func (r *Repository) ListRequests(ctx context.Context, filter RequestFilter, limit, offset int) ([]*model.Request, error) {
	b := filter.where()
	page, args := pageClause(b, limit, offset)
	query := `SELECT ` + requestColumns + ` FROM requests` + b.SQL() +
		` ORDER BY created_at DESC, id DESC` + page

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*model.Request, 0, limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating requests: %w", err)
	}

	return requests, nil
}

// CountRequests returns the number of requests matching filter.
func (r *Repository) CountRequests(ctx context.Context, filter RequestFilter) (int64, error) {
	b := filter.where()
	query := `SELECT COUNT(*) FROM requests` + b.SQL()

	var total int64
	if err := r.pool.QueryRow(ctx, query, b.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count requests: %w", err)
	}

	return total, nil
}

// UpdateRequest overwrites every mutable field of an existing request.
func (r *Repository) UpdateRequest(ctx context.Context, req *model.Request) error {
	query := `
		UPDATE requests SET
			dog_name = $2, breed = $3, age = $4, size = $5, temperament = $6, special_needs = $7,
			frequency = $8, preferred_time = $9, duration = $10, start_date = $11,
			location = $12, pickup_location = $13, budget = $14,
			owner_name = $15, owner_phone = $16, owner_email = $17,
			open_to_social = $18, social_note = $19, status = $20, updated_at = $21
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		req.ID, req.DogName, req.Breed, req.Age, req.Size, req.Temperament, req.SpecialNeeds,
		req.Frequency, req.PreferredTime, req.Duration, req.StartDate,
		req.Location, req.PickupLocation, req.Budget,
		req.OwnerName, req.OwnerPhone, req.OwnerEmail,
		req.OpenToSocial, req.SocialNote, string(req.Status), req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// DeleteRequest removes a request.
func (r *Repository) DeleteRequest(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// scanRequest scans a single row into a Request model.
func scanRequest(row pgx.Row) (*model.Request, error) {
	var req model.Request
	var status string
	err := row.Scan(
		&req.ID, &req.DogName, &req.Breed, &req.Age, &req.Size, &req.Temperament, &req.SpecialNeeds,
		&req.Frequency, &req.PreferredTime, &req.Duration, &req.StartDate,
		&req.Location, &req.PickupLocation, &req.Budget,
		&req.OwnerName, &req.OwnerPhone, &req.OwnerEmail,
		&req.OpenToSocial, &req.SocialNote, &status, &req.CreatedBy,
		&req.CreatedAt, &req.UpdatedAt,
	)
	req.Status = model.RequestStatus(status)
	return &req, err
}

// nullIfEmpty maps an empty owner id to SQL NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
