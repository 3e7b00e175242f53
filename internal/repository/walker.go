package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

// ErrWalkerNotFound is returned when no walker matches the given id.
var ErrWalkerNotFound = errors.New("walker not found")

// WalkerFilter defines sparse filters for listing walkers.
type WalkerFilter struct {
	UserID        string
	Size          string
	Location      string
	MinExperience *int
	Time          string
	Weekdays      bool
	Weekends      bool
}

func (f WalkerFilter) where() *whereBuilder {
	b := &whereBuilder{}
	if f.UserID != "" {
		b.add("user_id = $%d", f.UserID)
	}
	if f.Size != "" {
		b.add("$%d = ANY(preferred_dog_sizes)", f.Size)
	}
	if f.Location != "" {
		b.add(`EXISTS (SELECT 1 FROM unnest(service_areas) AS area WHERE area ILIKE $%d ESCAPE '\')`, containsPattern(f.Location))
	}
	if f.MinExperience != nil {
		b.add("experience_years >= $%d", *f.MinExperience)
	}
	if f.Time != "" {
		b.add("$%d = ANY(available_times)", f.Time)
	}
	if f.Weekdays {
		b.addRaw("available_weekdays")
	}
	if f.Weekends {
		b.addRaw("available_weekends")
	}
	return b
}

const walkerColumns = `id, name, email, phone, experience_years, hourly_rate, max_dogs_per_walk,
	service_areas, preferred_dog_sizes, available_weekdays, available_weekends, available_times,
	bio, open_to_group_walks, rating, completed_walks, COALESCE(user_id, ''), created_at, updated_at`

// CreateWalker inserts a new walker profile.
func (r *Repository) CreateWalker(ctx context.Context, w *model.Walker) error {
	query := `
		INSERT INTO walkers (
			id, name, email, phone, experience_years, hourly_rate, max_dogs_per_walk,
			service_areas, preferred_dog_sizes, available_weekdays, available_weekends, available_times,
			bio, open_to_group_walks, rating, completed_walks, user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	_, err := r.pool.Exec(ctx, query,
		w.ID, w.Name, w.Email, w.Phone, w.ExperienceYears, w.HourlyRate, w.MaxDogsPerWalk,
		nonNil(w.ServiceAreas), nonNil(w.PreferredDogSizes),
		w.Availability.Weekdays, w.Availability.Weekends, nonNil(w.Availability.Times),
		w.Bio, w.OpenToGroupWalks, w.Rating, w.CompletedWalks, nullIfEmpty(w.UserID),
		w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create walker: %w", err)
	}

	return nil
}

// GetWalkerByID retrieves a walker by its ID.
func (r *Repository) GetWalkerByID(ctx context.Context, id string) (*model.Walker, error) {
	query := `SELECT ` + walkerColumns + ` FROM walkers WHERE id = $1`

	w, err := scanWalker(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWalkerNotFound
		}
		return nil, fmt.Errorf("failed to get walker by ID: %w", err)
	}

	return w, nil
}

// ListWalkers returns one page of walkers matching filter, newest first.
func (r *Repository) ListWalkers(ctx context.Context, filter WalkerFilter, limit, offset int) ([]*model.Walker, error) {
	b := filter.where()
	page, args := pageClause(b, limit, offset)
	query := `SELECT ` + walkerColumns + ` FROM walkers` + b.SQL() +
		` ORDER BY created_at DESC, id DESC` + page

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list walkers: %w", err)
	}
	defer rows.Close()

	walkers := make([]*model.Walker, 0, limit)
	for rows.Next() {
		w, err := scanWalker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan walker: %w", err)
		}
		walkers = append(walkers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating walkers: %w", err)
	}

	return walkers, nil
}

// CountWalkers returns the number of walkers matching filter.
func (r *Repository) CountWalkers(ctx context.Context, filter WalkerFilter) (int64, error) {
	b := filter.where()
	query := `SELECT COUNT(*) FROM walkers` + b.SQL()

	var total int64
	if err := r.pool.QueryRow(ctx, query, b.Args()...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count walkers: %w", err)
	}

	return total, nil
}

// UpdateWalker overwrites the client-editable fields of a walker profile.
// Rating, completed walks and ownership are left untouched.
func (r *Repository) UpdateWalker(ctx context.Context, w *model.Walker) error {
	query := `
		UPDATE walkers SET
			name = $2, email = $3, phone = $4, experience_years = $5, hourly_rate = $6, max_dogs_per_walk = $7,
			service_areas = $8, preferred_dog_sizes = $9,
			available_weekdays = $10, available_weekends = $11, available_times = $12,
			bio = $13, open_to_group_walks = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		w.ID, w.Name, w.Email, w.Phone, w.ExperienceYears, w.HourlyRate, w.MaxDogsPerWalk,
		nonNil(w.ServiceAreas), nonNil(w.PreferredDogSizes),
		w.Availability.Weekdays, w.Availability.Weekends, nonNil(w.Availability.Times),
		w.Bio, w.OpenToGroupWalks, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update walker: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrWalkerNotFound
	}

	return nil
}

// DeleteWalker removes a walker profile.
func (r *Repository) DeleteWalker(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM walkers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete walker: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrWalkerNotFound
	}

	return nil
}

// scanWalker scans a single row into a Walker model.
func scanWalker(row pgx.Row) (*model.Walker, error) {
	var w model.Walker
	err := row.Scan(
		&w.ID, &w.Name, &w.Email, &w.Phone, &w.ExperienceYears, &w.HourlyRate, &w.MaxDogsPerWalk,
		&w.ServiceAreas, &w.PreferredDogSizes,
		&w.Availability.Weekdays, &w.Availability.Weekends, &w.Availability.Times,
		&w.Bio, &w.OpenToGroupWalks, &w.Rating, &w.CompletedWalks, &w.UserID,
		&w.CreatedAt, &w.UpdatedAt,
	)
	return &w, err
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
