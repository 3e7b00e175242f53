package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

var walkerColumns = []string{
	"id", "name", "email", "phone", "experience_years", "hourly_rate",
	"max_dogs_per_walk", "service_areas", "preferred_dog_sizes",
	"available_weekdays", "available_weekends", "available_times", "bio",
	"open_to_group_walks", "rating", "completed_walks", "user_id",
	"created_at", "updated_at",
}

var requestColumns = []string{
	"id", "dog_name", "breed", "age", "size", "temperament", "special_needs",
	"frequency", "preferred_time", "duration", "start_date", "location",
	"pickup_location", "budget", "owner_name", "owner_phone", "owner_email",
	"open_to_social", "social_note", "status", "created_by",
	"created_at", "updated_at",
}

// Loader bulk-inserts fixtures with COPY.
type Loader struct {
	db *sql.DB
}

// NewLoader creates a Loader over a lib/pq database handle.
func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

// Reset deletes every row of table. Only the seeded tables are accepted.
func (l *Loader) Reset(ctx context.Context, table string) (int64, error) {
	if table != "walkers" && table != "requests" {
		return 0, fmt.Errorf("refusing to reset table %q", table)
	}
	res, err := l.db.ExecContext(ctx, "DELETE FROM "+pq.QuoteIdentifier(table))
	if err != nil {
		return 0, fmt.Errorf("reset %s: %w", table, err)
	}
	return res.RowsAffected()
}

// LoadWalkers copies walkers into the walkers table in one transaction.
func (l *Loader) LoadWalkers(ctx context.Context, walkers []*model.Walker) (int, error) {
	return copyRows(ctx, l.db, "walkers", walkerColumns, len(walkers), func(i int) []any {
		w := walkers[i]
		return []any{
			w.ID, w.Name, w.Email, w.Phone, w.ExperienceYears, w.HourlyRate,
			w.MaxDogsPerWalk, pq.Array(w.ServiceAreas), pq.Array(w.PreferredDogSizes),
			w.Availability.Weekdays, w.Availability.Weekends, pq.Array(w.Availability.Times), w.Bio,
			w.OpenToGroupWalks, w.Rating, w.CompletedWalks, nullable(w.UserID),
			w.CreatedAt, w.UpdatedAt,
		}
	})
}

// LoadRequests copies requests into the requests table in one transaction.
func (l *Loader) LoadRequests(ctx context.Context, requests []*model.Request) (int, error) {
	return copyRows(ctx, l.db, "requests", requestColumns, len(requests), func(i int) []any {
		r := requests[i]
		return []any{
			r.ID, r.DogName, r.Breed, deref(r.Age), r.Size, r.Temperament, r.SpecialNeeds,
			r.Frequency, r.PreferredTime, deref(r.Duration), r.StartDate, r.Location,
			r.PickupLocation, deref(r.Budget), r.OwnerName, r.OwnerPhone, r.OwnerEmail,
			r.OpenToSocial, r.SocialNote, string(r.Status), nullable(r.CreatedBy),
			r.CreatedAt, r.UpdatedAt,
		}
	})
}

func copyRows(ctx context.Context, db *sql.DB, table string, columns []string, n int, row func(int) []any) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin copy into %s: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, columns...))
	if err != nil {
		return 0, fmt.Errorf("prepare copy into %s: %w", table, err)
	}

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			_ = stmt.Close()
			return 0, fmt.Errorf("copy row %d into %s: %w", i, table, err)
		}
	}

	// Flush buffered rows.
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return 0, fmt.Errorf("flush copy into %s: %w", table, err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("close copy into %s: %w", table, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit copy into %s: %w", table, err)
	}
	return n, nil
}

func deref[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// WalkerStats summarizes the walkers table.
type WalkerStats struct {
	Total            int64
	OpenToGroupWalks int64
	MorningAvailable int64
	SmallPref        int64
	MediumPref       int64
	LargePref        int64
}

// RequestStats summarizes the requests table.
type RequestStats struct {
	Total        int64
	Open         int64
	OpenToSocial int64
	Small        int64
	Medium       int64
	Large        int64
}

// WalkerStats computes the walker summary in one query.
func (l *Loader) WalkerStats(ctx context.Context) (*WalkerStats, error) {
	var s WalkerStats
	err := l.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE open_to_group_walks),
			COUNT(*) FILTER (WHERE 'morning' = ANY(available_times)),
			COUNT(*) FILTER (WHERE 'small' = ANY(preferred_dog_sizes)),
			COUNT(*) FILTER (WHERE 'medium' = ANY(preferred_dog_sizes)),
			COUNT(*) FILTER (WHERE 'large' = ANY(preferred_dog_sizes))
		FROM walkers
	`).Scan(&s.Total, &s.OpenToGroupWalks, &s.MorningAvailable, &s.SmallPref, &s.MediumPref, &s.LargePref)
	if err != nil {
		return nil, fmt.Errorf("walker stats: %w", err)
	}
	return &s, nil
}

// RequestStats computes the request summary in one query.
func (l *Loader) RequestStats(ctx context.Context) (*RequestStats, error) {
	var s RequestStats
	err := l.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'open'),
			COUNT(*) FILTER (WHERE open_to_social),
			COUNT(*) FILTER (WHERE size = 'small'),
			COUNT(*) FILTER (WHERE size = 'medium'),
			COUNT(*) FILTER (WHERE size = 'large')
		FROM requests
	`).Scan(&s.Total, &s.Open, &s.OpenToSocial, &s.Small, &s.Medium, &s.Large)
	if err != nil {
		return nil, fmt.Errorf("request stats: %w", err)
	}
	return &s, nil
}

// Percent returns part as a rounded percentage of total.
func Percent(part, total int64) int64 {
	if total == 0 {
		return 0
	}
	return (part*100 + total/2) / total
}
