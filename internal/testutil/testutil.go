// Package testutil holds shared helpers and fakes for package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420420

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// TruncateAll empties every application table.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, "TRUNCATE users, requests, walkers"); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser creates a user with a unique email. The hash is not a real bcrypt hash.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	id := model.NewIDAt(now)
	return &model.User{
		ID:           id,
		Email:        fmt.Sprintf("user-%s@example.com", id),
		DisplayName:  "Test User",
		PasswordHash: "not-a-real-hash",
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTestRequest creates an open request owned by ownerID.
func NewTestRequest(t testing.TB, ownerID string) *model.Request {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	age, duration, budget := 4, 30, 25.0
	return &model.Request{
		ID:            model.NewIDAt(now),
		DogName:       "Max",
		Breed:         "Beagle",
		Age:           &age,
		Size:          model.SizeMedium,
		Temperament:   "friendly",
		Frequency:     "daily",
		PreferredTime: model.TimeMorning,
		Duration:      &duration,
		StartDate:     "2025-01-15",
		Location:      "Back Bay, Boston",
		Budget:        &budget,
		OwnerName:     "Sarah Johnson",
		OwnerEmail:    "sarah@example.com",
		Status:        model.RequestStatusOpen,
		CreatedBy:     ownerID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTestWalker creates a walker owned by userID.
func NewTestWalker(t testing.TB, userID string) *model.Walker {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &model.Walker{
		ID:                model.NewIDAt(now),
		Name:              "Alex Chen",
		Email:             "alex@example.com",
		Phone:             "617-555-0100",
		ExperienceYears:   3,
		HourlyRate:        25,
		MaxDogsPerWalk:    2,
		ServiceAreas:      []string{"Cambridge, MA"},
		PreferredDogSizes: []string{model.SizeSmall, model.SizeMedium},
		Availability: model.Availability{
			Weekdays: true,
			Times:    []string{model.TimeMorning},
		},
		Bio:       "Patient, calm, and safety-focused",
		Rating:    model.DefaultWalkerRating,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
