// Package seed generates and bulk-loads synthetic walkers and requests.
package seed

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
)

// Generator produces deterministic fixtures for a given seed and reference time.
type Generator struct {
	rng *rand.Rand
	src *rand.ChaCha8
	now time.Time
}

// NewGenerator creates a Generator. The same seed and now yield the same data.
func NewGenerator(seed int64, now time.Time) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], uint64(seed))
	src := rand.NewChaCha8(key)
	return &Generator{
		rng: rand.New(src),
		src: src,
		now: now.UTC(),
	}
}

// Walker builds the index-th walker profile. Seeded profiles have no owner.
func (g *Generator) Walker(index int) *model.Walker {
	createdAt := g.daysAgo(120)

	return &model.Walker{
		ID:                g.id(createdAt),
		Name:              pick(g, walkerNames),
		Email:             fmt.Sprintf("walker%d@example.com", index),
		Phone:             g.phone(),
		ExperienceYears:   g.rng.IntN(6),
		HourlyRate:        float64(g.rng.IntN(15) + 20),
		MaxDogsPerWalk:    g.rng.IntN(3) + 1,
		ServiceAreas:      []string{pick(g, walkerAreas)},
		PreferredDogSizes: g.subset(model.DogSizes),
		Availability: model.Availability{
			Weekdays: g.chance(0.7),
			Weekends: g.chance(0.5),
			Times:    g.subset(model.TimeSlots),
		},
		Bio:              pick(g, walkerBios),
		OpenToGroupWalks: g.chance(0.6),
		Rating:           float64(int((g.rng.Float64()*2+3)*10+0.5)) / 10,
		CompletedWalks:   g.rng.IntN(200),
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
}

// Request builds the index-th walking request. Seeded requests have no owner.
func (g *Generator) Request(index int) *model.Request {
	createdAt := g.daysAgo(60)
	duration := pick(g, walkDurations)
	band := budgetFor(duration)
	budget := float64(band.min + g.rng.IntN(band.max-band.min+1))
	age := g.rng.IntN(15) + 1

	pickup := "Building entrance"
	if g.chance(0.7) {
		pickup = "Apartment lobby"
	}

	social := g.chance(0.3)
	note := ""
	if social {
		note = pick(g, socialNotes)
	}

	owner := pick(g, ownerNames)

	return &model.Request{
		ID:             g.id(createdAt),
		DogName:        pick(g, dogNames),
		Breed:          pick(g, breeds),
		Age:            &age,
		Size:           pick(g, model.DogSizes),
		Temperament:    pick(g, seedTemperaments),
		SpecialNeeds:   pick(g, specialNeeds),
		Frequency:      pick(g, model.Frequencies),
		PreferredTime:  pick(g, model.TimeSlots),
		Duration:       &duration,
		StartDate:      g.now.AddDate(0, 0, g.rng.IntN(30)).Format(time.DateOnly),
		Location:       pick(g, requestLocations),
		PickupLocation: pickup,
		Budget:         &budget,
		OwnerName:      owner,
		OwnerPhone:     g.phone(),
		OwnerEmail:     fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.ReplaceAll(pick(g, ownerNames), " ", ".")), index),
		OpenToSocial:   social,
		SocialNote:     note,
		Status:         model.RequestStatus(pick(g, model.RequestStatuses)),
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

// Walkers builds n walker profiles numbered from 1.
func (g *Generator) Walkers(n int) []*model.Walker {
	out := make([]*model.Walker, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, g.Walker(i))
	}
	return out
}

// Requests builds n requests numbered from 1.
func (g *Generator) Requests(n int) []*model.Request {
	out := make([]*model.Request, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, g.Request(i))
	}
	return out
}

func (g *Generator) id(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), g.src).String()
}

func (g *Generator) daysAgo(maxDays int) time.Time {
	return g.now.AddDate(0, 0, -g.rng.IntN(maxDays)).Truncate(time.Microsecond)
}

func (g *Generator) chance(p float64) bool {
	return g.rng.Float64() < p
}

func (g *Generator) phone() string {
	return fmt.Sprintf("617-%03d-%04d", g.rng.IntN(1000), g.rng.IntN(10000))
}

// subset keeps each item with probability 0.6 and never returns an empty slice.
func (g *Generator) subset(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if g.rng.Float64() > 0.4 {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		out = append(out, pick(g, items))
	}
	return out
}

func pick[T any](g *Generator, items []T) T {
	return items[g.rng.IntN(len(items))]
}
