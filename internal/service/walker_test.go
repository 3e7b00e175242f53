package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitivewalks/pawsitivewalks/internal/model"
	"github.com/pawsitivewalks/pawsitivewalks/internal/repository"
	"github.com/pawsitivewalks/pawsitivewalks/internal/testutil"
	"github.com/pawsitivewalks/pawsitivewalks/internal/testutil/memstore"
)

func newWalkerService(t *testing.T) (*WalkerService, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return NewWalkerService(store, nil), store
}

func seedWalkers(t *testing.T, store *memstore.Store, n int, mutate func(i int, w *model.Walker)) {
	t.Helper()
	base := time.Now().UTC()
	for i := range n {
		w := testutil.NewTestWalker(t, ownerA)
		w.CreatedAt = base.Add(time.Duration(i) * time.Second)
		w.ID = model.NewIDAt(w.CreatedAt)
		if mutate != nil {
			mutate(i, w)
		}
		require.NoError(t, store.CreateWalker(context.Background(), w))
	}
}

func TestWalkerService_CreateDefaults(t *testing.T) {
	svc, _ := newWalkerService(t)

	w, err := svc.Create(context.Background(), WalkerInput{Name: "Alex"}, ownerA)
	require.NoError(t, err)

	assert.Equal(t, ownerA, w.UserID)
	assert.Equal(t, model.DefaultWalkerRating, w.Rating)
	assert.Equal(t, 0, w.CompletedWalks)
	assert.Equal(t, model.DefaultMaxDogsPerWalk, w.MaxDogsPerWalk)
	assert.NotNil(t, w.ServiceAreas)
	assert.NotNil(t, w.PreferredDogSizes)
	assert.NotNil(t, w.Availability.Times)
}

func TestWalkerService_CreateThenGetRoundTrip(t *testing.T) {
	svc, _ := newWalkerService(t)
	ctx := context.Background()

	in := WalkerInput{
		Name:              "Alex Chen",
		Email:             strPtr("alex@example.com"),
		ExperienceYears:   intPtr(4),
		HourlyRate:        floatPtr(22.5),
		MaxDogsPerWalk:    intPtr(3),
		ServiceAreas:      []string{"Back Bay", "Cambridge"},
		PreferredDogSizes: []string{"small", "medium"},
		Availability:      &AvailabilityInput{Weekdays: true, Times: []string{"morning"}},
		Bio:               strPtr("Lifelong dog person"),
		OpenToGroupWalks:  true,
	}

	created, err := svc.Create(ctx, in, ownerA)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Alex Chen", got.Name)
	assert.Equal(t, "alex@example.com", got.Email)
	assert.Equal(t, 4, got.ExperienceYears)
	assert.Equal(t, 22.5, got.HourlyRate)
	assert.Equal(t, 3, got.MaxDogsPerWalk)
	assert.Equal(t, []string{"Back Bay", "Cambridge"}, got.ServiceAreas)
	assert.Equal(t, []string{"small", "medium"}, got.PreferredDogSizes)
	assert.Equal(t, model.Availability{Weekdays: true, Times: []string{"morning"}}, got.Availability)
	assert.True(t, got.OpenToGroupWalks)
}

func TestWalkerService_ListSizeFilterPagination(t *testing.T) {
	svc, store := newWalkerService(t)
	ctx := context.Background()

	seedWalkers(t, store, 30, func(i int, w *model.Walker) {
		if i%2 == 0 {
			w.PreferredDogSizes = []string{model.SizeSmall, model.SizeMedium}
		} else {
			w.PreferredDogSizes = []string{model.SizeLarge}
		}
	})

	page, err := svc.List(ctx, WalkerListInput{
		Filter: repository.WalkerFilter{Size: model.SizeSmall},
		Page:   Page{Page: 2, PageSize: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, 3, page.TotalPages)
	assert.LessOrEqual(t, len(page.Data), 5)
	for _, w := range page.Data {
		assert.Contains(t, w.PreferredDogSizes, model.SizeSmall)
	}

	page, err = svc.List(ctx, WalkerListInput{Filter: repository.WalkerFilter{Size: model.SizeLarge}})
	require.NoError(t, err)
	for _, w := range page.Data {
		assert.True(t, w.PrefersSize(model.SizeLarge))
	}
}

func TestWalkerService_ListFilters(t *testing.T) {
	svc, store := newWalkerService(t)
	ctx := context.Background()

	seedWalkers(t, store, 6, func(i int, w *model.Walker) {
		w.ExperienceYears = i
		w.Availability = model.Availability{Weekdays: i < 3, Weekends: i >= 3, Times: []string{model.TimeMorning}}
		if i == 5 {
			w.Availability.Times = []string{model.TimeEvening}
			w.ServiceAreas = []string{"Jamaica Plain"}
		}
	})

	minExp := 3
	page, err := svc.List(ctx, WalkerListInput{Filter: repository.WalkerFilter{MinExperience: &minExp}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	page, err = svc.List(ctx, WalkerListInput{Filter: repository.WalkerFilter{Weekdays: true}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	page, err = svc.List(ctx, WalkerListInput{Filter: repository.WalkerFilter{Time: model.TimeEvening, Location: "jamaica"}})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 5, page.Data[0].ExperienceYears)
}

func TestWalkerService_MyPosts(t *testing.T) {
	svc, store := newWalkerService(t)
	ctx := context.Background()

	seedWalkers(t, store, 4, func(i int, w *model.Walker) {
		if i == 0 {
			w.UserID = ownerB
		}
	})

	page, err := svc.List(ctx, WalkerListInput{MyPosts: true, RequesterID: ownerB})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	// Anonymous myPosts never reaches the store.
	store.Err = errors.New("store should not be called")
	page, err = svc.List(ctx, WalkerListInput{MyPosts: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestWalkerService_UpdateKeepsServerFields(t *testing.T) {
	svc, store := newWalkerService(t)
	ctx := context.Background()

	seedWalkers(t, store, 1, func(_ int, w *model.Walker) {
		w.Rating = 4.2
		w.CompletedWalks = 17
		w.ServiceAreas = []string{"Back Bay"}
	})
	list, err := svc.List(ctx, WalkerListInput{})
	require.NoError(t, err)
	id := list.Data[0].ID

	updated, err := svc.Update(ctx, id, WalkerInput{Name: "Renamed", HourlyRate: floatPtr(30)}, ownerA)
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 30.0, updated.HourlyRate)
	assert.Equal(t, 4.2, updated.Rating)
	assert.Equal(t, 17, updated.CompletedWalks)
	assert.Equal(t, []string{"Back Bay"}, updated.ServiceAreas)

	_, err = svc.Update(ctx, id, WalkerInput{Name: "Nope"}, ownerB)
	assert.EqualError(t, err, "You can only update your own walker profiles.")
}

func TestWalkerService_DeleteAndErrors(t *testing.T) {
	svc, _ := newWalkerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, WalkerInput{Name: "Alex"}, ownerA)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID, ownerB), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, created.ID, ownerA))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID, ownerA), ErrWalkerNotFound)

	err = svc.Delete(ctx, "xyz", ownerA)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Invalid walker ID format", verr.Message)

	_, err = svc.Get(ctx, model.NewID())
	assert.ErrorIs(t, err, ErrWalkerNotFound)
}
