package service

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// Pagination defaults.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps Offset within a 32-bit range for any page size.
	MaxPage         = math.MaxInt32 / MaxPageSize
)

// Page is a 1-indexed page request.
type Page struct {
	Page     int
	PageSize int
}

// Normalize clamps page to [1, MaxPage] and pageSize to [1, MaxPageSize], defaulting to DefaultPageSize.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(total / pageSize).
func (p Page) TotalPages(total int64) int {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
}

// fetchPage runs the page query and the count concurrently.
// A failure in either cancels the other.
func fetchPage[T any](
	ctx context.Context,
	list func(ctx context.Context) ([]T, error),
	count func(ctx context.Context) (int64, error),
) ([]T, int64, error) {
	var (
		items []T
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = list(gctx)
		if err != nil {
			return fmt.Errorf("failed to list: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = count(gctx)
		if err != nil {
			return fmt.Errorf("failed to count: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []T{}
	}
	return items, total, nil
}
