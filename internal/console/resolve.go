package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Finder fetches one record by identifier.
type Finder[T entity.Entity] interface {
	Find(ctx context.Context, id int64) (*client.Response[T], error)
}

// Resolver prepares the record a view route works on.
type Resolver[T entity.Entity] struct {
	service Finder[T]
	nav     Navigator
	blank   func() T
}

func NewResolver[T entity.Entity](service Finder[T], nav Navigator, blank func() T) *Resolver[T] {
	if blank == nil {
		blank = func() T {
			var zero T
			return zero
		}
	}
	return &Resolver[T]{
		service: service,
		nav:     nav,
		blank:   blank,
	}
}

// Resolve returns the record named by the "id" parameter, or a blank record
// when there is none. A missing record redirects to the not-found route and
// yields ok == false.
func (r *Resolver[T]) Resolve(ctx context.Context, req Request) (T, bool, error) {
	var zero T

	rawID := req.Param("id")
	if rawID == "" {
		return r.blank(), true, nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return zero, false, r.nav.Navigate(ctx, NotFoundRoute)
	}

	res, err := r.service.Find(ctx, id)
	if err != nil && !client.IsNotFound(err) {
		return zero, false, fmt.Errorf("resolve %d: %w", id, err)
	}
	if err != nil || res == nil || res.Body == nil {
		return zero, false, r.nav.Navigate(ctx, NotFoundRoute)
	}

	return *res.Body, true, nil
}
