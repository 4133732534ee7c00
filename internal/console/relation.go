package console

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Querier lists records of a related resource.
type Querier[R entity.Entity] interface {
	Query(ctx context.Context, opts *client.RequestOptions) (*client.ListResponse[R], error)
}

// Option is one choice of a relationship selector.
type Option struct {
	ID    int64
	Label string
}

// Relation is a single-valued relationship of T edited through a selector.
type Relation[T any] interface {
	Name() string
	Label() string
	// Seed offers the current selection before anything is fetched.
	Seed(rec *T)
	// Load fetches candidates and merges the current selection into them.
	Load(ctx context.Context, rec *T) error
	Options() []Option
	Selected(rec *T) string
	Select(rec *T, id int64) error
}

type relation[T any, R entity.Entity] struct {
	name    string
	label   string
	service Querier[R]
	ref     func(*T) **R
	display func(R) string

	mu    sync.Mutex
	items []R
}

// RelationOf builds a selector over the records of service. display renders a
// record in the selector; nil shows the identifier.
func RelationOf[T any, R entity.Entity](name, label string, service Querier[R], ref func(*T) **R, display func(R) string) Relation[T] {
	if display == nil {
		display = func(r R) string {
			id, _ := r.Identifier()
			return strconv.FormatInt(id, 10)
		}
	}
	return &relation[T, R]{
		name:    name,
		label:   label,
		service: service,
		ref:     ref,
		display: display,
	}
}

func (r *relation[T, R]) Name() string  { return r.name }
func (r *relation[T, R]) Label() string { return r.label }

func (r *relation[T, R]) Seed(rec *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = client.AddToCollectionIfMissing(r.items, *r.ref(rec))
}

func (r *relation[T, R]) Load(ctx context.Context, rec *T) error {
	res, err := r.service.Query(ctx, nil)
	if err != nil {
		return fmt.Errorf("load %s options: %w", r.name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = client.AddToCollectionIfMissing(res.Body, *r.ref(rec))
	return nil
}

func (r *relation[T, R]) Options() []Option {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := make([]Option, 0, len(r.items))
	for _, item := range r.items {
		id, _ := item.Identifier()
		opts = append(opts, Option{ID: id, Label: r.display(item)})
	}
	return opts
}

func (r *relation[T, R]) Selected(rec *T) string {
	current := *r.ref(rec)
	if current == nil {
		return ""
	}
	return r.display(*current)
}

// Select picks the option with the given identifier; zero clears the
// relationship.
func (r *relation[T, R]) Select(rec *T, id int64) error {
	if id == 0 {
		*r.ref(rec) = nil
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if itemID, ok := item.Identifier(); ok && itemID == id {
			item := item
			*r.ref(rec) = &item
			return nil
		}
	}
	return fmt.Errorf("%s: no option with id %d", r.name, id)
}
