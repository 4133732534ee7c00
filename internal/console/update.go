package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Saver writes a record.
type Saver[T entity.Entity] interface {
	Create(ctx context.Context, e T) (*client.Response[T], error)
	Update(ctx context.Context, e T) (*client.Response[T], error)
}

var ErrSaveInProgress = errors.New("save already in progress")

// UpdateController edits a copy of the resolved record and writes it back.
type UpdateController[T entity.Entity] struct {
	title     string
	route     string
	service   Saver[T]
	nav       Navigator
	fields    []Field[T]
	relations []Relation[T]

	mu          sync.Mutex
	record      T
	isSaving    bool
	fieldErrors []entity.FieldError
	err         error
}

func NewUpdateController[T entity.Entity](title, route string, service Saver[T], nav Navigator, fields []Field[T], relations []Relation[T]) *UpdateController[T] {
	return &UpdateController[T]{
		title:     title,
		route:     route,
		service:   service,
		nav:       nav,
		fields:    fields,
		relations: relations,
	}
}

// Init copies the record into the form and loads the options of every
// relationship concurrently. The current selection is offered before and
// after the options arrive.
func (u *UpdateController[T]) Init(ctx context.Context, record T) error {
	u.mu.Lock()
	u.record = record
	rec := u.record
	u.mu.Unlock()

	for _, r := range u.relations {
		r.Seed(&rec)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range u.relations {
		r := r
		g.Go(func() error {
			return r.Load(gctx, &rec)
		})
	}
	return g.Wait()
}

func (u *UpdateController[T]) Title() string { return u.title }
func (u *UpdateController[T]) Route() string { return u.route }

func (u *UpdateController[T]) Record() T {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.record
}

func (u *UpdateController[T]) IsNew() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.record.Identifier()
	return !ok
}

func (u *UpdateController[T]) IsSaving() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.isSaving
}

func (u *UpdateController[T]) FieldErrors() []entity.FieldError {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]entity.FieldError(nil), u.fieldErrors...)
}

func (u *UpdateController[T]) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// FormField is a field or relationship as the form renders it.
type FormField struct {
	Name     string
	Label    string
	Kind     FieldKind
	Required bool
	Value    string
	Choices  []string
	Options  []Option
}

func (u *UpdateController[T]) Fields() []FormField {
	u.mu.Lock()
	rec := u.record
	u.mu.Unlock()

	out := make([]FormField, 0, len(u.fields)+len(u.relations))
	for _, f := range u.fields {
		out = append(out, FormField{
			Name:     f.Name,
			Label:    f.Label,
			Kind:     f.Kind,
			Required: f.Required,
			Value:    f.Value(&rec),
			Choices:  f.Choices,
		})
	}
	for _, r := range u.relations {
		out = append(out, FormField{
			Name:    r.Name(),
			Label:   r.Label(),
			Kind:    RelationField,
			Value:   r.Selected(&rec),
			Options: r.Options(),
		})
	}
	return out
}

// Set parses input into the named field. For a relationship the input is the
// identifier of the chosen option; empty clears it.
func (u *UpdateController[T]) Set(name, input string) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, f := range u.fields {
		if f.Name == name {
			return f.Set(&u.record, input)
		}
	}

	for _, r := range u.relations {
		if r.Name() != name {
			continue
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return r.Select(&u.record, 0)
		}
		id, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %q is not an identifier", name, input)
		}
		return r.Select(&u.record, id)
	}

	return fmt.Errorf("unknown field %q", name)
}

// Save validates the record and creates or updates it. The saving flag is set
// before Save returns and cleared when the write completes; on success the
// view navigates back. The channel yields the outcome once.
func (u *UpdateController[T]) Save(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	u.mu.Lock()
	if u.isSaving {
		u.mu.Unlock()
		done <- ErrSaveInProgress
		close(done)
		return done
	}

	rec := u.record
	if v, ok := any(rec).(entity.Validator); ok {
		if errs := v.Validate(); len(errs) > 0 {
			u.fieldErrors = errs
			u.mu.Unlock()
			done <- &entity.ValidationError{Fields: errs}
			close(done)
			return done
		}
	}
	u.fieldErrors = nil
	u.err = nil
	u.isSaving = true
	u.mu.Unlock()

	go func() {
		defer close(done)

		var err error
		if _, ok := rec.Identifier(); ok {
			_, err = u.service.Update(ctx, rec)
		} else {
			_, err = u.service.Create(ctx, rec)
		}

		u.mu.Lock()
		u.isSaving = false
		u.err = err
		var apiErr *client.Error
		if errors.As(err, &apiErr) {
			u.fieldErrors = apiErr.FieldErrors
		}
		u.mu.Unlock()

		if err == nil {
			err = u.nav.Back(ctx)
		}
		done <- err
	}()

	return done
}

// Cancel leaves the form without saving.
func (u *UpdateController[T]) Cancel(ctx context.Context) error {
	return u.nav.Back(ctx)
}
