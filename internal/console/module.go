package console

import (
	"context"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// CRUD is everything the four views of an entity need from its client.
type CRUD[T entity.Entity] interface {
	ListService[T]
	Finder[T]
	Saver[T]
}

// Module describes the screens of one entity.
type Module[T entity.Entity] struct {
	Route       string
	Title       string
	Service     CRUD[T]
	Columns     []Column[T]
	Fields      []Field[T]
	Relations   func() []Relation[T]
	Blank       func() T
	Authorities []string
}

// MenuItem links the home view to an entity list.
type MenuItem struct {
	Title string
	Route string
}

// Register adds the list, view, new and edit routes of m.
func Register[T entity.Entity](r *Router, m Module[T], itemsPerPage int) MenuItem {
	r.Handle(Route{
		Path:        m.Route,
		Data:        map[string]string{"defaultSort": DefaultSort},
		Guarded:     true,
		Authorities: m.Authorities,
		Open: func(ctx context.Context, nav *Router, req Request) (View, error) {
			list := NewListController[T](m.Title, m.Route, m.Service, nav, m.Columns, itemsPerPage)
			if err := list.Init(ctx, req); err != nil {
				nav.log.Warnf("%s: load page: %v", m.Route, err)
			}
			return list, nil
		},
	})

	r.Handle(Route{
		Path:        m.Route + "/:id/view",
		Guarded:     true,
		Authorities: m.Authorities,
		Open: func(ctx context.Context, nav *Router, req Request) (View, error) {
			rec, ok, err := NewResolver[T](m.Service, nav, m.Blank).Resolve(ctx, req)
			if err != nil || !ok {
				return nil, err
			}
			return NewDetailController[T](m.Title, m.Route, rec, m.Columns, nav), nil
		},
	})

	edit := func(ctx context.Context, nav *Router, req Request) (View, error) {
		rec, ok, err := NewResolver[T](m.Service, nav, m.Blank).Resolve(ctx, req)
		if err != nil || !ok {
			return nil, err
		}

		var relations []Relation[T]
		if m.Relations != nil {
			relations = m.Relations()
		}

		form := NewUpdateController[T](m.Title, m.Route, m.Service, nav, m.Fields, relations)
		if err := form.Init(ctx, rec); err != nil {
			nav.log.Warnf("%s: load options: %v", m.Route, err)
		}
		return form, nil
	}

	for _, path := range []string{m.Route + "/new", m.Route + "/:id/edit"} {
		r.Handle(Route{
			Path:        path,
			Guarded:     true,
			Authorities: m.Authorities,
			Open:        edit,
		})
	}

	return MenuItem{Title: m.Title, Route: m.Route}
}

// HomePage lists the registered entities.
type HomePage struct {
	Items []MenuItem
}

func (*HomePage) Title() string { return "PIM" }
