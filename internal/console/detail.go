package console

import (
	"context"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Row is one label/value line of a detail view.
type Row struct {
	Label string
	Value string
}

// DetailController shows one resolved record read-only.
type DetailController[T entity.Entity] struct {
	title   string
	route   string
	record  T
	columns []Column[T]
	nav     Navigator
}

func NewDetailController[T entity.Entity](title, route string, record T, columns []Column[T], nav Navigator) *DetailController[T] {
	return &DetailController[T]{
		title:   title,
		route:   route,
		record:  record,
		columns: columns,
		nav:     nav,
	}
}

func (d *DetailController[T]) Title() string { return d.title }
func (d *DetailController[T]) Route() string { return d.route }
func (d *DetailController[T]) Record() T     { return d.record }

func (d *DetailController[T]) ID() int64 {
	id, _ := d.record.Identifier()
	return id
}

func (d *DetailController[T]) Rows() []Row {
	rows := make([]Row, 0, len(d.columns))
	for _, c := range d.columns {
		rows = append(rows, Row{Label: c.Header, Value: c.Value(d.record)})
	}
	return rows
}

func (d *DetailController[T]) Back(ctx context.Context) error {
	return d.nav.Back(ctx)
}
