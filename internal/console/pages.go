package console

import (
	"context"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// ListPage is a ListController seen without its record type.
type ListPage interface {
	View
	Route() string
	Headers() []string
	SortKeys() []string
	Rows() [][]string
	State() ListState
	Page() int
	PageCount() int
	TotalItems() int64
	Sort() []string
	Err() error
	IDAt(i int) (int64, bool)
	LoadPage(ctx context.Context, n int) error
	SortBy(ctx context.Context, predicate string) error
	DeleteRow(i int) (DeletePage, error)
}

type DetailPage interface {
	View
	Route() string
	ID() int64
	Rows() []Row
	Back(ctx context.Context) error
}

type FormPage interface {
	View
	Route() string
	IsNew() bool
	IsSaving() bool
	Fields() []FormField
	Set(name, input string) error
	Save(ctx context.Context) <-chan error
	Cancel(ctx context.Context) error
	Err() error
}

type DeletePage interface {
	View
	Prompt() string
	Confirm(ctx context.Context) error
	Cancel(ctx context.Context) error
	Closed() bool
	Result() DialogResult
	Err() error
}

var (
	_ ListPage   = (*ListController[entity.Category])(nil)
	_ DetailPage = (*DetailController[entity.Category])(nil)
	_ FormPage   = (*UpdateController[entity.Category])(nil)
	_ DeletePage = (*DeleteDialog[entity.Category])(nil)
)
