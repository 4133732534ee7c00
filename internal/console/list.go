package console

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

const (
	ItemsPerPage = 20
	DefaultSort  = "id,asc"

	sortIDPredicate = "id"
	ascending       = "asc"
	descending      = "desc"
)

// ListService is what a list view needs from an entity client.
type ListService[T entity.Entity] interface {
	Querier[T]
	Delete(ctx context.Context, id int64) (*client.Response[struct{}], error)
}

type ListState int

const (
	Idle ListState = iota
	Loading
)

// ListController shows one sorted page of records at a time.
type ListController[T entity.Entity] struct {
	title   string
	route   string
	service ListService[T]
	nav     *Router
	columns []Column[T]

	mu           sync.Mutex
	state        ListState
	items        []T
	totalItems   int64
	itemsPerPage int
	page         int
	predicate    string
	ascending    bool
	err          error
}

func NewListController[T entity.Entity](title, route string, service ListService[T], nav *Router, columns []Column[T], itemsPerPage int) *ListController[T] {
	if itemsPerPage <= 0 {
		itemsPerPage = ItemsPerPage
	}
	return &ListController[T]{
		title:        title,
		route:        route,
		service:      service,
		nav:          nav,
		columns:      columns,
		itemsPerPage: itemsPerPage,
		page:         1,
		predicate:    sortIDPredicate,
		ascending:    true,
	}
}

// Init reads the default sort from route data and page, size and sort from
// the query, then loads the page.
func (l *ListController[T]) Init(ctx context.Context, req Request) error {
	l.mu.Lock()
	sortParam := req.Data["defaultSort"]
	if sortParam == "" {
		sortParam = DefaultSort
	}
	if s := req.Query.Get("sort"); s != "" {
		sortParam = s
	}
	l.predicate, l.ascending = parseSort(sortParam)

	page := 1
	if p, err := strconv.Atoi(req.Query.Get("page")); err == nil && p > 0 {
		page = p
	}
	if size, err := strconv.Atoi(req.Query.Get("size")); err == nil && size > 0 {
		l.itemsPerPage = size
	}
	l.mu.Unlock()

	return l.LoadPage(ctx, page)
}

// LoadPage queries the one-based page n with the current sort.
func (l *ListController[T]) LoadPage(ctx context.Context, n int) error {
	if n < 1 {
		n = 1
	}

	l.mu.Lock()
	l.state = Loading
	opts := &client.RequestOptions{
		Page: entity.Ptr(n - 1),
		Size: entity.Ptr(l.itemsPerPage),
		Sort: l.sortLocked(),
	}
	l.mu.Unlock()

	res, err := l.service.Query(ctx, opts)

	l.mu.Lock()
	l.state = Idle
	l.err = err
	if err == nil {
		l.page = n
		l.items = res.Body
		l.totalItems = res.TotalCount
	}
	query := l.queryLocked()
	l.mu.Unlock()

	if err != nil {
		return err
	}

	if l.nav != nil {
		l.nav.ReplaceQuery(query)
	}
	return nil
}

// SortBy sorts by predicate, flipping the direction when it already is the
// sort predicate, and reloads the current page.
func (l *ListController[T]) SortBy(ctx context.Context, predicate string) error {
	l.mu.Lock()
	if l.predicate == predicate {
		l.ascending = !l.ascending
	} else {
		l.predicate = predicate
		l.ascending = true
	}
	page := l.page
	l.mu.Unlock()

	return l.LoadPage(ctx, page)
}

// Sort is the sort parameter list sent with every query: the predicate with
// its direction, then "id" as tie-breaker unless id already is the predicate.
func (l *ListController[T]) Sort() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortLocked()
}

func (l *ListController[T]) sortLocked() []string {
	dir := descending
	if l.ascending {
		dir = ascending
	}
	result := []string{l.predicate + "," + dir}
	if l.predicate != sortIDPredicate {
		result = append(result, sortIDPredicate)
	}
	return result
}

func (l *ListController[T]) queryLocked() url.Values {
	dir := descending
	if l.ascending {
		dir = ascending
	}
	return url.Values{
		"page": {strconv.Itoa(l.page)},
		"size": {strconv.Itoa(l.itemsPerPage)},
		"sort": {l.predicate + "," + dir},
	}
}

func parseSort(s string) (string, bool) {
	predicate, dir, _ := strings.Cut(s, ",")
	if predicate == "" {
		predicate = sortIDPredicate
	}
	return predicate, dir != descending
}

// Delete opens the confirmation dialog for the record at index i. A confirmed
// deletion reloads the current page.
func (l *ListController[T]) Delete(i int) (*DeleteDialog[T], error) {
	l.mu.Lock()
	if i < 0 || i >= len(l.items) {
		l.mu.Unlock()
		return nil, fmt.Errorf("no row %d", i)
	}
	item := l.items[i]
	l.mu.Unlock()

	return NewDeleteDialog[T](l.service, item, func(ctx context.Context, result DialogResult) error {
		if result != Deleted {
			return nil
		}
		l.mu.Lock()
		page := l.page
		l.mu.Unlock()
		return l.LoadPage(ctx, page)
	}), nil
}

func (l *ListController[T]) Title() string { return l.title }
func (l *ListController[T]) Route() string { return l.route }

func (l *ListController[T]) State() ListState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *ListController[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

func (l *ListController[T]) TotalItems() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalItems
}

func (l *ListController[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *ListController[T]) ItemsPerPage() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.itemsPerPage
}

// PageCount is the number of pages of the whole collection, at least one.
func (l *ListController[T]) PageCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.totalItems == 0 {
		return 1
	}
	return int((l.totalItems + int64(l.itemsPerPage) - 1) / int64(l.itemsPerPage))
}

func (l *ListController[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *ListController[T]) Headers() []string {
	headers := make([]string, 0, len(l.columns))
	for _, c := range l.columns {
		headers = append(headers, c.Header)
	}
	return headers
}

// SortKeys returns the sort predicate of every column, empty if unsortable.
func (l *ListController[T]) SortKeys() []string {
	keys := make([]string, 0, len(l.columns))
	for _, c := range l.columns {
		keys = append(keys, c.Sort)
	}
	return keys
}

func (l *ListController[T]) Rows() [][]string {
	items := l.Items()
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, 0, len(l.columns))
		for _, c := range l.columns {
			row = append(row, c.Value(item))
		}
		rows = append(rows, row)
	}
	return rows
}

// IDAt returns the identifier of the record at row i.
func (l *ListController[T]) IDAt(i int) (int64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return 0, false
	}
	return l.items[i].Identifier()
}

// DeleteRow is Delete for callers that do not know T.
func (l *ListController[T]) DeleteRow(i int) (DeletePage, error) {
	dialog, err := l.Delete(i)
	if err != nil {
		return nil, err
	}
	return dialog, nil
}
