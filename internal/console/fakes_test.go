package console

import (
	"context"
	"net/http"
	"sync"

	"github.com/mserebryaakov/aggregator-pim/internal/client"
	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

type fakeService[T entity.Entity] struct {
	mu sync.Mutex

	found   *T
	findErr error
	finds   []int64

	page    []T
	total   int64
	queries []*client.RequestOptions

	saveErr error
	release chan struct{}
	created []T
	updated []T

	deleteErr error
	deleted   []int64
}

func (f *fakeService[T]) Find(_ context.Context, id int64) (*client.Response[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds = append(f.finds, id)
	if f.findErr != nil {
		return nil, f.findErr
	}
	return &client.Response[T]{StatusCode: http.StatusOK, Body: f.found}, nil
}

func (f *fakeService[T]) Query(_ context.Context, opts *client.RequestOptions) (*client.ListResponse[T], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, opts)
	return &client.ListResponse[T]{StatusCode: http.StatusOK, Body: f.page, TotalCount: f.total}, nil
}

func (f *fakeService[T]) Create(_ context.Context, e T) (*client.Response[T], error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, e)
	return &client.Response[T]{StatusCode: http.StatusCreated, Body: &e}, f.saveErr
}

func (f *fakeService[T]) Update(_ context.Context, e T) (*client.Response[T], error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, e)
	return &client.Response[T]{StatusCode: http.StatusOK, Body: &e}, f.saveErr
}

func (f *fakeService[T]) Delete(_ context.Context, id int64) (*client.Response[struct{}], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return &client.Response[struct{}]{StatusCode: http.StatusNoContent}, nil
}

func (f *fakeService[T]) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type recordingNav struct {
	mu    sync.Mutex
	paths []string
	backs int
}

func (n *recordingNav) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return nil
}

func (n *recordingNav) Back(context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.backs++
	return nil
}

func (n *recordingNav) snapshot() ([]string, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...), n.backs
}

type fakeGate struct {
	authenticated bool
	authorities   []string
}

func (g *fakeGate) Authenticated() bool { return g.authenticated }

func (g *fakeGate) HasAnyAuthority(authorities ...string) bool {
	for _, want := range authorities {
		for _, have := range g.authorities {
			if want == have {
				return true
			}
		}
	}
	return false
}

type titled string

func (t titled) Title() string { return string(t) }
