package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

// Response is one decoded entity answer. Body is nil when the server sent an
// empty body.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Body       *T
}

// ListResponse is one page of a collection.
type ListResponse[T any] struct {
	StatusCode int
	Header     http.Header
	Body       []T
	// TotalCount is the size of the whole collection, taken from X-Total-Count.
	TotalCount int64
}

// EntityService performs the CRUD calls of one REST resource. Each method is
// exactly one HTTP request; nothing is retried or cached.
type EntityService[T entity.Entity] struct {
	client      *Client
	resourceURL string
}

func NewEntityService[T entity.Entity](c *Client, resource string) *EntityService[T] {
	return &EntityService[T]{
		client:      c,
		resourceURL: resource,
	}
}

func (s *EntityService[T]) ResourceURL() string {
	return s.resourceURL
}

func (s *EntityService[T]) Create(ctx context.Context, e T) (*Response[T], error) {
	return send[T](ctx, s.client, http.MethodPost, s.resourceURL, e, contentTypeJSON)
}

func (s *EntityService[T]) Update(ctx context.Context, e T) (*Response[T], error) {
	path, err := s.itemPath(e)
	if err != nil {
		return nil, err
	}
	return send[T](ctx, s.client, http.MethodPut, path, e, contentTypeJSON)
}

// PartialUpdate sends e as a merge patch: only the fields present in its JSON
// form are changed on the server.
func (s *EntityService[T]) PartialUpdate(ctx context.Context, e T) (*Response[T], error) {
	path, err := s.itemPath(e)
	if err != nil {
		return nil, err
	}
	return send[T](ctx, s.client, http.MethodPatch, path, e, contentTypeMergePatch)
}

func (s *EntityService[T]) Find(ctx context.Context, id int64) (*Response[T], error) {
	return send[T](ctx, s.client, http.MethodGet, s.idPath(id), nil, "")
}

func (s *EntityService[T]) Query(ctx context.Context, opts *RequestOptions) (*ListResponse[T], error) {
	raw, err := s.client.do(ctx, http.MethodGet, s.resourceURL, opts.Values(), nil, "")
	if err != nil {
		return nil, err
	}

	items, err := decodeBody[[]T](raw.body)
	if err != nil {
		return nil, err
	}

	res := &ListResponse[T]{
		StatusCode: raw.status,
		Header:     raw.header,
	}
	if items != nil {
		res.Body = *items
	}

	res.TotalCount = int64(len(res.Body))
	if total := raw.header.Get(headerTotalCount); total != "" {
		if n, err := strconv.ParseInt(total, 10, 64); err == nil {
			res.TotalCount = n
		}
	}

	return res, nil
}

func (s *EntityService[T]) Delete(ctx context.Context, id int64) (*Response[struct{}], error) {
	raw, err := s.client.do(ctx, http.MethodDelete, s.idPath(id), nil, nil, "")
	if err != nil {
		return nil, err
	}
	return &Response[struct{}]{StatusCode: raw.status, Header: raw.header}, nil
}

func (s *EntityService[T]) idPath(id int64) string {
	return s.resourceURL + "/" + strconv.FormatInt(id, 10)
}

func (s *EntityService[T]) itemPath(e T) (string, error) {
	id, ok := e.Identifier()
	if !ok {
		return "", NewError(ServerAppError, "cannot address "+s.resourceURL+" item", 0, errMissingIdentifier)
	}
	return s.idPath(id), nil
}

func send[T any](ctx context.Context, c *Client, method, path string, body interface{}, contentType string) (*Response[T], error) {
	raw, err := c.do(ctx, method, path, nil, body, contentType)
	if err != nil {
		return nil, err
	}

	decoded, err := decodeBody[T](raw.body)
	if err != nil {
		return nil, err
	}

	return &Response[T]{
		StatusCode: raw.status,
		Header:     raw.header,
		Body:       decoded,
	}, nil
}
