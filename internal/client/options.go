package client

import (
	"net/url"
	"strconv"
)

// RequestOptions carries pagination, sorting and filter parameters of a list
// query. Page is zero-based.
type RequestOptions struct {
	Page   *int
	Size   *int
	Sort   []string
	Params map[string]string
}

// PageRequest builds options for one page of a sorted listing.
func PageRequest(page, size int, sort ...string) *RequestOptions {
	return &RequestOptions{
		Page: &page,
		Size: &size,
		Sort: sort,
	}
}

// Values serializes the options; every sort entry becomes its own "sort"
// parameter, in order.
func (o *RequestOptions) Values() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	for k, v := range o.Params {
		if k == "sort" {
			continue
		}
		values.Set(k, v)
	}
	if o.Page != nil {
		values.Set("page", strconv.Itoa(*o.Page))
	}
	if o.Size != nil {
		values.Set("size", strconv.Itoa(*o.Size))
	}
	for _, s := range o.Sort {
		values.Add("sort", s)
	}

	return values
}
