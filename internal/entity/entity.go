// Package entity holds the domain records shared by the API server and the
// admin console: addresses, baskets and their items, categories, products,
// orders and the users that own them.
package entity

import (
	"strings"
)

// Entity is anything persisted under a numeric identifier. The identifier is
// absent until the record has been saved.
type Entity interface {
	Identifier() (int64, bool)
}

func identifier(id int64) (int64, bool) {
	return id, id != 0
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value behind p or the zero value.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// RefID returns the identifier of a related record for use as a foreign key.
func RefID[T Entity](ref *T) *int64 {
	if ref == nil {
		return nil
	}
	id, ok := (*ref).Identifier()
	if !ok {
		return nil
	}
	return &id
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
