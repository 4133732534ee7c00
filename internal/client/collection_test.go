package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mserebryaakov/aggregator-pim/internal/entity"
)

func ids[T entity.Entity](items []T) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		id, _ := item.Identifier()
		out = append(out, id)
	}
	return out
}

func TestAddToCollectionIfMissing(t *testing.T) {
	tests := []struct {
		name       string
		collection []entity.Product
		candidates []*entity.Product
		want       []int64
	}{
		{
			name:       "new candidates go first",
			collection: []entity.Product{{ID: 1}, {ID: 2}},
			candidates: []*entity.Product{{ID: 3}, {ID: 4}},
			want:       []int64{3, 4, 1, 2},
		},
		{
			name:       "present identifiers skipped",
			collection: []entity.Product{{ID: 1}, {ID: 2}},
			candidates: []*entity.Product{{ID: 2}, {ID: 5}},
			want:       []int64{5, 1, 2},
		},
		{
			name:       "nil and unsaved skipped",
			collection: []entity.Product{{ID: 1}},
			candidates: []*entity.Product{nil, {}, {ID: 6}},
			want:       []int64{6, 1},
		},
		{
			name:       "candidates deduplicated among themselves",
			collection: nil,
			candidates: []*entity.Product{{ID: 8}, {ID: 8}, {ID: 9}},
			want:       []int64{8, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddToCollectionIfMissing(tt.collection, tt.candidates...)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestAddToCollectionIfMissing_LengthProperty(t *testing.T) {
	collection := []entity.Category{{ID: 1}, {ID: 2}, {ID: 3}}
	candidates := []*entity.Category{{ID: 3}, {ID: 4}, nil, {ID: 4}, {ID: 5}, {}}

	got := AddToCollectionIfMissing(collection, candidates...)

	assert.Len(t, got, len(collection)+2)
}

func TestAddToCollectionIfMissing_NothingNew(t *testing.T) {
	collection := []entity.Address{{ID: 1}, {ID: 2}}

	got := AddToCollectionIfMissing(collection, &entity.Address{ID: 2}, nil)

	assert.Equal(t, collection, got)
	assert.Same(t, &collection[0], &got[0])
}
