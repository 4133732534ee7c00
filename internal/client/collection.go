package client

import "github.com/mserebryaakov/aggregator-pim/internal/entity"

// AddToCollectionIfMissing puts every candidate whose identifier is not yet in
// collection in front of it. Nil candidates, candidates without identifier and
// repeated candidates are skipped. When nothing is added the original slice is
// returned as is.
func AddToCollectionIfMissing[T entity.Entity](collection []T, candidates ...*T) []T {
	seen := make(map[int64]struct{}, len(collection)+len(candidates))
	for _, item := range collection {
		if id, ok := item.Identifier(); ok {
			seen[id] = struct{}{}
		}
	}

	var missing []T
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		id, ok := (*candidate).Identifier()
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, *candidate)
	}

	if len(missing) == 0 {
		return collection
	}

	return append(missing, collection...)
}
