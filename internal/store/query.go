package store

// paginate windows the raw ordered collection before any predicate runs.
// Filters applied afterwards can thin the window below limit; that ordering
// is part of the listing contract, not an accident.
func paginate[T any](src []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(src) {
		return nil
	}
	end := len(src)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return src[offset:end]
}

func filterSeq[T any](src []T, keep func(T) bool) []T {
	out := make([]T, 0, len(src))
	for _, v := range src {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
