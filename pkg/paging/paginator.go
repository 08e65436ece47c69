// Package paging slices an ordered result into fixed-size pages.
package paging

const DefaultPageSize = 6

type Page[T any] struct {
	Items      []T  `json:"items"`
	Index      int  `json:"page"`
	Size       int  `json:"pageSize"`
	TotalItems int  `json:"totalHits"`
	TotalPages int  `json:"totalPages"`
	CanGoPrev  bool `json:"canGoPrev"`
	CanGoNext  bool `json:"canGoNext"`
}

func clamp(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// TotalPages is ceil(total/size); zero items give zero pages.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// ClampIndex keeps index within [0, max(totalPages-1, 0)].
func ClampIndex(index, totalPages int) int {
	return clamp(index, 0, max(totalPages-1, 0))
}

// Paginate returns the window of items at index. The index is clamped, so the
// returned Page.Index may differ from the requested one.
func Paginate[T any](items []T, index, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(items)
	pages := TotalPages(total, size)
	index = ClampIndex(index, pages)

	start := min(index*size, total)
	end := min(start+size, total)
	window := make([]T, end-start)
	copy(window, items[start:end])

	return Page[T]{
		Items:      window,
		Index:      index,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
		CanGoPrev:  index > 0,
		CanGoNext:  index < pages-1,
	}
}

// Prev returns the previous page index, or the current one on the first page.
func (p Page[T]) Prev() int {
	if !p.CanGoPrev {
		return p.Index
	}
	return p.Index - 1
}

// Next returns the next page index, or the current one on the last page.
func (p Page[T]) Next() int {
	if !p.CanGoNext {
		return p.Index
	}
	return p.Index + 1
}
