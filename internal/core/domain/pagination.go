package domain

// Page is an immutable slice of a larger ordered result set.
type Page[T any] struct {
	Items      []T
	TotalCount int
	PageIndex  int
	PageSize   int
}

// NewPage builds a Page, never leaving Items nil.
func NewPage[T any](items []T, totalCount, pageIndex, pageSize int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, TotalCount: totalCount, PageIndex: pageIndex, PageSize: pageSize}
}

// TotalPages returns the number of pages needed to hold TotalCount items.
func (p Page[T]) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}
	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

// MapPage converts every item of p with fn, keeping the paging metadata.
func MapPage[T, U any](p Page[T], fn func(T) U) Page[U] {
	items := make([]U, len(p.Items))
	for i, item := range p.Items {
		items[i] = fn(item)
	}
	return NewPage(items, p.TotalCount, p.PageIndex, p.PageSize)
}
