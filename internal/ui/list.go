package ui

import "strings"

// List is the shared state behind every resource page: the full fetched
// collection, a search term, and pagination over the filtered view.
// Filtering is a case-insensitive substring match over whichever fields
// the page designates, recomputed on demand; there is no indexing and no
// server round-trip.
type List[T any] struct {
	items    []T
	search   string
	page     int
	pageSize int
	match    func(item T, term string) bool
}

// NewList builds a list whose match reports whether one of the item's
// designated fields contains the already-lowercased term.
func NewList[T any](pageSize int, match func(item T, term string) bool) *List[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &List[T]{pageSize: pageSize, match: match}
}

// SetItems replaces the whole collection and rewinds to the first page.
func (l *List[T]) SetItems(items []T) {
	l.items = items
	l.page = 0
}

func (l *List[T]) Items() []T     { return l.items }
func (l *List[T]) Len() int       { return len(l.items) }
func (l *List[T]) Search() string { return l.search }

func (l *List[T]) SetSearch(term string) {
	l.search = strings.TrimSpace(term)
	l.page = 0
}

// Filtered is the exact subset of the loaded collection matching the
// current search term.
func (l *List[T]) Filtered() []T {
	if l.search == "" {
		return l.items
	}
	term := strings.ToLower(l.search)
	out := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if l.match(item, term) {
			out = append(out, item)
		}
	}
	return out
}

// Rows is the current page of the filtered view.
func (l *List[T]) Rows() []T {
	filtered := l.Filtered()
	start := l.page * l.pageSize
	if start >= len(filtered) {
		// Clamp rather than error: shrinking filters pull the page back.
		l.page = 0
		start = 0
	}
	end := start + l.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// PageInfo reports the 1-based page number, total pages, and the size of
// the filtered set.
func (l *List[T]) PageInfo() (page, pages, total int) {
	total = len(l.Filtered())
	pages = (total + l.pageSize - 1) / l.pageSize
	if pages == 0 {
		pages = 1
	}
	if l.page >= pages {
		l.page = 0
	}
	return l.page + 1, pages, total
}

func (l *List[T]) Next() {
	if _, pages, _ := l.PageInfo(); l.page < pages-1 {
		l.page++
	}
}

func (l *List[T]) Prev() {
	if l.page > 0 {
		l.page--
	}
}

// SetPage jumps to a 1-based page, clamped into range.
func (l *List[T]) SetPage(page int) {
	_, pages, _ := l.PageInfo()
	switch {
	case page < 1:
		l.page = 0
	case page > pages:
		l.page = pages - 1
	default:
		l.page = page - 1
	}
}

func (l *List[T]) PageSize() int { return l.pageSize }

func (l *List[T]) SetPageSize(size int) {
	if size > 0 {
		l.pageSize = size
		l.page = 0
	}
}

// Merge replaces the first item matched by same with item, or appends it
// when absent. This is the write path: mutations return the written
// entity and the page folds it in without refetching the collection.
func (l *List[T]) Merge(item T, same func(T) bool) {
	for i := range l.items {
		if same(l.items[i]) {
			l.items[i] = item
			return
		}
	}
	l.items = append(l.items, item)
}

// Remove drops every item matched by same. Deletes use it so the row
// disappears without a refetch.
func (l *List[T]) Remove(same func(T) bool) {
	kept := l.items[:0]
	for _, item := range l.items {
		if !same(item) {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

// ContainsFold reports whether s contains term ignoring case. term must
// already be lowercased.
func ContainsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}
