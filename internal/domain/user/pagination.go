package user

const (
	// PageSize is the number of records shown per page.
	PageSize = 20
	// RangeSize is the number of page buttons shown at once.
	RangeSize = 10
)

// Pagination is the page state of the users table.
// Page is always within [1, TotalPages] when TotalPages > 0, and 1 otherwise.
type Pagination struct {
	Total      int // Total number of records
	Page       int // Current page number (1-based)
	Limit      int // Number of records per page
	TotalPages int // Total number of pages
}

// PageCount returns ceil(total/limit), or 0 when either is not positive.
func PageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// NewPagination creates the page state for total records, clamping page into range.
func NewPagination(total, page, limit int) Pagination {
	p := Pagination{
		Total:      total,
		Limit:      limit,
		TotalPages: PageCount(total, limit),
	}
	p.Page = p.clamp(page)
	return p
}

func (p Pagination) clamp(page int) int {
	if page > p.TotalPages {
		page = p.TotalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Bounds returns the half-open [start, end) record indexes of the current page.
func (p Pagination) Bounds() (int, int) {
	if p.TotalPages == 0 {
		return 0, 0
	}
	start := (p.Page - 1) * p.Limit
	end := min(start+p.Limit, p.Total)
	return start, end
}

// GoTo returns the state with page n selected, clamped into range.
func (p Pagination) GoTo(n int) Pagination {
	p.Page = p.clamp(n)
	return p
}

// First jumps to page 1.
func (p Pagination) First() Pagination { return p.GoTo(1) }

// Prev moves one page back.
func (p Pagination) Prev() Pagination { return p.GoTo(p.Page - 1) }

// Next moves one page forward.
func (p Pagination) Next() Pagination { return p.GoTo(p.Page + 1) }

// Last jumps to the final page.
func (p Pagination) Last() Pagination { return p.GoTo(p.TotalPages) }

// HasPrev reports whether first/previous controls are enabled.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether next/last controls are enabled.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// VisiblePages returns the chunk of RangeSize page numbers containing the
// current page: 1..10, 11..20 and so on, cut at TotalPages.
// It is empty when there are no pages.
func (p Pagination) VisiblePages() []int {
	if p.TotalPages == 0 {
		return []int{}
	}

	first := ((p.Page-1)/RangeSize)*RangeSize + 1
	last := min(first+RangeSize-1, p.TotalPages)

	pages := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		pages = append(pages, n)
	}
	return pages
}

// Slice returns the records of the current page. The result shares the
// backing array of users.
func Slice[T any](users []T, p Pagination) []T {
	start, end := p.Bounds()
	if start >= len(users) {
		return users[:0]
	}
	return users[start:min(end, len(users))]
}
