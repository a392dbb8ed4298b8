package domain

// DefaultPageSize is the page size a fresh Pager starts with.
const DefaultPageSize = 10

// PageSizeOptions are the page sizes offered to users.
var PageSizeOptions = []int{10, 20, 50}

// Pager tracks the page a caller is viewing and turns it into from/size
// offsets. Resetting to the first page on a size change is the caller's
// responsibility; SearchService does not enforce it.
type Pager struct {
	// Page is 1-based.
	Page int

	// PageSize is the number of items per page.
	PageSize int
}

// NewPager returns a Pager on page 1 with DefaultPageSize.
func NewPager() *Pager {
	return &Pager{Page: 1, PageSize: DefaultPageSize}
}

// From returns the offset of the first item on the current page.
func (p *Pager) From() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.size()
}

// SetPage moves to page n. Values below 1 select the first page.
func (p *Pager) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	p.Page = n
}

// SetPageSize changes the page size. A different size moves back to page 1.
func (p *Pager) SetPageSize(n int) {
	if n < 1 {
		n = DefaultPageSize
	}
	if n != p.PageSize {
		p.Page = 1
	}
	p.PageSize = n
}

// PageCount returns how many pages total items span.
func (p *Pager) PageCount(total int64) int {
	if total <= 0 {
		return 0
	}
	size := int64(p.size())
	return int((total + size - 1) / size)
}

// Query builds the SearchQuery for the current page.
func (p *Pager) Query(keyword string) SearchQuery {
	return SearchQuery{
		Keyword: keyword,
		From:    p.From(),
		Size:    p.size(),
	}
}

func (p *Pager) size() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	return p.PageSize
}

// IsPageSizeOption reports whether n is one of PageSizeOptions.
func IsPageSizeOption(n int) bool {
	for _, opt := range PageSizeOptions {
		if opt == n {
			return true
		}
	}
	return false
}
