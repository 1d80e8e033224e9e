package paging

const (
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage bounds the offset so it fits a 32-bit int.
	MaxPage = 1 << 20
)

// Page is a normalized page request.
type Page struct {
	Page  int
	Limit int
}

// New clamps page to 1..MaxPage and limit to 1..MaxLimit, defaulting to
// DefaultLimit.
func New(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// TotalPages is ceil(total/limit).
func (p Page) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}
