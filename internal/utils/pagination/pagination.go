package pagination

// Pagination represents skip/take pagination parameters as used by the web
// client: Skip is a 1-based page index, Take a page size.
type Pagination struct {
	Skip int `form:"skip" binding:"omitempty,min=1"`
	Take int `form:"take" binding:"omitempty,min=1,max=100"`
}

// Default values.
const (
	DefaultTake = 10
	MaxTake     = 100
)

// Limit returns the row limit for database queries.
func (p Pagination) Limit() int {
	if p.Take < 1 {
		return DefaultTake
	}
	if p.Take > MaxTake {
		return MaxTake
	}
	return p.Take
}

// Offset returns the row offset for database queries. A zero or missing
// Skip means the first page.
func (p Pagination) Offset() int {
	if p.Skip <= 1 {
		return 0
	}
	return p.Limit() * (p.Skip - 1)
}

// PageInfo represents pagination info in API responses.
type PageInfo struct {
	Skip  int   `json:"skip"`
	Take  int   `json:"take"`
	Total int64 `json:"total"`
}

// Info returns pagination info for API responses.
func (p Pagination) Info(total int64) PageInfo {
	skip := p.Skip
	if skip < 1 {
		skip = 1
	}
	return PageInfo{Skip: skip, Take: p.Limit(), Total: total}
}
