package core

// Pagination bounds consumed by list operations. The upper bound protects
// the storage layer from unbounded page requests.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// Pagination is a clamped page window. Fields are unexported so the clamping
// invariant holds at construction and never has to be re-checked at query
// time.
type Pagination struct {
	pageNumber int
	pageSize   int
}

// NewPagination clamps pageNumber up to 1 and pageSize into [1, MaxPageSize];
// a non-positive pageSize falls back to the default.
func NewPagination(pageNumber, pageSize int) Pagination {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{pageNumber: pageNumber, pageSize: pageSize}
}

func (p Pagination) PageNumber() int { return p.pageNumber }
func (p Pagination) PageSize() int   { return p.pageSize }

// Offset is the number of rows skipped before the page slice.
func (p Pagination) Offset() int { return (p.pageNumber - 1) * p.pageSize }
