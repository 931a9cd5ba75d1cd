package shared

// Filter represents query pagination options.
// Page is zero-indexed; PageSize is clamped to [1, MaxPageSize] by callers.
type Filter struct {
	Page     int
	PageSize int
}

// Pagination defaults
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     0,
		PageSize: DefaultPageSize,
	}
}

// Normalize clamps the filter to sane bounds
func (f Filter) Normalize() Filter {
	if f.Page < 0 {
		f.Page = 0
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	return f
}

// Offset returns the row offset for the filter
func (f Filter) Offset() int {
	return f.Page * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
