package core

// Result is the envelope wrapped around every handler outcome.
// When Success is false, Data is absent and callers must ignore it;
// Message is human-readable and never used for branching.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
}

// OK builds a success envelope around data.
func OK[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Message: message, Data: &data}
}

// Fail builds a failure envelope with no data.
func Fail[T any](message string) Result[T] {
	return Result[T]{Success: false, Message: message}
}

// Canceled is the uniform envelope for deliberately canceled operations.
func Canceled[T any]() Result[T] { return Fail[T]("Operation canceled") }

// None marks envelopes that carry no payload.
type None = struct{}

// OKNone builds a success envelope with no data, used by update and delete.
func OKNone(message string) Result[None] { return Result[None]{Success: true, Message: message} }

// PagedResult carries one page of a filtered listing. TotalPages is always
// derived from TotalCount and PageSize, never stored independently.
type PagedResult[T any] struct {
	Data       []T `json:"data"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPagedResult derives the paged envelope from a page slice and the total
// count of the filtered set.
func NewPagedResult[T any](items []T, totalCount int, p Pagination) PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + p.PageSize() - 1) / p.PageSize()
	}
	return PagedResult[T]{
		Data:       items,
		TotalCount: totalCount,
		PageNumber: p.PageNumber(),
		PageSize:   p.PageSize(),
		TotalPages: totalPages,
	}
}
