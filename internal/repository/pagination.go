package repository

// PageResult carries a slice of items and the total count matching the query.
// I return the total so clients can compute pagination without an extra round trip.
type PageResult[T any] struct {
	Items []T
	Total int
}

// Order is an optional total ordering for list operations. Column is a
// storage column from the OrderColumns values; both backends append the
// primary key as a tie-breaker so pages stay stable across calls.
type Order struct {
	Column string
	Desc   bool
}

// OrderColumns maps public sort keys to their storage columns, so clients
// order by the serialized field names and column spellings never reach the
// wire. Anything else is a BadRequest at the application layer, never
// interpolated into SQL.
var OrderColumns = map[string]string{
	"name":       "name",
	"date":       "date",
	"location":   "location",
	"difficulty": "difficulty",
	"createdAt":  "created_at",
}

// Filter is a declarative predicate over example fields. Zero values mean
// "no constraint" so both backends translate it identically.
type Filter struct {
	Difficulty   string
	Location     string
	NameContains string
	ActiveOnly   bool
}

// Query bundles the optional filter and ordering applied before pagination.
// A nil Order falls back to the backend's deterministic default
// (created_at DESC, id).
type Query struct {
	Filter Filter
	Order  *Order
}
