package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ExampleRepository declares persistence operations for examples. Both
// backends must satisfy it with identical pagination, ordering and filter
// semantics; the contract suite in contract/ pins that down.
//
// GetByID treats absence as the success case: a missing row is (nil, nil),
// never an error. Delete is idempotent; deleting a missing id is not an
// error. Update reports core.NotFound when the identity does not exist
// (rows-affected check on both backends).
type ExampleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Example, error)
	List(ctx context.Context, page core.Pagination, q Query) (PageResult[model.Example], error)
	Add(ctx context.Context, e model.Example) (model.Example, error)
	Update(ctx context.Context, e model.Example) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
