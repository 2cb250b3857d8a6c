// Package app holds the request types and their handlers: one handler per
// request type, validation rules declared on the request itself, domain error
// shaping, and nothing transport-specific.
package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/model"
	"github.com/maxviazov/example-crud-service/internal/repository"
)

// CreateExampleCommand creates a new example. Rules mirror the request
// vocabulary; latitude/longitude are checked as a pair at the struct level.
type CreateExampleCommand struct {
	Name        string    `json:"name" validate:"required,min=3,max=100,safechars"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Date        time.Time `json:"date" validate:"required,notpast"`
	Location    string    `json:"location" validate:"required,min=2,max=200,safechars"`
	Latitude    *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Difficulty  string    `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// ToEntity maps the command onto a fresh aggregate. Identity and CreatedAt
// are assigned by the repository.
func (c CreateExampleCommand) ToEntity() model.Example {
	return model.Example{
		Name:        c.Name,
		Description: c.Description,
		Date:        c.Date,
		Location:    c.Location,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Difficulty:  model.Difficulty(c.Difficulty),
		Active:      true,
	}
}

// UpdateExampleCommand fully replaces the mutable fields of an existing
// example. ID comes from the route, never the body.
type UpdateExampleCommand struct {
	ID          uuid.UUID `json:"-"`
	Name        string    `json:"name" validate:"required,min=3,max=100,safechars"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Date        time.Time `json:"date" validate:"required,notpast"`
	Location    string    `json:"location" validate:"required,min=2,max=200,safechars"`
	Latitude    *float64  `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64  `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Difficulty  string    `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

// DeleteExampleCommand removes an example. The raw identifier is parsed in
// the handler so a malformed id maps to BadRequest, not a field rule.
type DeleteExampleCommand struct {
	ID string
}

// GetByIDExampleQuery fetches one example by its raw identifier.
type GetByIDExampleQuery struct {
	ID string
}

// ListExamplesQuery fetches one page of the filtered listing.
type ListExamplesQuery struct {
	Page  core.Pagination
	Query repository.Query
}

// CreateExampleResponse carries only the generated identity; callers fetch
// the full resource via the Location header.
type CreateExampleResponse struct {
	ID uuid.UUID `json:"id"`
}

// ExampleDTO is the read shape returned by queries.
type ExampleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Difficulty  string    `json:"difficulty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toDTO(e model.Example) ExampleDTO {
	return ExampleDTO{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date,
		Location:    e.Location,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		Difficulty:  e.Difficulty.String(),
		Active:      e.Active,
		CreatedAt:   e.CreatedAt,
	}
}
