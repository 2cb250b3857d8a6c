// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Difficulty grades an example. Stored and serialized as text.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts the three known grades, case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
}

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

func (d Difficulty) String() string { return string(d) }

// Example is the persisted aggregate. Identity is a UUIDv7 assigned at
// insert; CreatedAt is server-assigned. Latitude and Longitude are optional
// but always set or cleared together.
type Example struct {
	bun.BaseModel `bun:"table:examples" json:"-"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Description string     `bun:"description" json:"description"`
	Date        time.Time  `bun:"date,notnull" json:"date"`
	Location    string     `bun:"location,notnull" json:"location"`
	Latitude    *float64   `bun:"latitude" json:"latitude,omitempty"`
	Longitude   *float64   `bun:"longitude" json:"longitude,omitempty"`
	Difficulty  Difficulty `bun:"difficulty,notnull" json:"difficulty"`
	Active      bool       `bun:"active,notnull" json:"active"`
	CreatedAt   time.Time  `bun:"created_at,notnull" json:"createdAt"`
}

// ApplyUpdate replaces every mutable field in one shot, matching the update
// operation's full-replace semantics. Identity, Active and CreatedAt are
// untouched.
func (e *Example) ApplyUpdate(name, description string, date time.Time, location string, lat, lon *float64, difficulty Difficulty) {
	e.Name = name
	e.Description = description
	e.Date = date
	e.Location = location
	e.Latitude = lat
	e.Longitude = lon
	e.Difficulty = difficulty
}
