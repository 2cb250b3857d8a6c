package bunstore

import (
	"context"

	"github.com/maxviazov/example-crud-service/internal/repository"
	"github.com/uptrace/bun"
)

type pinger struct{ db *bun.DB }

// NewPinger adapts bun.DB to the repository.Pinger interface.
func NewPinger(db *bun.DB) repository.Pinger { return &pinger{db: db} }

func (p *pinger) Ping(ctx context.Context) error { return p.db.PingContext(ctx) }
