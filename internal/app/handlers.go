package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/dispatch"
	"github.com/maxviazov/example-crud-service/internal/model"
	"github.com/maxviazov/example-crud-service/internal/repository"
	"github.com/rs/zerolog"
)

// handlers carries the shared dependencies of every request handler. The
// repository reference is transient per call chain; nothing is cached across
// requests.
type handlers struct {
	repo repository.ExampleRepository
	log  zerolog.Logger
}

// RegisterHandlers binds every request type to its single handler. Called
// once at startup; a duplicate binding panics inside the dispatcher.
func RegisterHandlers(d *dispatch.Dispatcher, repo repository.ExampleRepository, logger zerolog.Logger) {
	h := &handlers{repo: repo, log: logger.With().Str("component", "app").Logger()}
	dispatch.Register(d, h.createExample)
	dispatch.Register(d, h.updateExample)
	dispatch.Register(d, h.deleteExample)
	dispatch.Register(d, h.getExample)
	dispatch.Register(d, h.listExamples)
}

func (h *handlers) createExample(ctx context.Context, cmd CreateExampleCommand) (core.Result[CreateExampleResponse], error) {
	start := time.Now()
	out, err := h.repo.Add(ctx, cmd.ToEntity())
	if err != nil {
		// Repository surfaces core failure kinds already, do not wrap.
		h.log.Error().Err(err).Str("name", cmd.Name).Msg("create example failed")
		return core.Result[CreateExampleResponse]{}, err
	}
	h.log.Info().Dur("took", time.Since(start)).Stringer("example_id", out.ID).Msg("example created")
	return core.OK(CreateExampleResponse{ID: out.ID}, "Created successfully"), nil
}

func (h *handlers) updateExample(ctx context.Context, cmd UpdateExampleCommand) (core.Result[core.None], error) {
	existing, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		h.log.Error().Err(err).Stringer("example_id", cmd.ID).Msg("update lookup failed")
		return core.Result[core.None]{}, err
	}
	if existing == nil {
		return core.Result[core.None]{}, core.NewNotFound(fmt.Sprintf("Example not found. Id=%s", cmd.ID))
	}

	existing.ApplyUpdate(cmd.Name, cmd.Description, cmd.Date, cmd.Location, cmd.Latitude, cmd.Longitude, toDifficulty(cmd.Difficulty))
	if err := h.repo.Update(ctx, *existing); err != nil {
		h.log.Error().Err(err).Stringer("example_id", cmd.ID).Msg("update example failed")
		return core.Result[core.None]{}, err
	}
	h.log.Info().Stringer("example_id", cmd.ID).Msg("example updated")
	return core.OKNone(fmt.Sprintf("Successfully updated Example Id=%s", cmd.ID)), nil
}

func (h *handlers) deleteExample(ctx context.Context, cmd DeleteExampleCommand) (core.Result[core.None], error) {
	id, err := uuid.Parse(cmd.ID)
	if err != nil {
		h.log.Warn().Str("id_raw", cmd.ID).Msg("invalid example id for delete")
		return core.Result[core.None]{}, core.NewBadRequest("The example ID is invalid.")
	}

	exists, err := h.repo.Exists(ctx, id)
	if err != nil {
		return core.Result[core.None]{}, err
	}
	if !exists {
		return core.Result[core.None]{}, core.NewNotFound(fmt.Sprintf("Example not found. Id=%s", cmd.ID))
	}

	// Repository delete stays idempotent; the existence check above is what
	// turns a missing id into NotFound at this layer.
	if err := h.repo.Delete(ctx, id); err != nil {
		h.log.Error().Err(err).Stringer("example_id", id).Msg("delete example failed")
		return core.Result[core.None]{}, err
	}
	h.log.Info().Stringer("example_id", id).Msg("example deleted")
	return core.OKNone(fmt.Sprintf("Successfully deleted Example Id=%s", cmd.ID)), nil
}

func (h *handlers) getExample(ctx context.Context, q GetByIDExampleQuery) (core.Result[ExampleDTO], error) {
	id, err := uuid.Parse(q.ID)
	if err != nil {
		h.log.Warn().Str("id_raw", q.ID).Msg("invalid example id")
		return core.Result[ExampleDTO]{}, core.NewBadRequest("The example ID is invalid.")
	}

	entity, err := h.repo.GetByID(ctx, id)
	if err != nil {
		h.log.Error().Err(err).Stringer("example_id", id).Msg("get example failed")
		return core.Result[ExampleDTO]{}, err
	}
	if entity == nil {
		return core.Result[ExampleDTO]{}, core.NewNotFound(fmt.Sprintf("Example not found. Id=%s", q.ID))
	}
	return core.OK(toDTO(*entity), ""), nil
}

func (h *handlers) listExamples(ctx context.Context, q ListExamplesQuery) (core.Result[core.PagedResult[ExampleDTO]], error) {
	if o := q.Query.Order; o != nil {
		col, ok := repository.OrderColumns[o.Column]
		if !ok {
			return core.Result[core.PagedResult[ExampleDTO]]{}, core.NewBadRequest("orderBy has an invalid value")
		}
		o.Column = col
	}

	res, err := h.repo.List(ctx, q.Page, q.Query)
	if err != nil {
		h.log.Error().Err(err).Int("page_number", q.Page.PageNumber()).Int("page_size", q.Page.PageSize()).Msg("list examples failed")
		return core.Result[core.PagedResult[ExampleDTO]]{}, err
	}

	dtos := make([]ExampleDTO, 0, len(res.Items))
	for _, e := range res.Items {
		dtos = append(dtos, toDTO(e))
	}
	return core.OK(core.NewPagedResult(dtos, res.Total, q.Page), ""), nil
}

// toDifficulty narrows an already-validated difficulty string; the oneof
// rule guarantees membership before handlers run.
func toDifficulty(s string) (d model.Difficulty) {
	d, _ = model.ParseDifficulty(s)
	return d
}
