// Package contract holds the behavioral suite both repository backends must
// pass. Any divergence between the ORM and the raw-SQL implementation shows
// up here, not in production.
package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/model"
	"github.com/maxviazov/example-crud-service/internal/repository"
)

// Factory builds a fresh repository over empty storage plus its cleanup.
type Factory func(t *testing.T) (repository.ExampleRepository, func())

func seed(name string, d model.Difficulty) model.Example {
	return model.Example{
		Name:        name,
		Description: "seeded by the contract suite",
		Date:        time.Now().UTC().AddDate(0, 1, 0).Truncate(time.Second),
		Location:    "Somewhere",
		Difficulty:  d,
		Active:      true,
	}
}

func RunExampleRepositoryContract(t *testing.T, makeRepo Factory) {
	t.Helper()

	t.Run("add_and_get_roundtrip", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		lat, lon := 46.5, 7.9
		in := seed("Roundtrip", model.DifficultyMedium)
		in.Latitude, in.Longitude = &lat, &lon

		created, err := repo.Add(ctx, in)
		if err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if created.ID == uuid.Nil {
			t.Fatalf("identity not assigned")
		}
		if created.CreatedAt.IsZero() {
			t.Fatalf("creation timestamp not assigned")
		}

		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got == nil {
			t.Fatalf("expected entity, got absence")
		}
		if got.Name != in.Name || got.Description != in.Description ||
			got.Location != in.Location || got.Difficulty != in.Difficulty {
			t.Fatalf("input fields did not survive the roundtrip: %+v", got)
		}
		if got.Latitude == nil || *got.Latitude != lat || got.Longitude == nil || *got.Longitude != lon {
			t.Fatalf("coordinates did not survive the roundtrip: %+v", got)
		}
	})

	t.Run("get_absent_returns_nil_without_error", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)

		got, err := repo.GetByID(context.Background(), uuid.New())
		if err != nil {
			t.Fatalf("absence must not be an error, got %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil for missing id, got %+v", got)
		}
	})

	t.Run("list_page_bounds_and_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for i := 0; i < 7; i++ {
			if _, err := repo.Add(ctx, seed(fmt.Sprintf("Item %02d", i), model.DifficultyEasy)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		res, err := repo.List(ctx, core.NewPagination(1, 3), repository.Query{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 3 || res.Total != 7 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}

		last, err := repo.List(ctx, core.NewPagination(3, 3), repository.Query{})
		if err != nil {
			t.Fatalf("list last: %v", err)
		}
		if len(last.Items) != 1 || last.Total != 7 {
			t.Fatalf("unexpected last page: len=%d total=%d", len(last.Items), last.Total)
		}
	})

	t.Run("list_default_order_is_stable", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			if _, err := repo.Add(ctx, seed(fmt.Sprintf("Stable %d", i), model.DifficultyEasy)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		first, err := repo.List(ctx, core.NewPagination(1, 5), repository.Query{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		second, err := repo.List(ctx, core.NewPagination(1, 5), repository.Query{})
		if err != nil {
			t.Fatalf("list again: %v", err)
		}
		for i := range first.Items {
			if first.Items[i].ID != second.Items[i].ID {
				t.Fatalf("default ordering not stable at index %d", i)
			}
		}
	})

	t.Run("list_order_by_name_second_page", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for _, name := range []string{"Delta", "Alpha", "Charlie", "Bravo"} {
			if _, err := repo.Add(ctx, seed(name, model.DifficultyEasy)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		res, err := repo.List(ctx, core.NewPagination(2, 2), repository.Query{
			Order: &repository.Order{Column: "name"},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 4 {
			t.Fatalf("total = %d, want 4", res.Total)
		}
		if len(res.Items) != 2 || res.Items[0].Name != "Charlie" || res.Items[1].Name != "Delta" {
			t.Fatalf("unexpected second page: %+v", res.Items)
		}
	})

	t.Run("list_filter_difficulty", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			if _, err := repo.Add(ctx, seed(fmt.Sprintf("Easy %d", i), model.DifficultyEasy)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
		if _, err := repo.Add(ctx, seed("Hard one", model.DifficultyHard)); err != nil {
			t.Fatalf("seed: %v", err)
		}

		res, err := repo.List(ctx, core.NewPagination(1, 10), repository.Query{
			Filter: repository.Filter{Difficulty: model.DifficultyHard.String()},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || len(res.Items) != 1 || res.Items[0].Name != "Hard one" {
			t.Fatalf("filter not applied: total=%d items=%+v", res.Total, res.Items)
		}
	})

	t.Run("list_filter_location", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		elsewhere := seed("Away", model.DifficultyEasy)
		elsewhere.Location = "Elsewhere"
		for _, e := range []model.Example{seed("Near A", model.DifficultyEasy), seed("Near B", model.DifficultyEasy), elsewhere} {
			if _, err := repo.Add(ctx, e); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		res, err := repo.List(ctx, core.NewPagination(1, 10), repository.Query{
			Filter: repository.Filter{Location: "Somewhere"},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 || len(res.Items) != 2 {
			t.Fatalf("location filter not applied: total=%d items=%+v", res.Total, res.Items)
		}
	})

	t.Run("list_filter_name_contains_case_insensitive", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		for _, name := range []string{"Eiger Trail", "Eigerwand", "Matterhorn Loop"} {
			if _, err := repo.Add(ctx, seed(name, model.DifficultyEasy)); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		res, err := repo.List(ctx, core.NewPagination(1, 10), repository.Query{
			Filter: repository.Filter{NameContains: "eiger"},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 || len(res.Items) != 2 {
			t.Fatalf("name filter not applied: total=%d items=%+v", res.Total, res.Items)
		}
		for _, e := range res.Items {
			if e.Name == "Matterhorn Loop" {
				t.Fatalf("non-matching name leaked through the filter")
			}
		}
	})

	t.Run("list_filter_active_only", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		retired := seed("Retired", model.DifficultyEasy)
		retired.Active = false
		for _, e := range []model.Example{seed("Visible", model.DifficultyEasy), retired} {
			if _, err := repo.Add(ctx, e); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		res, err := repo.List(ctx, core.NewPagination(1, 10), repository.Query{
			Filter: repository.Filter{ActiveOnly: true},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || len(res.Items) != 1 || res.Items[0].Name != "Visible" {
			t.Fatalf("active filter not applied: total=%d items=%+v", res.Total, res.Items)
		}

		all, err := repo.List(ctx, core.NewPagination(1, 10), repository.Query{})
		if err != nil {
			t.Fatalf("list without filter: %v", err)
		}
		if all.Total != 2 {
			t.Fatalf("inactive rows must stay listable without the filter: total=%d", all.Total)
		}
	})

	t.Run("list_filter_combined", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		match := seed("Eiger Ridge", model.DifficultyHard)
		wrongGrade := seed("Eiger Meadow", model.DifficultyEasy)
		retired := seed("Eiger Old Route", model.DifficultyHard)
		retired.Active = false
		wrongName := seed("Matterhorn", model.DifficultyHard)
		for _, e := range []model.Example{match, wrongGrade, retired, wrongName} {
			if _, err := repo.Add(ctx, e); err != nil {
				t.Fatalf("seed: %v", err)
			}
		}

		res, err := repo.List(ctx, core.NewPagination(1, 10), repository.Query{
			Filter: repository.Filter{
				Difficulty:   model.DifficultyHard.String(),
				NameContains: "eiger",
				ActiveOnly:   true,
			},
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 1 || len(res.Items) != 1 || res.Items[0].Name != "Eiger Ridge" {
			t.Fatalf("combined filter not applied: total=%d items=%+v", res.Total, res.Items)
		}
	})

	t.Run("delete_is_idempotent", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		created, err := repo.Add(ctx, seed("Doomed", model.DifficultyEasy))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("first delete: %v", err)
		}
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("second delete must not error: %v", err)
		}
		exists, err := repo.Exists(ctx, created.ID)
		if err != nil {
			t.Fatalf("exists: %v", err)
		}
		if exists {
			t.Fatalf("entity still exists after delete")
		}
	})

	t.Run("update_missing_identity_is_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)

		missing := seed("Ghost", model.DifficultyEasy)
		missing.ID = uuid.New()
		err := repo.Update(context.Background(), missing)
		if !core.IsKind(err, core.KindNotFound) {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})

	t.Run("update_replaces_mutable_fields", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()

		created, err := repo.Add(ctx, seed("Before", model.DifficultyEasy))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		created.ApplyUpdate("After", "changed", created.Date, "Elsewhere", nil, nil, model.DifficultyHard)
		if err := repo.Update(ctx, created); err != nil {
			t.Fatalf("update: %v", err)
		}

		got, err := repo.GetByID(ctx, created.ID)
		if err != nil || got == nil {
			t.Fatalf("get after update: %v %v", got, err)
		}
		if got.Name != "After" || got.Location != "Elsewhere" || got.Difficulty != model.DifficultyHard {
			t.Fatalf("fields not replaced: %+v", got)
		}
		if got.CreatedAt.IsZero() {
			t.Fatalf("created_at lost on update")
		}
	})
}
