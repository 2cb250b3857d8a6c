package dispatch_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/dispatch"
	"github.com/rs/zerolog"
)

type ruledRequest struct {
	Name  string `json:"name" validate:"required,min=3"`
	Count int    `json:"count" validate:"gte=1"`
}

type bareRequest struct {
	Anything string
}

func newDispatcher() *dispatch.Dispatcher {
	return dispatch.New(dispatch.NewValidator(), zerolog.New(io.Discard))
}

func TestSend_RoutesToBoundHandler(t *testing.T) {
	d := newDispatcher()
	dispatch.Register(d, func(_ context.Context, req ruledRequest) (string, error) {
		return "handled:" + req.Name, nil
	})

	out, err := dispatch.Send[string](context.Background(), d, ruledRequest{Name: "abc", Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "handled:abc" {
		t.Fatalf("unexpected result %q", out)
	}
}

func TestSend_ValidationBlocksHandlerAndCollectsAllFields(t *testing.T) {
	d := newDispatcher()
	invoked := false
	dispatch.Register(d, func(_ context.Context, _ ruledRequest) (string, error) {
		invoked = true
		return "", nil
	})

	_, err := dispatch.Send[string](context.Background(), d, ruledRequest{Name: "ab", Count: 0})
	if invoked {
		t.Fatalf("handler must not run on validation failure")
	}
	if !core.IsKind(err, core.KindValidationFailed) {
		t.Fatalf("expected ValidationFailed, got %v", err)
	}

	fields := core.FieldsOf(err)
	if len(fields) != 2 {
		t.Fatalf("expected every violated field, got %+v", fields)
	}
	// Deterministic order: sorted by field name.
	if fields[0].Field != "count" || fields[1].Field != "name" {
		t.Fatalf("unexpected field order: %+v", fields)
	}
}

func TestSend_ZeroRulesIsNoOp(t *testing.T) {
	d := newDispatcher()
	dispatch.Register(d, func(_ context.Context, req bareRequest) (int, error) {
		return len(req.Anything), nil
	})

	out, err := dispatch.Send[int](context.Background(), d, bareRequest{Anything: "xyz"})
	if err != nil || out != 3 {
		t.Fatalf("unexpected outcome: %d %v", out, err)
	}
}

func TestRegister_DuplicateBindingPanics(t *testing.T) {
	d := newDispatcher()
	h := func(_ context.Context, _ bareRequest) (int, error) { return 0, nil }
	dispatch.Register(d, h)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate binding")
		}
	}()
	dispatch.Register(d, h)
}

func TestSend_UnboundRequestPanics(t *testing.T) {
	d := newDispatcher()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unbound request type")
		}
	}()
	_, _ = dispatch.Send[int](context.Background(), d, bareRequest{})
}

func TestSend_HandlerCancellationBecomesCanceledFailure(t *testing.T) {
	d := newDispatcher()
	dispatch.Register(d, func(ctx context.Context, _ bareRequest) (int, error) {
		return 0, context.Canceled
	})

	_, err := dispatch.Send[int](context.Background(), d, bareRequest{})
	if !core.IsKind(err, core.KindCanceled) {
		t.Fatalf("expected Canceled, got %v", err)
	}
}

func TestSend_CanceledContextShortCircuits(t *testing.T) {
	d := newDispatcher()
	invoked := false
	dispatch.Register(d, func(_ context.Context, _ bareRequest) (int, error) {
		invoked = true
		return 0, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := dispatch.Send[int](ctx, d, bareRequest{})
	if invoked {
		t.Fatalf("handler must not run on an already-canceled context")
	}
	if !core.IsKind(err, core.KindCanceled) {
		t.Fatalf("expected Canceled, got %v", err)
	}
}

func TestSend_TypedDomainErrorsPassThrough(t *testing.T) {
	d := newDispatcher()
	want := core.NewNotFound("missing")
	dispatch.Register(d, func(_ context.Context, _ bareRequest) (int, error) {
		return 0, want
	})

	_, err := dispatch.Send[int](context.Background(), d, bareRequest{})
	if !errors.Is(err, want) {
		t.Fatalf("expected the handler error unchanged, got %v", err)
	}
}
