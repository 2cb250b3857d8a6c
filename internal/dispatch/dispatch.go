// Package dispatch routes typed requests to their single bound handler.
// The type→handler table is built once at startup and is read-only
// afterwards, so concurrent Sends need no locking. Validation runs before
// every handler; a failed request never reaches business logic.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/rs/zerolog"
)

// HandlerFunc is the unit of business logic for exactly one request type.
type HandlerFunc[Req any, Res any] func(ctx context.Context, req Req) (Res, error)

// Dispatcher is pure routing plus the validation hook. It performs no
// business logic itself.
type Dispatcher struct {
	validate *validator.Validate
	handlers map[reflect.Type]func(ctx context.Context, req any) (any, error)
	log      zerolog.Logger
}

func New(v *validator.Validate, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		validate: v,
		handlers: make(map[reflect.Type]func(ctx context.Context, req any) (any, error)),
		log:      logger.With().Str("component", "dispatch").Logger(),
	}
}

// Register binds a handler to the request type. Binding the same type twice
// is a configuration error and panics at startup.
func Register[Req any, Res any](d *Dispatcher, h HandlerFunc[Req, Res]) {
	rt := reflect.TypeOf((*Req)(nil)).Elem()
	if _, dup := d.handlers[rt]; dup {
		panic(fmt.Sprintf("dispatch: handler already bound for %s", rt))
	}
	d.handlers[rt] = func(ctx context.Context, req any) (any, error) {
		return h(ctx, req.(Req))
	}
}

// Send validates the request, routes it to its handler and converts an
// observed cancellation into the uniform canceled failure. A request type
// with no bound handler is a configuration error and panics.
func Send[Res any](ctx context.Context, d *Dispatcher, req any) (Res, error) {
	var zero Res

	rt := reflect.TypeOf(req)
	h, ok := d.handlers[rt]
	if !ok {
		panic(fmt.Sprintf("dispatch: no handler bound for %s", rt))
	}

	if err := ctx.Err(); err != nil {
		return zero, core.NewCanceled()
	}

	if err := d.runRules(req); err != nil {
		d.log.Debug().Str("request", rt.String()).
			Interface("field_errors", core.FieldsOf(err)).
			Msg("request validation failed")
		return zero, err
	}

	res, err := h(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, core.NewCanceled()
		}
		return zero, err
	}

	out, ok := res.(Res)
	if !ok {
		panic(fmt.Sprintf("dispatch: handler for %s returned %T, caller expected %T", rt, res, zero))
	}
	return out, nil
}

// runRules evaluates every registered rule for the request type and collects
// all violations across all fields. Types with zero rules pass through
// untouched.
func (d *Dispatcher) runRules(req any) error {
	err := d.validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Non-struct request or validator misuse; programmer error.
		panic(fmt.Sprintf("dispatch: cannot validate %T: %v", req, err))
	}
	fields := make([]core.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, core.FieldError{Field: fe.Field(), Message: ruleMessage(fe)})
	}
	return core.NewValidationFailed(fields)
}
