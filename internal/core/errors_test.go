package core_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/stretchr/testify/require"
)

func TestKind_HTTPStatus(t *testing.T) {
	require.Equal(t, 400, core.KindValidationFailed.HTTPStatus())
	require.Equal(t, 400, core.KindBadRequest.HTTPStatus())
	require.Equal(t, 404, core.KindNotFound.HTTPStatus())
	require.Equal(t, 409, core.KindConflict.HTTPStatus())
	require.Equal(t, 403, core.KindForbidden.HTTPStatus())
	require.Equal(t, 499, core.KindCanceled.HTTPStatus())
	require.Equal(t, 500, core.KindUnexpected.HTTPStatus())
}

func TestNewValidationFailed_SortsAndKeepsAllFields(t *testing.T) {
	err := core.NewValidationFailed([]core.FieldError{
		{Field: "name", Message: "is required"},
		{Field: "date", Message: "cannot be in the past"},
		{Field: "name", Message: "contains invalid characters"},
	})
	require.Error(t, err)

	fields := core.FieldsOf(err)
	require.Len(t, fields, 3)
	require.Equal(t, "date", fields[0].Field)
	require.Equal(t, "name", fields[1].Field)
	require.Equal(t, "contains invalid characters", fields[1].Message)
	require.Equal(t, "is required", fields[2].Message)
}

func TestNewValidationFailed_EmptyListIsNil(t *testing.T) {
	require.NoError(t, core.NewValidationFailed(nil))
	require.NoError(t, core.NewValidationFailed([]core.FieldError{}))
}

func TestKindOf_UnclassifiedIsUnexpected(t *testing.T) {
	require.Equal(t, core.KindUnexpected, core.KindOf(errors.New("boom")))
	require.Equal(t, core.KindNotFound, core.KindOf(core.NewNotFound("missing")))
	// Kind survives wrapping.
	wrapped := fmt.Errorf("handler: %w", core.NewConflict("dup"))
	require.Equal(t, core.KindConflict, core.KindOf(wrapped))
}

func TestFieldsOf_NonValidationErrorIsNil(t *testing.T) {
	require.Nil(t, core.FieldsOf(core.NewBadRequest("bad")))
	require.Nil(t, core.FieldsOf(nil))
}
