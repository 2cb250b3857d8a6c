package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/app"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/dispatch"
	"github.com/maxviazov/example-crud-service/internal/handler"
	"github.com/maxviazov/example-crud-service/internal/middleware"
	"github.com/maxviazov/example-crud-service/internal/model"
	"github.com/maxviazov/example-crud-service/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	items []model.Example
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Example, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			e := m.items[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) List(_ context.Context, page core.Pagination, _ repository.Query) (repository.PageResult[model.Example], error) {
	total := len(m.items)
	lo := page.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + page.PageSize()
	if hi > total {
		hi = total
	}
	return repository.PageResult[model.Example]{Items: m.items[lo:hi], Total: total}, nil
}

func (m *memoryRepo) Add(_ context.Context, e model.Example) (model.Example, error) {
	e.ID = uuid.New()
	e.CreatedAt = time.Now().UTC()
	m.items = append(m.items, e)
	return e, nil
}

func (m *memoryRepo) Update(_ context.Context, e model.Example) error {
	for i := range m.items {
		if m.items[i].ID == e.ID {
			m.items[i] = e
			return nil
		}
	}
	return core.NewNotFound("Example not found")
}

func (m *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	for i := range m.items {
		if m.items[i].ID == id {
			return true, nil
		}
	}
	return false, nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *memoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := dispatch.NewValidator()
	require.NoError(t, app.RegisterRules(v))

	log := zerolog.New(io.Discard)
	d := dispatch.New(v, log)
	repo := &memoryRepo{}
	app.RegisterHandlers(d, repo, log)

	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Translator(log))
	handler.Register(r, d, okPinger{})
	return r, repo
}

func createBody(name string) []byte {
	body := map[string]any{
		"name":       name,
		"date":       time.Now().UTC().AddDate(0, 1, 0).Format(time.RFC3339),
		"location":   "Grindelwald",
		"difficulty": "medium",
	}
	b, _ := json.Marshal(body)
	return b
}

func doJSON(r *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateExample_Returns201WithLocation(t *testing.T) {
	r, repo := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/examples", createBody("Eiger Trail"))
	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, w.Header().Get(middleware.CorrelationHeader))

	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ID uuid.UUID `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, res.Success)
	require.NotEqual(t, uuid.Nil, res.Data.ID)
	require.Equal(t, fmt.Sprintf("/api/v1/examples/%s", res.Data.ID), w.Header().Get("Location"))
	require.Len(t, repo.items, 1)
}

func TestCreateExample_ValidationFailureEnvelope(t *testing.T) {
	r, repo := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/examples", createBody("Ab"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, repo.items)

	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.False(t, res.Success)
	require.NotEmpty(t, res.Errors)
	require.Equal(t, "name", res.Errors[0].Field)
}

func TestCreateExample_MalformedBodyIsBadRequest(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/examples", []byte("{not json"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "The request body is invalid.")
}

func TestGetExample_UnknownIDIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/examples/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var res struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.False(t, res.Success)
	require.Contains(t, res.Message, "Example not found")
}

func TestGetExample_MalformedIDIs400(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/examples/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListExamples_PagedEnvelope(t *testing.T) {
	r, _ := newTestRouter(t)
	for i := 0; i < 4; i++ {
		w := doJSON(r, http.MethodPost, "/api/v1/examples", createBody(fmt.Sprintf("Trail %d", i)))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/v1/examples?pageNumber=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Success bool `json:"success"`
		Data    struct {
			Data       []app.ExampleDTO `json:"data"`
			TotalCount int              `json:"totalCount"`
			PageNumber int              `json:"pageNumber"`
			PageSize   int              `json:"pageSize"`
			TotalPages int              `json:"totalPages"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.True(t, res.Success)
	require.Equal(t, 4, res.Data.TotalCount)
	require.Equal(t, 2, res.Data.PageNumber)
	require.Equal(t, 2, res.Data.PageSize)
	require.Equal(t, 2, res.Data.TotalPages)
	require.Len(t, res.Data.Data, 2)
}

func TestListExamples_EmptyStoreKeepsDataArray(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/examples", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"data":[]`)
}

func TestListExamples_UnknownOrderColumnIs400(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/examples?orderBy=secret", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "orderBy has an invalid value")
}

func TestListExamples_OrderByUsesWireFieldNames(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/examples?orderBy=createdAt&desc=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The storage column spelling is not part of the public surface.
	w = doJSON(r, http.MethodGet, "/api/v1/examples?orderBy=created_at", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateExample_RoundTrip(t *testing.T) {
	r, repo := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/examples", createBody("Eiger Trail"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := repo.items[0].ID

	body := map[string]any{
		"name":       "Eiger North Face",
		"date":       time.Now().UTC().AddDate(0, 2, 0).Format(time.RFC3339),
		"location":   "Grindelwald",
		"difficulty": "hard",
	}
	b, _ := json.Marshal(body)
	w = doJSON(r, http.MethodPut, "/api/v1/examples/"+id.String(), b)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "Eiger North Face", repo.items[0].Name)
	require.Equal(t, model.DifficultyHard, repo.items[0].Difficulty)
}

func TestUpdateExample_UnknownIDIs404(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPut, "/api/v1/examples/"+uuid.NewString(), createBody("Eiger Trail"))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteExample_ThenGetIs404(t *testing.T) {
	r, repo := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/v1/examples", createBody("Eiger Trail"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := repo.items[0].ID.String()

	w = doJSON(r, http.MethodDelete, "/api/v1/examples/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/examples/"+id, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/live", "/ready", "/api/v1/health/live", "/api/v1/health/ready"} {
		w := doJSON(r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}
