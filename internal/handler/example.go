package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/internal/app"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/internal/dispatch"
	"github.com/maxviazov/example-crud-service/internal/repository"
	"github.com/maxviazov/example-crud-service/pkg/response"
)

// ExampleHandler is the thin controller for the example resource: it builds
// requests, sends them through the dispatcher and writes envelopes. Failures
// are recorded on the context and rendered by the translator middleware.
type ExampleHandler struct {
	d *dispatch.Dispatcher
}

func NewExampleHandler(d *dispatch.Dispatcher) *ExampleHandler { return &ExampleHandler{d: d} }

func (h *ExampleHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/examples")
	{
		g.POST("", h.create)
		g.GET("/:example_id", h.getByID)
		g.GET("", h.list)
		g.PUT("/:example_id", h.update)
		g.DELETE("/:example_id", h.delete)
	}
}

func (h *ExampleHandler) create(c *gin.Context) {
	var cmd app.CreateExampleCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		// Body parsing details stay internal.
		_ = c.Error(core.NewBadRequest("The request body is invalid."))
		return
	}
	res, err := dispatch.Send[core.Result[app.CreateExampleResponse]](c.Request.Context(), h.d, cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("Location", fmt.Sprintf("%s/examples/%s", APIV1Prefix, res.Data.ID))
	response.WriteData(c, http.StatusCreated, res)
}

func (h *ExampleHandler) getByID(c *gin.Context) {
	q := app.GetByIDExampleQuery{ID: c.Param("example_id")}
	res, err := dispatch.Send[core.Result[app.ExampleDTO]](c.Request.Context(), h.d, q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *ExampleHandler) list(c *gin.Context) {
	pageNumber, _ := strconv.Atoi(c.Query("pageNumber"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))

	q := app.ListExamplesQuery{
		Page: core.NewPagination(pageNumber, pageSize),
		Query: repository.Query{
			Filter: repository.Filter{
				Difficulty:   c.Query("difficulty"),
				Location:     c.Query("location"),
				NameContains: c.Query("name"),
				ActiveOnly:   c.Query("activeOnly") == "true",
			},
		},
	}
	if orderBy := c.Query("orderBy"); orderBy != "" {
		q.Query.Order = &repository.Order{Column: orderBy, Desc: c.Query("desc") == "true"}
	}

	res, err := dispatch.Send[core.Result[core.PagedResult[app.ExampleDTO]]](c.Request.Context(), h.d, q)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *ExampleHandler) update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("example_id"))
	if err != nil {
		_ = c.Error(core.NewBadRequest("The example ID is invalid."))
		return
	}
	var cmd app.UpdateExampleCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		_ = c.Error(core.NewBadRequest("The request body is invalid."))
		return
	}
	cmd.ID = id

	if _, err := dispatch.Send[core.Result[core.None]](c.Request.Context(), h.d, cmd); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ExampleHandler) delete(c *gin.Context) {
	cmd := app.DeleteExampleCommand{ID: c.Param("example_id")}
	if _, err := dispatch.Send[core.Result[core.None]](c.Request.Context(), h.d, cmd); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
