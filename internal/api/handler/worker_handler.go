package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// WorkerHandler handles HTTP requests for the panchayat worker registry.
type WorkerHandler struct {
	service ports.WorkerService
}

func NewWorkerHandler(service ports.WorkerService) *WorkerHandler {
	return &WorkerHandler{service: service}
}

// Register handles POST /v1/workers.
//
// @Summary      Register a worker in the panchayat registry
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      workerRequest  true  "Worker details"
// @Success      201   {object}  domain.WorkerProfile
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/workers [post]
func (h *WorkerHandler) Register(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req workerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	worker, err := h.service.Register(c.Request().Context(), userID, ports.WorkerInput{
		Name:         req.Name,
		Skills:       req.Skills,
		Location:     req.Location,
		Rating:       req.Rating,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, worker)
}

// Update handles PUT /v1/workers/:id.
//
// @Summary      Update a worker registry entry
// @Tags         workers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Worker id"
// @Param        body  body      workerRequest  true  "Worker details"
// @Success      200   {object}  domain.WorkerProfile
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/workers/{id} [put]
func (h *WorkerHandler) Update(c echo.Context) error {
	var req workerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	worker, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.WorkerInput{
		Name:         req.Name,
		Skills:       req.Skills,
		Location:     req.Location,
		Rating:       req.Rating,
		MobileNumber: req.MobileNumber,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, worker)
}

// Delete handles DELETE /v1/workers/:id.
//
// @Summary      Remove a worker from the registry
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Worker id"
// @Success      204  "No Content"
// @Failure      404  {object}  errorResponse
// @Router       /v1/workers/{id} [delete]
func (h *WorkerHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Search handles GET /v1/workers. Name matches as a case-insensitive
// substring; skill and location match exactly, case-insensitively. Filters
// are AND-ed; "all" or an empty value bypasses a filter.
//
// @Summary      Search the worker registry
// @Tags         workers
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Name substring"
// @Param        skill     query     string  false  "Skill (exact, or 'all')"
// @Param        location  query     string  false  "Location (exact, or 'all')"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Success      200       {object}  searchWorkersResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/workers [get]
func (h *WorkerHandler) Search(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.Search(c.Request().Context(), ports.SearchWorkersCriteria{
		Name:     c.QueryParam("name"),
		Skill:    c.QueryParam("skill"),
		Location: c.QueryParam("location"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, searchWorkersResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}
