package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vasaworks/vasa-api/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// Create handles POST /v1/jobs.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string            false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createJobRequest  true   "Job details"
// @Success      201              {object}  createJobResponse
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Create(c.Request().Context(), ports.CreateJobInput{
		Title:          req.Title,
		CompanyName:    req.CompanyName,
		Location:       req.Location,
		JobType:        req.JobType,
		Salary:         req.Salary,
		Description:    req.Description,
		SkillsRequired: req.SkillsRequired,
		Industry:       req.Industry,
		Pay:            req.Pay,
		ScheduledDate:  req.ScheduledDate,
		ScheduledTime:  req.ScheduledTime,
		Source:         req.Source,
		PostedBy:       userID,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, createJobResponse{
		Reference: result.Reference,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
	})
}

// Get handles GET /v1/jobs/:reference.
//
// @Summary      Get a job by reference
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Job reference (e.g. VSA-7A8B9C2D)"
// @Success      200        {object}  domain.Job
// @Failure      401        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/jobs/{reference} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.Get(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// List handles GET /v1/jobs.
//
// @Summary      List jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        job_type  query     string  false  "Filter by job type"
// @Param        industry  query     string  false  "Filter by industry"
// @Param        location  query     string  false  "Filter by location"
// @Param        source    query     string  false  "Filter by source (marketplace/panchayat)"
// @Param        search    query     string  false  "Partial match on title or company"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Page size (default 20, max 100)"
// @Success      200       {object}  listJobsResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListJobsFilter{
		Status:   c.QueryParam("status"),
		JobType:  c.QueryParam("job_type"),
		Industry: c.QueryParam("industry"),
		Location: c.QueryParam("location"),
		Source:   c.QueryParam("source"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listJobsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Assign handles POST /v1/jobs/:reference/assign.
//
// @Summary      Assign workers to a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string                true  "Job reference"
// @Param        body       body      assignWorkersRequest  true  "Worker ids to assign"
// @Success      200        {object}  domain.Job
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/jobs/{reference}/assign [post]
func (h *JobHandler) Assign(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req assignWorkersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.service.AssignWorkers(c.Request().Context(), ports.AssignWorkersInput{
		Reference: c.Param("reference"),
		WorkerIDs: req.WorkerIDs,
		ActorID:   userID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

// Complete handles POST /v1/jobs/:reference/complete.
//
// @Summary      Mark a paid job as completed
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Job reference"
// @Success      200        {object}  domain.Job
// @Failure      404        {object}  errorResponse
// @Failure      422        {object}  errorResponse
// @Router       /v1/jobs/{reference}/complete [post]
func (h *JobHandler) Complete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	job, err := h.service.Complete(c.Request().Context(), c.Param("reference"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}
