package compare

import (
	"errors"

	"tablediff/core/diff"
	"tablediff/core/history"
	"tablediff/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CompareResponse is returned by a synchronous comparison.
type CompareResponse struct {
	Summary        diff.Summary `json:"summary"`
	ReportLocation string       `json:"report_location,omitempty"`
	Result         *diff.Result `json:"result"`
}

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
	dataDir string
}

// NewHandler creates a new HTTP handler. Local source and report paths
// must lie inside dataDir; an empty dataDir allows storage locations only.
func NewHandler(service *Service, dataDir string) *Handler {
	return &Handler{service: service, dataDir: dataDir}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompare)
	group.Post("/jobs", h.HandleSubmit)
	group.Get("/jobs/:id", h.HandleGetJob)
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/:id", h.HandleGetRun)
}

// HandleCompare runs a comparison and returns its result.
// @Summary Compare Tables
// @Description Compares two sources, or two sheets of one workbook, by a key column. Optionally writes the CSV report.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body diff.Params true "Comparison parameters"
// @Success 200 {object} CompareResponse "Comparison Result"
// @Failure 400 {object} map[string]string "Invalid Parameters"
// @Failure 422 {object} map[string]string "Key Or Columns Not Comparable"
// @Failure 502 {object} map[string]string "Source Could Not Be Loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req, err := h.parseRequest(c)
	if err != nil {
		l.Warn("Rejected comparison request", zap.Error(err))
		return errorResponse(c, err)
	}

	res, err := h.service.Compare(c.Context(), req)
	if err != nil {
		l.Error("Comparison failed", zap.Error(err))
		return errorResponse(c, err)
	}

	resp := CompareResponse{Summary: res.Summary(), Result: res}
	if req.Settings().Report.Write {
		resp.ReportLocation = h.service.ReportLocation(req)
	}
	return c.JSON(resp)
}

// HandleSubmit starts a background comparison.
// @Summary Submit Comparison Job
// @Description Validates the parameters and runs the comparison in the background. Poll the returned job id.
// @Tags compare
// @Accept json
// @Produce json
// @Param request body diff.Params true "Comparison parameters"
// @Success 202 {object} Job "Submitted Job"
// @Failure 400 {object} map[string]string "Invalid Parameters"
// @Security ApiKeyAuth
// @Router /compare/jobs [post]
func (h *Handler) HandleSubmit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	req, err := h.parseRequest(c)
	if err != nil {
		l.Warn("Rejected comparison job", zap.Error(err))
		return errorResponse(c, err)
	}

	job := h.service.Submit(req)
	l.Info("Comparison job submitted", zap.String("job_id", job.ID), zap.String("comparison", req.Describe()))
	return c.Status(fiber.StatusAccepted).JSON(job)
}

// HandleGetJob polls a background comparison.
// @Summary Get Comparison Job
// @Description Returns the status of a submitted comparison and its result once finished.
// @Tags compare
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} Job "Job"
// @Failure 404 {object} map[string]string "Job Not Found"
// @Security ApiKeyAuth
// @Router /compare/jobs/{id} [get]
func (h *Handler) HandleGetJob(c *fiber.Ctx) error {
	job, ok := h.service.Job(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "job not found"})
	}
	return c.JSON(job)
}

// HandleListRuns lists recorded comparisons.
// @Summary List Comparison Runs
// @Description Lists recorded comparisons, newest first.
// @Tags compare
// @Produce json
// @Param limit query int false "Maximum number of runs" default(50)
// @Success 200 {array} history.Run "Runs"
// @Failure 404 {object} map[string]string "History Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /compare/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.Runs(c.Context(), c.QueryInt("limit", history.DefaultListLimit))
	if err != nil {
		if !errors.Is(err, ErrHistoryDisabled) {
			l.Error("Listing runs failed", zap.Error(err))
		}
		return errorResponse(c, err)
	}
	return c.JSON(runs)
}

// HandleGetRun returns one recorded comparison.
// @Summary Get Comparison Run
// @Description Returns a recorded comparison by id.
// @Tags compare
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} history.Run "Run"
// @Failure 404 {object} map[string]string "Run Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Security ApiKeyAuth
// @Router /compare/runs/{id} [get]
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, err := h.service.Run(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(run)
}

func (h *Handler) parseRequest(c *fiber.Ctx) (diff.Request, error) {
	var p diff.Params
	if err := c.BodyParser(&p); err != nil {
		return nil, &diff.ConfigurationError{Reason: "malformed request body: " + err.Error()}
	}
	p, err := confineParams(p, h.dataDir)
	if err != nil {
		return nil, err
	}
	return h.service.Resolve(p)
}

// errorResponse maps err to a status code and a JSON body.
func errorResponse(c *fiber.Ctx, err error) error {
	var (
		cfgErr     *diff.ConfigurationError
		keyErr     *diff.KeyColumnMissing
		columnsErr *diff.NoCommonColumns
		loadErr    *diff.SourceLoadError
	)

	status := fiber.StatusInternalServerError
	switch {
	case errors.As(err, &cfgErr):
		status = fiber.StatusBadRequest
	case errors.As(err, &keyErr), errors.As(err, &columnsErr):
		status = fiber.StatusUnprocessableEntity
	case errors.As(err, &loadErr):
		status = fiber.StatusBadGateway
	case errors.Is(err, history.ErrRunNotFound), errors.Is(err, ErrHistoryDisabled):
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
