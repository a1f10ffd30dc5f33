package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	models "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/usecase"
	xhttp "github.com/elysenoe925-creator/NTS-PROJECT/pkg/http"
	xlogger "github.com/elysenoe925-creator/NTS-PROJECT/pkg/logger"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// ForecastEchoHandler serves the forecasting API on Echo.
type ForecastEchoHandler struct {
	logger  *xlogger.Logger
	batch   *usecase.BatchForecaster
	sku     *usecase.SKUForecaster
	jobs    *usecase.JobService
	checks  map[string]HealthCheck
	apiMW   []echo.MiddlewareFunc
	timeout time.Duration
}

type HandlerOption func(*ForecastEchoHandler)

// WithSKUForecaster enables GET /api/forecast/:sku.
func WithSKUForecaster(s *usecase.SKUForecaster) HandlerOption {
	return func(h *ForecastEchoHandler) { h.sku = s }
}

// WithJobs enables the asynchronous job routes.
func WithJobs(j *usecase.JobService) HandlerOption {
	return func(h *ForecastEchoHandler) { h.jobs = j }
}

// WithHealthCheck adds a dependency probed by /healthz.
func WithHealthCheck(name string, check HealthCheck) HandlerOption {
	return func(h *ForecastEchoHandler) {
		if check != nil {
			h.checks[name] = check
		}
	}
}

// WithAPIMiddleware wraps every /api route, e.g. with the rate limiter.
func WithAPIMiddleware(mw ...echo.MiddlewareFunc) HandlerOption {
	return func(h *ForecastEchoHandler) { h.apiMW = append(h.apiMW, mw...) }
}

func NewForecastEchoHandler(logger *xlogger.Logger, batch *usecase.BatchForecaster, opts ...HandlerOption) *ForecastEchoHandler {
	if logger == nil {
		logger = xlogger.NewNop()
	}
	h := &ForecastEchoHandler{
		logger:  logger,
		batch:   batch,
		checks:  make(map[string]HealthCheck),
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api", h.apiMW...)
	g.POST("/predict", h.Predict)
	if h.jobs != nil {
		g.POST("/predict/jobs", h.EnqueueJob)
		g.GET("/predict/jobs/:id", h.JobResult)
	}
	if h.sku != nil {
		g.GET("/forecast/:sku", h.SKUForecast)
	}
}

// PredictError is the 400 body of /api/predict. Error carries the message
// older clients match on; Errors lists the individual violations.
type PredictError struct {
	Error  string                  `json:"error"`
	Errors []xhttp.ValidationError `json:"errors,omitempty"`
}

const errInvalidDetails = "Missing or invalid details"

// Predict answers with the bare sku -> forecast mapping.
func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	req := &models.RawForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return c.JSON(http.StatusBadRequest, predictError(verr))
	}

	res, err := h.batch.RunRaw(c.Request().Context(), "http", req)
	if err != nil {
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ForecastEchoHandler) SKUForecast(c echo.Context) error {
	req := &models.SKUForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var to time.Time
	if req.To != "" {
		t, ok := xhttp.ParseTime(req.To)
		if !ok {
			return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
				Code:    "ERR_TIME",
				Field:   "To",
				Message: "to must be RFC3339, a date or unix seconds",
			}})
		}
		to = t
	}

	res, err := h.sku.Forecast(c.Request().Context(), req.SKU, req.Store, req.Days, req.Horizon, to)
	if err != nil {
		h.logger.Error("sku forecast usecase error",
			xlogger.String("sku", req.SKU),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("sales store unavailable").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) EnqueueJob(c echo.Context) error {
	req := &models.RawForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	id, err := h.jobs.Enqueue(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("enqueue job error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("job queue unavailable").WithError(err))
	}
	return xhttp.AcceptedResponse(c, models.JobAccepted{JobID: id})
}

func (h *ForecastEchoHandler) JobResult(c echo.Context) error {
	req := &models.JobStatusRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	out, err := h.jobs.Result(c.Request().Context(), req.ID)
	if errors.Is(err, usecase.ErrNotFound) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("job %s has no result yet", req.ID))
	}
	if err != nil {
		h.logger.Error("job result error", xlogger.String("id", req.ID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, out)
}

// Health reports 503 as soon as one dependency fails its probe.
func (h *ForecastEchoHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := xhttp.HealthStatus{Status: "ok", Checks: make(map[string]string, len(names))}
	code := http.StatusOK
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status.Checks[name] = err.Error()
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Checks[name] = "ok"
	}
	return c.JSON(code, status)
}

func predictError(verr interface{}) PredictError {
	errs, _ := verr.([]xhttp.ValidationError)
	out := PredictError{Error: "Invalid request", Errors: errs}
	for _, e := range errs {
		if e.Field == "Details" || e.Code == "ERR_BIND" {
			out.Error = errInvalidDetails
			return out
		}
	}
	if len(errs) > 0 && errs[0].Field == "Horizon" {
		out.Error = "Invalid horizon"
	}
	return out
}
