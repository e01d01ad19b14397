package api

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	models "BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	"BizPulse/internal/service/metrics"
	"BizPulse/internal/service/ratelimit"
	"BizPulse/internal/services/analytics"
	"BizPulse/internal/services/ingest"
	"BizPulse/internal/usecase"
	xhttp "BizPulse/pkg/http"
	xlogger "BizPulse/pkg/logger"
)

const apiVersion = "1.0.0"

// uploadMaxBytes caps uploaded spreadsheet size.
const uploadMaxBytes = 10 << 20

// DashboardHandler implements the Echo-based dashboard API.
type DashboardHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	rl       *ratelimit.Limiter
}

func NewDashboardHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *DashboardHandler {
	metrics.Register()
	return &DashboardHandler{
		logger:   logger,
		analyzer: analyzer,
		rl:       ratelimit.New(),
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/sample-datasets", h.SampleDatasets)
	g.GET("/sample-data/:type", h.SampleData)
	g.POST("/upload", h.Upload)
	g.POST("/analytics", h.Analytics)
	g.POST("/forecast", h.Forecast)
	g.POST("/scenario", h.Scenario)
	g.GET("/export/csv", h.ExportCSV)
}

func (h *DashboardHandler) observe(endpoint string, start time.Time) {
	metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func (h *DashboardHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	status := "healthy"
	if err := h.analyzer.Health(ctx); err != nil {
		h.logger.Warn("health store ping failed", xlogger.Error(err))
		status = "degraded"
	}
	payload := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   apiVersion,
	}
	if status == "healthy" {
		if n, err := h.analyzer.DatasetSize(ctx); err == nil {
			payload["records"] = n
		}
	}
	return xhttp.SuccessResponse(c, payload)
}

func (h *DashboardHandler) SampleDatasets(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.analyzer.SampleCatalog())
}

func (h *DashboardHandler) SampleData(c echo.Context) error {
	start := time.Now()
	defer h.observe("sample_data", start)

	raw := c.Param("type")
	if raw != "" && !domrepo.IsValidSampleType(domrepo.SampleType(raw)) {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("unknown sample dataset: %s", raw))
	}
	st := domrepo.NormalizeSampleType(raw)

	report, err := h.analyzer.LoadSample(c.Request().Context(), st)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("sample_data").Inc()
		h.logger.Error("load sample failed", xlogger.String("type", string(st)), xlogger.Error(err))
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *DashboardHandler) Upload(c echo.Context) error {
	start := time.Now()
	defer h.observe("upload", start)

	if !h.rl.Allow(c.RealIP()+":upload", 5, 1) {
		h.logger.Warn("upload rate limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "too many uploads, slow down")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("No file provided"))
	}
	if fh.Filename == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("No file selected"))
	}
	if fh.Size > uploadMaxBytes {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("file exceeds %d bytes", uploadMaxBytes))
	}

	table, err := h.decodeUpload(fh)
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	report, err := h.analyzer.UploadTable(c.Request().Context(), table, "upload")
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("upload").Inc()
		h.logger.Error("upload processing failed",
			xlogger.String("filename", fh.Filename),
			xlogger.Error(err),
		)
		return h.errorResponse(c, err)
	}

	h.logger.Info("dataset uploaded",
		xlogger.String("filename", fh.Filename),
		xlogger.Int("records", report.RecordCount),
	)
	return xhttp.SuccessResponse(c, report)
}

func (h *DashboardHandler) decodeUpload(fh *multipart.FileHeader) (models.RawTable, error) {
	f, err := fh.Open()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".csv":
		return ingest.ParseCSV(f)
	case ".xlsx":
		return ingest.ParseXLSX(f)
	default:
		return models.RawTable{}, fmt.Errorf("file must be CSV or XLSX format")
	}
}

func (h *DashboardHandler) Analytics(c echo.Context) error {
	start := time.Now()
	defer h.observe("analytics", start)

	req := &models.AnalyticsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.analyzer.Analytics(c.Request().Context(), req)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("analytics").Inc()
		h.logger.Error("analytics failed", xlogger.Error(err))
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *DashboardHandler) Forecast(c echo.Context) error {
	start := time.Now()
	defer h.observe("forecast", start)

	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	points, err := h.analyzer.Forecast(c.Request().Context(), req.Months)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("forecast").Inc()
		h.logger.Error("forecast failed", xlogger.Error(err))
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"forecast": points,
		"months":   req.Months,
	})
}

func (h *DashboardHandler) Scenario(c echo.Context) error {
	start := time.Now()
	defer h.observe("scenario", start)

	req := &models.ScenarioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	scenario, totals, err := h.analyzer.Scenario(c.Request().Context(), req.Adjustment)
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("scenario").Inc()
		h.logger.Error("scenario failed", xlogger.Error(err))
		return h.errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"scenario":      scenario,
		"scenario_kpis": totals,
	})
}

func (h *DashboardHandler) ExportCSV(c echo.Context) error {
	start := time.Now()
	defer h.observe("export_csv", start)

	data, err := h.analyzer.ExportCSV(c.Request().Context())
	if err != nil {
		metrics.EndpointErrors.WithLabelValues("export_csv").Inc()
		h.logger.Error("export failed", xlogger.Error(err))
		return h.errorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=dashboard_export.csv")
	return c.Blob(http.StatusOK, "text/csv", data)
}

// errorResponse maps domain errors to HTTP responses.
func (h *DashboardHandler) errorResponse(c echo.Context, err error) error {
	var verr *analytics.ValidationError
	if errors.As(err, &verr) {
		appErr := xhttp.BadRequestError(verr.Error()).WithParam("kind", verr.Kind)
		if len(verr.Columns) > 0 {
			appErr = appErr.WithParam("columns", verr.Columns)
		}
		return xhttp.AppErrorResponse(c, appErr)
	}
	if errors.Is(err, usecase.ErrNoData) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("No data available"))
	}
	return xhttp.AppErrorResponse(c, xhttp.InternalError("Something went wrong").WithError(err))
}
