package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	"BizPulse/internal/services/sample"
	"BizPulse/internal/usecase"
	pkgcache "BizPulse/pkg/cache"
	xlogger "BizPulse/pkg/logger"
)

type fakeStore struct {
	mu   sync.Mutex
	rows models.ValidatedRows
}

var _ domrepo.DatasetStore = (*fakeStore)(nil)

func (s *fakeStore) Init(ctx context.Context) error { return nil }

func (s *fakeStore) Replace(ctx context.Context, records []models.Record, hasDepartment bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = models.ValidatedRows{Records: records, HasDepartment: hasDepartment}
	return nil
}

func (s *fakeStore) Append(ctx context.Context, records []models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows.Records = append(s.rows.Records, records...)
	return nil
}

func (s *fakeStore) LoadAll(ctx context.Context) (models.ValidatedRows, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows, nil
}

func (s *fakeStore) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows.Records), nil
}

func (s *fakeStore) Health(ctx context.Context) error { return nil }
func (s *fakeStore) Close() error                     { return nil }

type noopMetrics struct{}

var _ domrepo.Metrics = noopMetrics{}

func (noopMetrics) RecordRowsIngested(string, int)  {}
func (noopMetrics) RecordRowsDropped(string, int)   {}
func (noopMetrics) RecordError(string)              {}
func (noopMetrics) RecordLatency(string, float64)   {}
func (noopMetrics) RecordDatasetSize(int)           {}

func newTestHandler(t *testing.T) (*DashboardHandler, *echo.Echo) {
	t.Helper()
	logger, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	store := &fakeStore{}
	proc := usecase.NewIngestProcessor(nil, store, noopMetrics{}, usecase.BackendClickHouse)
	gen := sample.NewGenerator(sample.WithSeed(1))
	analyzer := usecase.NewAnalyzer(store, pkgcache.NewMemoryCache(), noopMetrics{}, gen, proc, logger, time.Minute)

	h := NewDashboardHandler(logger, analyzer)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, e
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if strings.Contains(rec.Header().Get(echo.HeaderContentType), "json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestHealthEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, env.Status)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "healthy", payload["status"])
	assert.Equal(t, apiVersion, payload["version"])
	assert.Equal(t, float64(0), payload["records"])
}

func TestSampleDatasetsEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	_, env := doJSON(t, e, http.MethodGet, "/api/sample-datasets", "")
	require.Equal(t, http.StatusOK, env.Status)

	var datasets []models.SampleDataset
	require.NoError(t, json.Unmarshal(env.Data, &datasets))
	require.Len(t, datasets, 4)
	assert.Equal(t, "finance", datasets[0].Key)
}

func TestSampleDataEndpoint(t *testing.T) {
	_, e := newTestHandler(t)

	_, env := doJSON(t, e, http.MethodGet, "/api/sample-data/finance", "")
	require.Equal(t, http.StatusOK, env.Status)

	var report models.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 12, report.RecordCount)
	assert.NotEmpty(t, report.Forecast)
}

func TestSampleDataUnknownType(t *testing.T) {
	_, e := newTestHandler(t)

	_, env := doJSON(t, e, http.MethodGet, "/api/sample-data/bogus", "")
	assert.Equal(t, http.StatusNotFound, env.Status)
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadCSV(t *testing.T) {
	_, e := newTestHandler(t)

	req := uploadRequest(t, "data.csv", "date,revenue,costs\n2024-01-01,100,40\n2024-02-01,200,60\n")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, http.StatusOK, env.Status)

	var report models.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 2, report.RecordCount)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	_, e := newTestHandler(t)

	req := uploadRequest(t, "data.txt", "whatever")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestUploadMissingFile(t *testing.T) {
	_, e := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", strings.NewReader(""))
	req.Header.Set(echo.HeaderContentType, echo.MIMEMultipartForm+"; boundary=x")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestUploadMissingColumns(t *testing.T) {
	_, e := newTestHandler(t)

	req := uploadRequest(t, "data.csv", "revenue,costs\n100,40\n")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, string(env.Data), "missing required columns")
}

func TestAnalyticsNoData(t *testing.T) {
	_, e := newTestHandler(t)

	_, env := doJSON(t, e, http.MethodPost, "/api/analytics", `{}`)
	assert.Equal(t, http.StatusBadRequest, env.Status)
	assert.Contains(t, string(env.Data), "No data available")
}

func TestAnalyticsInlineData(t *testing.T) {
	_, e := newTestHandler(t)

	body := `{"data":[{"date":"2024-01-01","revenue":100,"costs":40},{"date":"2024-02-01","revenue":200,"costs":60}]}`
	_, env := doJSON(t, e, http.MethodPost, "/api/analytics", body)
	require.Equal(t, http.StatusOK, env.Status)

	var report models.Report
	require.NoError(t, json.Unmarshal(env.Data, &report))
	assert.Equal(t, 2, report.RecordCount)
	assert.Equal(t, 300.0, report.Kpis.TotalRevenue)
}

func TestAnalyticsValidationRejectsLongHorizon(t *testing.T) {
	_, e := newTestHandler(t)

	_, env := doJSON(t, e, http.MethodPost, "/api/analytics", `{"forecast_months":100}`)
	assert.Equal(t, http.StatusBadRequest, env.Status)
}

func TestForecastEndpoint(t *testing.T) {
	_, e := newTestHandler(t)
	_, env := doJSON(t, e, http.MethodGet, "/api/sample-data/sales", "")
	require.Equal(t, http.StatusOK, env.Status)

	_, env = doJSON(t, e, http.MethodPost, "/api/forecast", `{"months":6}`)
	require.Equal(t, http.StatusOK, env.Status)

	var payload struct {
		Forecast []models.ForecastPoint `json:"forecast"`
		Months   int                    `json:"months"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, 6, payload.Months)
	assert.Len(t, payload.Forecast, 6)
}

func TestScenarioEndpoint(t *testing.T) {
	_, e := newTestHandler(t)
	_, env := doJSON(t, e, http.MethodGet, "/api/sample-data/finance", "")
	require.Equal(t, http.StatusOK, env.Status)

	_, env = doJSON(t, e, http.MethodPost, "/api/scenario", `{"adjustment":25}`)
	require.Equal(t, http.StatusOK, env.Status)

	var payload struct {
		Scenario []models.ScenarioRecord `json:"scenario"`
		Kpis     models.ScenarioKpis     `json:"scenario_kpis"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Len(t, payload.Scenario, 12)
	assert.Positive(t, payload.Kpis.TotalRevenue)
}

func TestExportCSVEndpoint(t *testing.T) {
	_, e := newTestHandler(t)
	_, env := doJSON(t, e, http.MethodGet, "/api/sample-data/finance", "")
	require.Equal(t, http.StatusOK, env.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/export/csv", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/csv")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "dashboard_export.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 13)
}

func TestExportCSVNoData(t *testing.T) {
	_, e := newTestHandler(t)

	_, env := doJSON(t, e, http.MethodGet, "/api/export/csv", "")
	assert.Equal(t, http.StatusBadRequest, env.Status)
}
