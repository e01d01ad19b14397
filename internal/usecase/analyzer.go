package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	"BizPulse/internal/services/analytics"
	"BizPulse/internal/services/ingest"
	"BizPulse/internal/services/sample"
	pkgcache "BizPulse/pkg/cache"
	applogger "BizPulse/pkg/logger"
)

// ErrNoData is returned when an operation needs a stored dataset and
// none has been loaded yet.
var ErrNoData = errors.New("no data available")

const (
	reportCachePrefix = "report"

	defaultForecastMonths = 3
)

var reportCachePattern = pkgcache.BuildPattern(reportCachePrefix + ":")

// AlertNotifier pushes fired alerts to an external channel.
type AlertNotifier interface {
	Notify(ctx context.Context, alerts []models.Alert)
}

// Analyzer orchestrates dataset access and the analytics engine for the
// dashboard endpoints. Reports over the stored dataset are cached until
// the dataset changes.
type Analyzer struct {
	store    domrepo.DatasetStore
	cache    pkgcache.Service
	metrics  domrepo.Metrics
	gen      *sample.Generator
	ingest   *IngestProcessor
	notifier AlertNotifier
	l        *applogger.Logger
	cacheTTL time.Duration
}

func NewAnalyzer(
	store domrepo.DatasetStore,
	cache pkgcache.Service,
	metrics domrepo.Metrics,
	gen *sample.Generator,
	ingest *IngestProcessor,
	l *applogger.Logger,
	cacheTTL time.Duration,
) *Analyzer {
	return &Analyzer{
		store:    store,
		cache:    cache,
		metrics:  metrics,
		gen:      gen,
		ingest:   ingest,
		l:        l,
		cacheTTL: cacheTTL,
	}
}

// SetNotifier attaches an alert notifier. Alerts detected while loading
// a new dataset are pushed through it.
func (a *Analyzer) SetNotifier(n AlertNotifier) {
	a.notifier = n
}

// SampleCatalog lists the built-in sample datasets.
func (a *Analyzer) SampleCatalog() []models.SampleDataset {
	return sample.Catalog()
}

// LoadSample generates a sample dataset, makes it the stored dataset
// and returns a full report over it.
func (a *Analyzer) LoadSample(ctx context.Context, st domrepo.SampleType) (*models.Report, error) {
	rows := a.gen.Generate(st)
	if err := a.ingest.StoreDataset(ctx, rows, "sample"); err != nil {
		return nil, err
	}
	a.invalidateReports(ctx)

	ds := analytics.Clean(rows)
	report := a.buildReport(ds, rows.Warnings, reportOptions{})
	a.notifyAlerts(ctx, report.Alerts)
	return report, nil
}

// UploadTable validates an uploaded table, stores it as the current
// dataset and returns a full report. Source labels the upload origin
// for metrics.
func (a *Analyzer) UploadTable(ctx context.Context, table models.RawTable, source string) (*models.Report, error) {
	rows, err := analytics.Validate(table)
	if err != nil {
		a.metrics.RecordError("validation")
		return nil, err
	}
	if err := a.ingest.StoreDataset(ctx, *rows, source); err != nil {
		return nil, err
	}
	a.invalidateReports(ctx)

	ds := analytics.Clean(*rows)
	report := a.buildReport(ds, rows.Warnings, reportOptions{})
	a.notifyAlerts(ctx, report.Alerts)
	return report, nil
}

// Analytics computes a report for inline data or the stored dataset,
// honoring the request's department filter, forecast horizon, alert
// threshold and optional scenario adjustment.
func (a *Analyzer) Analytics(ctx context.Context, req *models.AnalyticsRequest) (*models.Report, error) {
	opts := reportOptions{
		Department:         req.Department,
		ForecastMonths:     req.ForecastMonths,
		AlertThreshold:     req.AlertThreshold,
		ScenarioAdjustment: req.ScenarioAdjustment,
	}

	if len(req.Data) > 0 {
		rows, err := analytics.Validate(ingest.FromInlineRows(req.Data))
		if err != nil {
			a.metrics.RecordError("validation")
			return nil, err
		}
		return a.buildReport(analytics.Clean(*rows), rows.Warnings, opts), nil
	}

	key := reportCacheKey(opts)
	var cached string
	err := a.cache.Get(ctx, key, &cached)
	if err == nil {
		var report models.Report
		if uerr := json.Unmarshal([]byte(cached), &report); uerr == nil {
			return &report, nil
		}
	} else if !errors.Is(err, pkgcache.ErrCacheMiss) && a.l != nil {
		a.l.Warn("report cache read failed", applogger.Error(err))
	}

	rows, err := a.loadStored(ctx)
	if err != nil {
		return nil, err
	}

	report := a.buildReport(analytics.Clean(rows), rows.Warnings, opts)
	if encoded, merr := json.Marshal(report); merr == nil {
		if err := a.cache.Set(ctx, key, string(encoded), a.cacheTTL); err != nil && a.l != nil {
			a.l.Warn("report cache write failed", applogger.Error(err))
		}
	}
	return report, nil
}

// Forecast projects revenue for the stored dataset.
func (a *Analyzer) Forecast(ctx context.Context, months int) ([]models.ForecastPoint, error) {
	rows, err := a.loadStored(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Forecast(analytics.Clean(rows), months), nil
}

// Scenario models a revenue adjustment over the stored dataset.
func (a *Analyzer) Scenario(ctx context.Context, adjustment float64) ([]models.ScenarioRecord, models.ScenarioKpis, error) {
	rows, err := a.loadStored(ctx)
	if err != nil {
		return nil, models.ScenarioKpis{}, err
	}
	scenario := analytics.ModelScenario(analytics.Clean(rows), adjustment)
	return scenario, analytics.ScenarioTotals(scenario), nil
}

// ExportCSV serializes the stored dataset, with derived fields, as CSV.
func (a *Analyzer) ExportCSV(ctx context.Context) ([]byte, error) {
	rows, err := a.loadStored(ctx)
	if err != nil {
		return nil, err
	}
	ds := analytics.Clean(rows)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "revenue", "costs", "customers"}
	if ds.HasDepartment {
		header = append(header, "department")
	}
	header = append(header, "profit", "profit_margin")
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range ds.Records {
		row := []string{
			rec.Date.String(),
			strconv.FormatFloat(rec.Revenue, 'f', -1, 64),
			strconv.FormatFloat(rec.Costs, 'f', -1, 64),
			strconv.FormatInt(rec.Customers, 10),
		}
		if ds.HasDepartment {
			row = append(row, rec.Department)
		}
		row = append(row,
			strconv.FormatFloat(rec.Profit, 'f', -1, 64),
			strconv.FormatFloat(rec.ProfitMargin, 'f', -1, 64),
		)
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Health pings the dataset store.
// DatasetSize reports the number of stored records.
func (a *Analyzer) DatasetSize(ctx context.Context) (int, error) {
	return a.store.Count(ctx)
}

func (a *Analyzer) Health(ctx context.Context) error {
	return a.store.Health(ctx)
}

func (a *Analyzer) loadStored(ctx context.Context) (models.ValidatedRows, error) {
	rows, err := a.store.LoadAll(ctx)
	if err != nil {
		a.metrics.RecordError("load_dataset")
		return models.ValidatedRows{}, fmt.Errorf("load dataset: %w", err)
	}
	if len(rows.Records) == 0 {
		return models.ValidatedRows{}, ErrNoData
	}
	return rows, nil
}

func (a *Analyzer) notifyAlerts(ctx context.Context, alerts []models.Alert) {
	if a.notifier == nil || len(alerts) == 0 {
		return
	}
	a.notifier.Notify(ctx, alerts)
}

func (a *Analyzer) invalidateReports(ctx context.Context) {
	if err := a.cache.DeleteByPattern(ctx, reportCachePattern); err != nil && a.l != nil {
		a.l.Warn("report cache invalidation failed", applogger.Error(err))
	}
}

type reportOptions struct {
	Department         string
	ForecastMonths     int
	AlertThreshold     float64
	ScenarioAdjustment *float64
}

func reportCacheKey(opts reportOptions) string {
	scenario := "none"
	if opts.ScenarioAdjustment != nil {
		scenario = strconv.FormatFloat(*opts.ScenarioAdjustment, 'f', -1, 64)
	}
	return pkgcache.GenerateKeyWithParams(reportCachePrefix,
		opts.Department,
		opts.ForecastMonths,
		strconv.FormatFloat(opts.AlertThreshold, 'f', -1, 64),
		scenario,
	)
}

// buildReport runs the full engine pass over a cleaned dataset.
func (a *Analyzer) buildReport(ds models.Dataset, warnings []models.Warning, opts reportOptions) *models.Report {
	start := time.Now()

	ds = analytics.FilterDepartment(ds, opts.Department)

	months := opts.ForecastMonths
	if months <= 0 {
		months = defaultForecastMonths
	}
	threshold := opts.AlertThreshold
	if threshold <= 0 {
		threshold = analytics.DefaultAlertThreshold
	}

	kpis := analytics.CalculateKpis(ds)
	report := &models.Report{
		Records:     ds.Records,
		Kpis:        kpis,
		Forecast:    analytics.Forecast(ds, months),
		Departments: analytics.AggregateDepartments(ds),
		Warnings:    warnings,
		RecordCount: ds.Len(),
	}
	// An empty dataset has nothing to alert on; the zero-value margin
	// would otherwise trip the low-margin rule.
	if ds.Len() > 0 {
		report.Alerts = analytics.DetectAlerts(kpis, threshold)
	}
	if opts.ScenarioAdjustment != nil {
		report.Scenario = analytics.ModelScenario(ds, *opts.ScenarioAdjustment)
	}

	a.metrics.RecordLatency("build_report", time.Since(start).Seconds())
	return report
}
