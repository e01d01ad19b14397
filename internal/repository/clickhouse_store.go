package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	pkgch "BizPulse/pkg/clickhouse"
	applogger "BizPulse/pkg/logger"
)

const (
	recordsTable = "business_records"
	metaTable    = "dataset_meta"
)

// SchemaStatements returns the idempotent DDL for the dataset tables.
func SchemaStatements() []string {
	return []string{
		fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                date Date,
                revenue Float64,
                costs Float64,
                customers Int64,
                department String,
                inserted_at DateTime DEFAULT now()
            ) ENGINE = MergeTree()
            ORDER BY date
        `, recordsTable),
		fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                id UInt8,
                has_department UInt8,
                record_count UInt64,
                updated_at DateTime DEFAULT now()
            ) ENGINE = ReplacingMergeTree(updated_at)
            ORDER BY id
        `, metaTable),
	}
}

// ClickHouseStore implements DatasetStore backed by ClickHouse.
type ClickHouseStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

func NewClickHouseStore(client *pkgch.Client) *ClickHouseStore {
	return &ClickHouseStore{client: client, db: client.DB()}
}

var _ domrepo.DatasetStore = (*ClickHouseStore)(nil)

// SetLogger injects a structured logger.
func (s *ClickHouseStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, SchemaStatements())
}

// Replace wipes the stored dataset and inserts records as the new one.
func (s *ClickHouseStore) Replace(ctx context.Context, records []models.Record, hasDepartment bool) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", recordsTable)); err != nil {
		return fmt.Errorf("truncate records: %w", err)
	}
	if err := s.insertBatch(ctx, records); err != nil {
		return err
	}

	hasDept := uint8(0)
	if hasDepartment {
		hasDept = 1
	}
	q := fmt.Sprintf("INSERT INTO %s (id, has_department, record_count, updated_at) VALUES (?, ?, ?, ?)", metaTable)
	if _, err := s.db.ExecContext(ctx, q, uint8(1), hasDept, uint64(len(records)), time.Now()); err != nil {
		return fmt.Errorf("update dataset meta: %w", err)
	}
	return nil
}

func (s *ClickHouseStore) Append(ctx context.Context, records []models.Record) error {
	return s.insertBatch(ctx, records)
}

func (s *ClickHouseStore) insertBatch(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	// Multi-row VALUES to reduce round-trips, chunked at 2000 rows.
	const chunkSize = 2000
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*5)
		for _, rec := range records[start:end] {
			values = append(values, "(?, ?, ?, ?, ?)")
			args = append(args, rec.Date.Time, rec.Revenue, rec.Costs, rec.Customers, rec.Department)
		}
		q := fmt.Sprintf("INSERT INTO %s (date, revenue, costs, customers, department) VALUES %s",
			recordsTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse insert batch error",
					applogger.Int("rows", end-start),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("insert records: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseStore) LoadAll(ctx context.Context) (models.ValidatedRows, error) {
	q := fmt.Sprintf("SELECT date, revenue, costs, customers, department FROM %s ORDER BY date, inserted_at", recordsTable)
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse load query error", applogger.Error(err))
		}
		return models.ValidatedRows{}, fmt.Errorf("load records: %w", err)
	}
	defer rows.Close()

	out := models.ValidatedRows{Records: make([]models.Record, 0, 256)}
	for rows.Next() {
		var rec models.Record
		var date time.Time
		if err := rows.Scan(&date, &rec.Revenue, &rec.Costs, &rec.Customers, &rec.Department); err != nil {
			return models.ValidatedRows{}, fmt.Errorf("scan record: %w", err)
		}
		rec.Date = models.DateOf(date)
		out.Records = append(out.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return models.ValidatedRows{}, fmt.Errorf("rows: %w", err)
	}

	hasDept, err := s.loadHasDepartment(ctx)
	if err != nil {
		return models.ValidatedRows{}, err
	}
	out.HasDepartment = hasDept
	return out, nil
}

func (s *ClickHouseStore) loadHasDepartment(ctx context.Context) (bool, error) {
	q := fmt.Sprintf("SELECT has_department FROM %s WHERE id = 1 ORDER BY updated_at DESC LIMIT 1", metaTable)
	var hasDept uint8
	err := s.db.QueryRowContext(ctx, q).Scan(&hasDept)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load dataset meta: %w", err)
	}
	return hasDept == 1, nil
}

func (s *ClickHouseStore) Count(ctx context.Context) (int, error) {
	var count uint64
	q := fmt.Sprintf("SELECT count() FROM %s", recordsTable)
	if err := s.db.QueryRowContext(ctx, q).Scan(&count); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return int(count), nil
}

func (s *ClickHouseStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseStore) Close() error {
	return nil // connection pool owned by pkg client
}
