package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	pkgch "github.com/elysenoe925-creator/NTS-PROJECT/pkg/clickhouse"
	applogger "github.com/elysenoe925-creator/NTS-PROJECT/pkg/logger"
)

// insertChunk bounds the rows of one multi-row INSERT.
const insertChunk = 2000

// CHSalesStore keeps raw sale lines in ClickHouse and aggregates them per day.
type CHSalesStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

func NewCHSalesStore(ch *pkgch.Client, table string, l *applogger.Logger) *CHSalesStore {
	if l == nil {
		l = applogger.NewNop()
	}
	return &CHSalesStore{db: ch.DB(), table: table, l: l}
}

// SalesSchema returns the idempotent DDL for the sales table.
func SalesSchema(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
    ts    DateTime,
    sku   String,
    store LowCardinality(String),
    qty   Float64
) ENGINE = MergeTree
PARTITION BY toYYYYMM(ts)
ORDER BY (sku, store, ts)`, database, table),
	}
}

func (s *CHSalesStore) DailySales(ctx context.Context, sku, store string, from, to time.Time) ([]models.DailySales, error) {
	start := time.Now()
	q, args := dailySalesQuery(s.table, sku, store, from, to)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		s.l.Error("clickhouse daily_sales query error",
			applogger.String("table", s.table),
			applogger.String("sku", sku),
			applogger.Error(err))
		return nil, fmt.Errorf("daily sales: %w", err)
	}
	defer rows.Close()

	out := make([]models.DailySales, 0, 128)
	for rows.Next() {
		var d models.DailySales
		if err := rows.Scan(&d.Day, &d.Qty); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	s.l.Debug("clickhouse daily_sales ok",
		applogger.String("sku", sku),
		applogger.String("store", store),
		applogger.Int("rows", len(out)),
		applogger.Duration("duration_ms", time.Since(start)))
	return out, nil
}

func dailySalesQuery(table, sku, store string, from, to time.Time) (string, []interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "SELECT toDate(ts) AS day, sum(qty) AS qty FROM %s WHERE sku = ? AND ts >= ? AND ts < ?", table)
	args := []interface{}{sku, from.UTC(), to.UTC()}
	if store != "" {
		b.WriteString(" AND store = ?")
		args = append(args, store)
	}
	b.WriteString(" GROUP BY day ORDER BY day ASC")
	return b.String(), args
}

// RecordSales inserts sale lines with multi-row VALUES to reduce round-trips.
func (s *CHSalesStore) RecordSales(ctx context.Context, sales []models.Sale) error {
	for startIdx := 0; startIdx < len(sales); startIdx += insertChunk {
		end := startIdx + insertChunk
		if end > len(sales) {
			end = len(sales)
		}
		q, args := insertSalesQuery(s.table, sales[startIdx:end])
		if q == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("insert sales: %w", err)
		}
	}
	return nil
}

func insertSalesQuery(table string, sales []models.Sale) (string, []interface{}) {
	values := make([]string, 0, len(sales))
	args := make([]interface{}, 0, len(sales)*4)
	for _, sl := range sales {
		if sl.SKU == "" || sl.TS.IsZero() {
			continue
		}
		values = append(values, "(?, ?, ?, ?)")
		args = append(args, sl.TS.UTC(), sl.SKU, sl.Store, sl.Qty)
	}
	if len(values) == 0 {
		return "", nil
	}
	return fmt.Sprintf("INSERT INTO %s (ts, sku, store, qty) VALUES %s", table, strings.Join(values, ",")), args
}

func (s *CHSalesStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var (
	_ domrepo.SalesStore  = (*CHSalesStore)(nil)
	_ domrepo.SalesWriter = (*CHSalesStore)(nil)
)
