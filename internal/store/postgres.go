// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// HistoryRecord is one completed generation as persisted.
type HistoryRecord struct {
	RequestID   string
	CustomerID  string
	ResourceID  string
	Method      string
	Quality     int
	Cost        float64
	DurationMS  int64
	Score       int
	Confidence  float64
	GeneratedAt time.Time
}

// HistoryStore persists one row per completed generation and reads back a
// customer's recent history for the dashboard. The table name comes from
// configuration and never from request data.
type HistoryStore struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func NewHistoryStore(db *sql.DB, table string, log logger.Logger) *HistoryStore {
	if table == "" {
		table = "generation_history"
	}
	return &HistoryStore{
		db:     db,
		table:  table,
		logger: log.With(map[string]interface{}{"component": "history_store"}),
	}
}

func (s *HistoryStore) Record(ctx context.Context, out *generation.Outcome, customerID string, resourceID generation.ResourceID) error {
	query := fmt.Sprintf(`
		INSERT INTO %s
			(request_id, customer_id, resource_id, method, quality, cost, duration_ms, score, confidence, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, s.table)

	res := out.Result
	_, err := s.db.ExecContext(ctx, query,
		out.RequestID,
		customerID,
		string(resourceID),
		string(res.GenerationMethod),
		res.Quality,
		res.Cost,
		res.DurationMS,
		out.Analysis.Score,
		res.Confidence,
		time.Now().UTC(),
	)
	if err != nil {
		return errors.NewHistoryWriteFailedError(err)
	}
	return nil
}

func (s *HistoryStore) RecentForCustomer(ctx context.Context, customerID string, limit int) ([]HistoryRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := fmt.Sprintf(`
		SELECT request_id, customer_id, resource_id, method, quality, cost, duration_ms, score, confidence, generated_at
		FROM %s
		WHERE customer_id = $1
		ORDER BY generated_at DESC
		LIMIT $2`, s.table)

	rows, err := s.db.QueryContext(ctx, query, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []HistoryRecord
	for rows.Next() {
		var r HistoryRecord
		if err := rows.Scan(&r.RequestID, &r.CustomerID, &r.ResourceID, &r.Method,
			&r.Quality, &r.Cost, &r.DurationMS, &r.Score, &r.Confidence, &r.GeneratedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// TotalCostForCustomer sums what the customer's generations have cost.
func (s *HistoryStore) TotalCostForCustomer(ctx context.Context, customerID string) (float64, error) {
	query := fmt.Sprintf(`SELECT SUM(cost) FROM %s WHERE customer_id = $1`, s.table)

	var total sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, query, customerID).Scan(&total); err != nil {
		return 0, err
	}
	return total.Float64, nil
}
