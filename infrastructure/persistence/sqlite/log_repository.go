package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"accounts-backend/domain/entities"

	"github.com/google/uuid"
)

// LogRepository is the durable (primary) log sink over sqlite.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a log repository over an open database.
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// LogTrace inserts a trace row. The store assigns TraceID, which is written
// back onto the entity.
func (r *LogRepository) LogTrace(ctx context.Context, trace *entities.Trace) error {
	var logID interface{}
	if trace.LogID != nil {
		logID = trace.LogID.String()
	}

	var stack interface{}
	if trace.StackTrace != "" {
		stack = trace.StackTrace
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO trace_log (log_id, timestamp, level, message, stack_trace)
		VALUES (?, ?, ?, ?, ?)
	`, logID, trace.Timestamp.UTC().Format(time.RFC3339Nano), string(trace.Level), trace.Message, stack)
	if err != nil {
		return fmt.Errorf("insert trace: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		trace.TraceID = id
	}
	return nil
}

// LogRequest inserts the initial form of a request row, before the handler
// has run. Completion fields stay NULL until UpdateRequestLog.
func (r *LogRepository) LogRequest(ctx context.Context, log *entities.RequestLog) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO request_log (log_id, user_id, http_method, path, status_code, request_body, start_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, log.LogID.String(), nullable(log.UserID), log.HTTPMethod, log.Path, log.StatusCode,
		nullable(log.RequestBody), log.StartDate.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert request log: %w", err)
	}
	return nil
}

// UpdateRequestLog fills the completion fields of an existing request row.
func (r *LogRepository) UpdateRequestLog(ctx context.Context, log *entities.RequestLog) error {
	var endDate, durationMs interface{}
	if log.EndDate != nil {
		endDate = log.EndDate.UTC().Format(time.RFC3339Nano)
	}
	if log.Duration != nil {
		durationMs = log.Duration.Milliseconds()
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE request_log
		SET status_code = ?, response_body = ?, end_date = ?, duration_ms = ?
		WHERE log_id = ?
	`, log.StatusCode, nullable(log.ResponseBody), endDate, durationMs, log.LogID.String())
	if err != nil {
		return fmt.Errorf("update request log: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update request log: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update request log: no row with log_id %s", log.LogID)
	}
	return nil
}

// GetRequestLog loads one request row, nil when absent. Used by tests and
// operational tooling, not by the request pipeline.
func (r *LogRepository) GetRequestLog(ctx context.Context, logID uuid.UUID) (*entities.RequestLog, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT log_id, user_id, http_method, path, status_code, request_body, response_body, start_date, end_date, duration_ms
		FROM request_log WHERE log_id = ?
	`, logID.String())

	log := &entities.RequestLog{}
	var id string
	var userID, requestBody, responseBody, startDate, endDate sql.NullString
	var durationMs sql.NullInt64

	err := row.Scan(&id, &userID, &log.HTTPMethod, &log.Path, &log.StatusCode,
		&requestBody, &responseBody, &startDate, &endDate, &durationMs)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan request log: %w", err)
	}

	log.LogID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse log_id: %w", err)
	}
	if userID.Valid {
		log.UserID = &userID.String
	}
	if requestBody.Valid {
		log.RequestBody = &requestBody.String
	}
	if responseBody.Valid {
		log.ResponseBody = &responseBody.String
	}
	if startDate.Valid {
		if log.StartDate, err = time.Parse(time.RFC3339Nano, startDate.String); err != nil {
			return nil, fmt.Errorf("parse start_date: %w", err)
		}
	}
	if endDate.Valid {
		end, err := time.Parse(time.RFC3339Nano, endDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse end_date: %w", err)
		}
		log.EndDate = &end
	}
	if durationMs.Valid {
		d := time.Duration(durationMs.Int64) * time.Millisecond
		log.Duration = &d
	}
	return log, nil
}

// CountTraces returns the number of trace rows joined to a correlation id.
func (r *LogRepository) CountTraces(ctx context.Context, logID uuid.UUID) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trace_log WHERE log_id = ?`, logID.String()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count traces: %w", err)
	}
	return n, nil
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}
