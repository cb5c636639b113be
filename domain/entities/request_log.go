package entities

import (
	"time"

	"github.com/google/uuid"
)

// RequestLog is the audit record for one inbound call. It is written twice:
// once before the handler runs (entry data only) and once after it returns
// (status, response body, timing). A call that never returns leaves the
// record permanently incomplete; that is the record of what happened, not a
// defect to repair.
type RequestLog struct {
	LogID        uuid.UUID
	UserID       *string
	HTTPMethod   string
	Path         string
	StatusCode   int
	RequestBody  *string
	ResponseBody *string
	StartDate    time.Time
	EndDate      *time.Time
	Duration     *time.Duration
}

// NewRequestLog creates the initial (pre-dispatch) form of the record.
// StartDate is fixed here and never mutated.
func NewRequestLog(logID uuid.UUID, method, path string) *RequestLog {
	return &RequestLog{
		LogID:      logID,
		HTTPMethod: method,
		Path:       path,
		StartDate:  time.Now().UTC(),
	}
}

// Complete fills the post-dispatch fields exactly once.
func (l *RequestLog) Complete(status int, responseBody *string, end time.Time) {
	l.StatusCode = status
	l.ResponseBody = responseBody
	l.EndDate = &end
	d := end.Sub(l.StartDate)
	l.Duration = &d
}
