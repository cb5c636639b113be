package services

import (
	"context"
	"errors"
	"time"

	"accounts-backend/application/ports"
	"accounts-backend/domain/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNilTrace and friends signal caller contract violations, never
	// transient sink conditions. They are not retried and not absorbed.
	ErrNilTrace      = errors.New("trace must not be nil and must carry a correlation id")
	ErrNilRequestLog = errors.New("request log must not be nil")
)

// LoggerService is the single choke point for all audit records. It owns the
// failure policy for the two sinks: the durable repository is authoritative,
// the telemetry sink is a best-effort mirror and the fallback when the
// repository is down. A repository failure is mirrored, logged locally and
// then returned to the caller; it never escapes past the middleware that
// called in.
type LoggerService struct {
	repository ports.LogRepository
	telemetry  ports.TelemetrySink
	mirrorAll  bool
	fallback   *zap.Logger
}

// NewLoggerService creates a resilient logger over the two sinks. mirrorAll
// forwards every record to the telemetry sink, not only fallbacks.
func NewLoggerService(repository ports.LogRepository, telemetry ports.TelemetrySink, mirrorAll bool, fallback *zap.Logger) *LoggerService {
	return &LoggerService{
		repository: repository,
		telemetry:  telemetry,
		mirrorAll:  mirrorAll,
		fallback:   fallback,
	}
}

// LogTrace persists a diagnostic event. The trace and its correlation id are
// mandatory; their absence is a programming error and fails fast.
func (s *LoggerService) LogTrace(ctx context.Context, trace *entities.Trace) error {
	if trace == nil || trace.LogID == nil {
		return ErrNilTrace
	}

	if s.mirrorAll {
		s.telemetry.Send(trace)
	}

	if err := s.repository.LogTrace(ctx, trace); err != nil {
		s.divert(trace.LogID, "error logging trace: "+err.Error(), err)
		return err
	}
	return nil
}

// LogRequest persists the initial form of a request record. The record is
// mirrored only once it carries a status code, so the pre-dispatch write
// never doubles telemetry traffic.
func (s *LoggerService) LogRequest(ctx context.Context, log *entities.RequestLog) error {
	if log == nil {
		return ErrNilRequestLog
	}

	if s.mirrorAll && log.StatusCode != 0 {
		s.telemetry.Send(log)
	}

	if err := s.repository.LogRequest(ctx, log); err != nil {
		s.divert(&log.LogID, "error logging request: "+err.Error(), err)
		return err
	}
	return nil
}

// UpdateRequestLog persists the completed form of a request record.
func (s *LoggerService) UpdateRequestLog(ctx context.Context, log *entities.RequestLog) error {
	if log == nil {
		return ErrNilRequestLog
	}

	if s.mirrorAll && log.StatusCode != 0 {
		s.telemetry.Send(log)
	}

	if err := s.repository.UpdateRequestLog(ctx, log); err != nil {
		s.divert(&log.LogID, "error updating request log: "+err.Error(), err)
		return err
	}
	return nil
}

// divert routes a failed primary write to the telemetry sink and the local
// fallback channel so the record of the failure survives the outage.
func (s *LoggerService) divert(logID *uuid.UUID, message string, cause error) {
	s.telemetry.Send(&entities.Trace{
		LogID:      logID,
		Timestamp:  time.Now().UTC(),
		Level:      entities.LevelError,
		Message:    message,
		StackTrace: cause.Error(),
	})
	s.fallback.Error("primary log sink write failed",
		zap.Stringer("logId", logID),
		zap.Error(cause),
	)
}
