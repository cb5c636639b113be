package ports

import (
	"context"

	"accounts-backend/domain/entities"
)

// UserRepository persists user accounts.
type UserRepository interface {
	GetAll(ctx context.Context) ([]*entities.User, error)
	GetByID(ctx context.Context, userID string) (*entities.User, error)
	Add(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, userID string) (bool, error)
}

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// LogRepository is the primary (durable) log sink. Writes may fail
// transiently; callers are expected to wrap it in the resilient logger
// rather than use it directly.
type LogRepository interface {
	LogTrace(ctx context.Context, trace *entities.Trace) error
	LogRequest(ctx context.Context, log *entities.RequestLog) error
	UpdateRequestLog(ctx context.Context, log *entities.RequestLog) error
}

// TelemetrySink is the secondary, best-effort log sink. Send must never
// block the caller and never returns an error: transport failures are the
// sink's own problem and surface only in local diagnostics. Records may be
// either *entities.Trace or *entities.RequestLog.
type TelemetrySink interface {
	Send(record interface{})
}
