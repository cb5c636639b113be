package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"accounts-backend/domain/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLogRepository_LogTrace_AssignsTraceID(t *testing.T) {
	repo := NewLogRepository(newTestDB(t))
	ctx := context.Background()

	first := entities.NewTrace(uuid.New(), entities.LevelError, "first", "stack")
	second := entities.NewTrace(uuid.New(), entities.LevelError, "second", "")

	require.NoError(t, repo.LogTrace(ctx, first))
	require.NoError(t, repo.LogTrace(ctx, second))

	assert.Equal(t, int64(1), first.TraceID)
	assert.Equal(t, int64(2), second.TraceID)
}

func TestLogRepository_LogTrace_WithoutCorrelationID(t *testing.T) {
	repo := NewLogRepository(newTestDB(t))

	trace := &entities.Trace{
		Timestamp: time.Now().UTC(),
		Level:     entities.LevelWarning,
		Message:   "orphan",
	}

	require.NoError(t, repo.LogTrace(context.Background(), trace))
	assert.NotZero(t, trace.TraceID)
}

func TestLogRepository_RequestLifecycle(t *testing.T) {
	repo := NewLogRepository(newTestDB(t))
	ctx := context.Background()

	logID := uuid.New()
	userID := "ABC123"
	reqBody := `{"name":"x"}`

	record := entities.NewRequestLog(logID, "POST", "/users")
	record.UserID = &userID
	record.RequestBody = &reqBody
	require.NoError(t, repo.LogRequest(ctx, record))

	// The stored row is incomplete until the handler returns.
	initial, err := repo.GetRequestLog(ctx, logID)
	require.NoError(t, err)
	require.NotNil(t, initial)
	assert.Equal(t, 0, initial.StatusCode)
	assert.Nil(t, initial.ResponseBody)
	assert.Nil(t, initial.EndDate)
	assert.Nil(t, initial.Duration)
	require.NotNil(t, initial.UserID)
	assert.Equal(t, userID, *initial.UserID)

	respBody := `{"userId":"ABC123"}`
	record.Complete(201, &respBody, record.StartDate.Add(42*time.Millisecond))
	require.NoError(t, repo.UpdateRequestLog(ctx, record))

	completed, err := repo.GetRequestLog(ctx, logID)
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.Equal(t, 201, completed.StatusCode)
	require.NotNil(t, completed.ResponseBody)
	assert.Equal(t, respBody, *completed.ResponseBody)
	assert.NotNil(t, completed.EndDate)
	require.NotNil(t, completed.Duration)
	assert.Equal(t, 42*time.Millisecond, *completed.Duration)
}

func TestLogRepository_UpdateUnknownRow(t *testing.T) {
	repo := NewLogRepository(newTestDB(t))

	record := entities.NewRequestLog(uuid.New(), "GET", "/users")
	record.Complete(200, nil, time.Now().UTC())

	err := repo.UpdateRequestLog(context.Background(), record)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no row")
}

func TestLogRepository_GetRequestLog_Missing(t *testing.T) {
	repo := NewLogRepository(newTestDB(t))

	got, err := repo.GetRequestLog(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLogRepository_CountTraces(t *testing.T) {
	repo := NewLogRepository(newTestDB(t))
	ctx := context.Background()

	logID := uuid.New()
	require.NoError(t, repo.LogTrace(ctx, entities.NewTrace(logID, entities.LevelError, "one", "")))
	require.NoError(t, repo.LogTrace(ctx, entities.NewTrace(logID, entities.LevelError, "two", "")))
	require.NoError(t, repo.LogTrace(ctx, entities.NewTrace(uuid.New(), entities.LevelError, "other", "")))

	n, err := repo.CountTraces(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
