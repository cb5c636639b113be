package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"accounts-backend/domain/entities"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type received struct {
	licenseKey  string
	contentType string
	body        []byte
}

// collectServer records every delivery and answers with the given status.
func collectServer(t *testing.T, status int) (*httptest.Server, func() []received) {
	t.Helper()

	var mu sync.Mutex
	var calls []received

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		mu.Lock()
		calls = append(calls, received{
			licenseKey:  r.Header.Get("X-License-Key"),
			contentType: r.Header.Get("Content-Type"),
			body:        body,
		})
		mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []received {
		mu.Lock()
		defer mu.Unlock()
		return append([]received(nil), calls...)
	}
}

func TestRelay_ShipsTraceEnvelope(t *testing.T) {
	srv, calls := collectServer(t, http.StatusAccepted)

	relay := NewRelay(Config{Endpoint: srv.URL, LicenseKey: "key-123"}, zap.NewNop())

	logID := uuid.New()
	relay.Send(entities.NewTrace(logID, entities.LevelError, "boom", "stack"))
	relay.Close()

	got := calls()
	require.Len(t, got, 1)
	assert.Equal(t, "key-123", got[0].licenseKey)
	assert.Equal(t, "application/json", got[0].contentType)

	var payload []struct {
		Message    string `json:"message"`
		Timestamp  int64  `json:"timestamp"`
		Attributes struct {
			Level string          `json:"level"`
			Log   json.RawMessage `json:"log"`
		} `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal(got[0].body, &payload))
	require.Len(t, payload, 1)

	assert.Equal(t, "boom", payload[0].Message)
	assert.Equal(t, "ERROR", payload[0].Attributes.Level)
	assert.InDelta(t, time.Now().UnixMilli(), payload[0].Timestamp, float64(10*time.Second/time.Millisecond))

	var log struct {
		LogID      string `json:"logId"`
		Level      string `json:"level"`
		Message    string `json:"message"`
		StackTrace string `json:"stackTrace"`
	}
	require.NoError(t, json.Unmarshal(payload[0].Attributes.Log, &log))
	assert.Equal(t, logID.String(), log.LogID)
	assert.Equal(t, "Error", log.Level)
	assert.Equal(t, "boom", log.Message)
	assert.Equal(t, "stack", log.StackTrace)
}

func TestRelay_RequestSeverityFromStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{200, "INFO"},
		{301, "INFO"},
		{404, "WARNING"},
		{500, "ERROR"},
	}

	for _, tt := range tests {
		srv, calls := collectServer(t, http.StatusOK)
		relay := NewRelay(Config{Endpoint: srv.URL}, zap.NewNop())

		record := entities.NewRequestLog(uuid.New(), "GET", "/users")
		record.Complete(tt.status, nil, time.Now().UTC())
		relay.Send(record)
		relay.Close()

		got := calls()
		require.Len(t, got, 1)

		var payload []struct {
			Message    string `json:"message"`
			Attributes struct {
				Level string `json:"level"`
			} `json:"attributes"`
		}
		require.NoError(t, json.Unmarshal(got[0].body, &payload))
		require.Len(t, payload, 1)
		assert.Equal(t, tt.level, payload[0].Attributes.Level)
		assert.Contains(t, payload[0].Message, "GET /users")
	}
}

func TestRelay_RejectionIsSwallowed(t *testing.T) {
	srv, calls := collectServer(t, http.StatusForbidden)
	relay := NewRelay(Config{Endpoint: srv.URL}, zap.NewNop())

	assert.NotPanics(t, func() {
		relay.Send(entities.NewTrace(uuid.New(), entities.LevelInfo, "hello", ""))
		relay.Close()
	})
	assert.Len(t, calls(), 1)
}

func TestRelay_UnreachableEndpointIsSwallowed(t *testing.T) {
	relay := NewRelay(Config{Endpoint: "http://127.0.0.1:1", Timeout: time.Second}, zap.NewNop())

	assert.NotPanics(t, func() {
		relay.Send(entities.NewTrace(uuid.New(), entities.LevelInfo, "hello", ""))
		relay.Close()
	})
}

func TestRelay_SendAfterCloseDropsRecord(t *testing.T) {
	srv, calls := collectServer(t, http.StatusOK)
	relay := NewRelay(Config{Endpoint: srv.URL}, zap.NewNop())
	relay.Close()

	relay.Send(entities.NewTrace(uuid.New(), entities.LevelInfo, "late", ""))

	assert.Empty(t, calls())
}

func TestRelay_CloseFlushesQueue(t *testing.T) {
	srv, calls := collectServer(t, http.StatusOK)
	relay := NewRelay(Config{Endpoint: srv.URL, QueueSize: 16}, zap.NewNop())

	for i := 0; i < 5; i++ {
		relay.Send(entities.NewTrace(uuid.New(), entities.LevelInfo, "msg", ""))
	}
	relay.Close()

	assert.Len(t, calls(), 5)
}
