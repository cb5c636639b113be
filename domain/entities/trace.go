package entities

import (
	"time"

	"github.com/google/uuid"
)

// LogLevel is the severity of a trace, ordered lowest to highest.
type LogLevel string

const (
	LevelTrace    LogLevel = "Trace"
	LevelDebug    LogLevel = "Debug"
	LevelInfo     LogLevel = "Info"
	LevelWarning  LogLevel = "Warning"
	LevelError    LogLevel = "Error"
	LevelCritical LogLevel = "Critical"
)

// Trace is a single diagnostic/error event. LogID joins it to the RequestLog
// minted for the same call; TraceID is assigned by the store on insert.
type Trace struct {
	TraceID    int64
	LogID      *uuid.UUID
	Timestamp  time.Time
	Level      LogLevel
	Message    string
	StackTrace string
}

// NewTrace creates a trace tagged with the given correlation id.
func NewTrace(logID uuid.UUID, level LogLevel, message, stackTrace string) *Trace {
	return &Trace{
		LogID:      &logID,
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		StackTrace: stackTrace,
	}
}
