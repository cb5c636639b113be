package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"accounts-backend/domain/entities"

	"go.uber.org/zap"
)

// Config holds the secondary sink's transport settings. LicenseKey is the
// shared secret the vendor expects on every call.
type Config struct {
	Endpoint   string
	LicenseKey string
	QueueSize  int
	Timeout    time.Duration
}

// Relay ships log records to an external telemetry endpoint. Sends are
// queued on a bounded channel and shipped by a single worker goroutine, so a
// burst of failures can never grow unbounded concurrent work; when the queue
// is full the record is dropped with a local warning. Transport failures are
// swallowed at this boundary and never reach callers.
type Relay struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger

	queue chan interface{}
	done  chan struct{}
	wg    sync.WaitGroup
}

// NewRelay creates a relay and starts its worker.
func NewRelay(cfg Config, logger *zap.Logger) *Relay {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	r := &Relay{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		queue:  make(chan interface{}, cfg.QueueSize),
		done:   make(chan struct{}),
	}

	r.wg.Add(1)
	go r.runLoop()

	return r
}

// Send enqueues a record for delivery. It never blocks: if the queue is full
// the record is dropped.
func (r *Relay) Send(record interface{}) {
	select {
	case r.queue <- record:
	case <-r.done:
		r.logger.Warn("telemetry relay closed, dropping record")
	default:
		r.logger.Warn("telemetry queue full, dropping record")
	}
}

// Close stops the worker after flushing whatever is already queued.
func (r *Relay) Close() {
	close(r.done)
	r.wg.Wait()
}

func (r *Relay) runLoop() {
	defer r.wg.Done()

	for {
		select {
		case record := <-r.queue:
			r.ship(record)
		case <-r.done:
			for {
				select {
				case record := <-r.queue:
					r.ship(record)
				default:
					return
				}
			}
		}
	}
}

// envelope is the vendor's wire format: an array of these is the request
// body.
type envelope struct {
	Message    string     `json:"message"`
	Timestamp  int64      `json:"timestamp"`
	Attributes attributes `json:"attributes"`
}

type attributes struct {
	Level string      `json:"level"`
	Log   interface{} `json:"log"`
}

func (r *Relay) ship(record interface{}) {
	level, message, wire := describe(record)

	payload := []envelope{{
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
		Attributes: attributes{
			Level: level,
			Log:   wire,
		},
	}}

	body, err := json.Marshal(payload)
	if err != nil {
		r.logger.Warn("telemetry marshal failed", zap.Error(err))
		return
	}

	req, err := http.NewRequest(http.MethodPost, r.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		r.logger.Warn("telemetry request build failed", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-License-Key", r.cfg.LicenseKey)

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("telemetry send failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		r.logger.Warn("telemetry endpoint rejected record", zap.Int("status", resp.StatusCode))
	}
}

// describe derives the envelope's level and message from the record type.
// Traces carry their severity verbatim; request records derive it from the
// status code.
func describe(record interface{}) (level, message string, wire interface{}) {
	switch rec := record.(type) {
	case *entities.Trace:
		return strings.ToUpper(string(rec.Level)), rec.Message, traceWire(rec)
	case *entities.RequestLog:
		switch {
		case rec.StatusCode >= 500:
			level = "ERROR"
		case rec.StatusCode >= 400:
			level = "WARNING"
		default:
			level = "INFO"
		}
		message = fmt.Sprintf("%s %s - %d", rec.HTTPMethod, rec.Path, rec.StatusCode)
		return level, message, requestWire(rec)
	default:
		return "INFO", "No message provided", record
	}
}

// Wire shapes mirror the record fields with camel-cased names, nulls
// omitted.

type traceLogWire struct {
	TraceID    int64  `json:"traceId,omitempty"`
	LogID      string `json:"logId,omitempty"`
	Timestamp  string `json:"timestamp"`
	Level      string `json:"level"`
	Message    string `json:"message"`
	StackTrace string `json:"stackTrace,omitempty"`
}

type requestLogWire struct {
	LogID        string `json:"logId"`
	UserID       string `json:"userId,omitempty"`
	HTTPMethod   string `json:"httpMethod"`
	Path         string `json:"path"`
	StatusCode   int    `json:"statusCode"`
	RequestBody  string `json:"requestBody,omitempty"`
	ResponseBody string `json:"responseBody,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	DurationMs   int64  `json:"durationMs,omitempty"`
}

func traceWire(t *entities.Trace) traceLogWire {
	w := traceLogWire{
		TraceID:    t.TraceID,
		Timestamp:  t.Timestamp.UTC().Format(time.RFC3339Nano),
		Level:      string(t.Level),
		Message:    t.Message,
		StackTrace: t.StackTrace,
	}
	if t.LogID != nil {
		w.LogID = t.LogID.String()
	}
	return w
}

func requestWire(l *entities.RequestLog) requestLogWire {
	w := requestLogWire{
		LogID:      l.LogID.String(),
		HTTPMethod: l.HTTPMethod,
		Path:       l.Path,
		StatusCode: l.StatusCode,
		StartDate:  l.StartDate.UTC().Format(time.RFC3339Nano),
	}
	if l.UserID != nil {
		w.UserID = *l.UserID
	}
	if l.RequestBody != nil {
		w.RequestBody = *l.RequestBody
	}
	if l.ResponseBody != nil {
		w.ResponseBody = *l.ResponseBody
	}
	if l.EndDate != nil {
		w.EndDate = l.EndDate.UTC().Format(time.RFC3339Nano)
	}
	if l.Duration != nil {
		w.DurationMs = l.Duration.Milliseconds()
	}
	return w
}
