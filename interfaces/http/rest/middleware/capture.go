package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"accounts-backend/application/services"
	"accounts-backend/domain/entities"
	"accounts-backend/pkg/auth"
	"accounts-backend/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Capture is the audit stage of the pipeline. It writes the initial request
// record before dispatching downstream and completes it afterwards, so a
// record with no completion fields is the durable evidence of a failed call.
// Response bytes are buffered and flushed unchanged only when the downstream
// handler succeeds; on failure nothing is written and the classifier further
// out owns the response.
type Capture struct {
	logger       *services.LoggerService
	fallback     *zap.Logger
	skipPrefixes []string
}

// NewCapture creates the audit middleware. Paths matching any of the given
// prefixes bypass auditing entirely.
func NewCapture(logger *services.LoggerService, fallback *zap.Logger, skipPrefixes []string) *Capture {
	return &Capture{
		logger:       logger,
		fallback:     fallback,
		skipPrefixes: skipPrefixes,
	}
}

// Wrap decorates an error-returning handler with request auditing.
func (c *Capture) Wrap(next Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		if c.skip(r.URL.Path) {
			return next(w, r)
		}

		ctx := r.Context()
		logID, ok := common.GetCorrelationID(ctx)
		if !ok {
			logID = uuid.New()
			ctx = common.WithCorrelationID(ctx, logID)
		}
		r = r.WithContext(ctx)

		record := entities.NewRequestLog(logID, r.Method, r.URL.Path)
		if user, err := auth.GetUserFromContext(ctx); err == nil {
			record.UserID = &user.UserID
		}
		if body := c.readBody(r); strings.TrimSpace(body) != "" {
			record.RequestBody = &body
		}

		// The initial write happens before the handler runs. If the record
		// cannot be persisted the call is refused outright, because a call
		// that leaves no audit trail must not reach business code.
		if err := c.logger.LogRequest(ctx, record); err != nil {
			common.RespondError(w, http.StatusInternalServerError, common.ErrorResponse{
				Message: "An error occurred processing your request.",
				Detail:  "Contact our support and send the LogId returned.",
				LogID:   &logID,
			})
			return nil
		}

		rec := newResponseRecorder(w)
		if err := next(rec, r); err != nil {
			return err
		}

		rec.flush()

		responseBody := rec.bodyString()
		record.Complete(rec.status(), responseBody, time.Now().UTC())
		if err := c.logger.UpdateRequestLog(ctx, record); err != nil {
			// The response already reached the client; all that is left is
			// to note the incomplete record locally.
			c.fallback.Error("request record left incomplete",
				zap.Stringer("logId", logID),
				zap.Error(err),
			)
		}
		return nil
	}
}

func (c *Capture) skip(path string) bool {
	for _, prefix := range c.skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// readBody drains the request body into memory and replaces it with a fresh
// reader so the handler sees the stream untouched.
func (c *Capture) readBody(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	data, err := io.ReadAll(r.Body)
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	return string(data)
}

// responseRecorder buffers the downstream response. It shares the real
// header map so handlers set headers exactly once; status and body are held
// back until flush. An unflushed recorder leaves the real writer untouched.
type responseRecorder struct {
	inner      http.ResponseWriter
	buf        bytes.Buffer
	statusCode int
	wroteCode  bool
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{inner: w}
}

func (r *responseRecorder) Header() http.Header {
	return r.inner.Header()
}

func (r *responseRecorder) WriteHeader(code int) {
	if r.wroteCode {
		return
	}
	r.statusCode = code
	r.wroteCode = true
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if !r.wroteCode {
		r.WriteHeader(http.StatusOK)
	}
	return r.buf.Write(p)
}

func (r *responseRecorder) status() int {
	if !r.wroteCode {
		return http.StatusOK
	}
	return r.statusCode
}

func (r *responseRecorder) bodyString() *string {
	s := r.buf.String()
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// flush replays the buffered response onto the real writer byte for byte.
func (r *responseRecorder) flush() {
	r.inner.WriteHeader(r.status())
	if r.buf.Len() > 0 {
		r.inner.Write(r.buf.Bytes())
	}
}
