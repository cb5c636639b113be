package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"accounts-backend/application/services"
	"accounts-backend/domain/entities"
	"accounts-backend/pkg/common"
	apperrors "accounts-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errorMessage is the fixed outward-facing line for every classified failure.
// Internal failures additionally hide their detail behind supportDetail so
// cause text never leaks on a 500.
const (
	errorMessage  = "An error occurred processing your request."
	supportDetail = "Contact our support and send the LogId returned."
)

// ErrorClassifier is the outermost pipeline stage. It is the single place
// where handler errors and panics become HTTP responses: each failure is
// recorded as one diagnostic trace under the call's correlation id, then
// mapped to a status code by its kind. Expected kinds answer with the
// failure's own message; everything else is an internal error that exposes
// only the correlation id.
type ErrorClassifier struct {
	logger   *services.LoggerService
	fallback *zap.Logger
}

func NewErrorClassifier(logger *services.LoggerService, fallback *zap.Logger) *ErrorClassifier {
	return &ErrorClassifier{logger: logger, fallback: fallback}
}

// Wrap terminates an error-returning chain, producing a plain http.Handler.
func (c *ErrorClassifier) Wrap(next Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				err := apperrors.NewInternalError(fmt.Sprintf("unhandled panic: %v", rec))
				err.StackTrace = string(debug.Stack())
				c.classify(w, r, err)
			}
		}()

		if err := next(w, r); err != nil {
			c.classify(w, r, err)
		}
	})
}

func (c *ErrorClassifier) classify(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logID, ok := common.GetCorrelationID(ctx)
	if !ok {
		// The capture stage normally minted the id already. Minting here
		// keeps the trace recordable, at the cost of a record that will not
		// join with any request row.
		logID = uuid.New()
	}

	app := apperrors.GetAppError(err)
	stack := ""
	if app != nil {
		stack = app.StackTrace
	}

	trace := entities.NewTrace(logID, entities.LevelError, err.Error(), stack)
	if terr := c.logger.LogTrace(ctx, trace); terr != nil {
		c.fallback.Error("failed to record error trace",
			zap.Stringer("logId", logID),
			zap.Error(terr),
		)
	}

	detail := err.Error()
	if app != nil {
		detail = app.Message
	}

	status := statusFor(app)
	body := common.ErrorResponse{Message: errorMessage, Detail: detail}
	if status == http.StatusInternalServerError {
		body.Detail = supportDetail
		body.LogID = &logID
	}
	common.RespondError(w, status, body)
}

// statusFor maps a failure kind to its status code. Unknown kinds and plain
// errors fall through to 500.
func statusFor(app *apperrors.AppError) int {
	if app == nil {
		return http.StatusInternalServerError
	}
	switch app.Kind {
	case apperrors.KindValidation, apperrors.KindBusiness:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
