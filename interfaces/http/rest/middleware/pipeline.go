package middleware

import (
	"net/http"

	"accounts-backend/pkg/common"

	"github.com/google/uuid"
)

// Handler is an HTTP handler that reports failure as an error value instead
// of writing its own error response. Errors travel up the middleware chain
// to the classifier, which is the only stage that turns them into responses.
type Handler func(w http.ResponseWriter, r *http.Request) error

// CorrelationID mints the per-request correlation id at the outermost entry
// point of the pipeline, reusing one if an enclosing stage already minted
// it. Every later stage reads the id from the request context; nothing else
// writes it.
func CorrelationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := common.GetCorrelationID(r.Context()); !ok {
			r = r.WithContext(common.WithCorrelationID(r.Context(), uuid.New()))
		}
		next.ServeHTTP(w, r)
	})
}
