package middleware

import (
	"net/http"
	"strings"

	"accounts-backend/pkg/auth"
	apperrors "accounts-backend/pkg/errors"
)

// Authenticator guards routes with JWT bearer authentication. It runs before
// the audit stage so the capture middleware can attribute the request to the
// authenticated caller. Failures surface as unauthorized errors and are
// classified like any other handler failure.
type Authenticator struct {
	validator *auth.JWTValidator
}

func NewAuthenticator(validator *auth.JWTValidator) *Authenticator {
	return &Authenticator{validator: validator}
}

// Authenticate validates the bearer token and threads the caller identity
// into the request context.
func (a *Authenticator) Authenticate(next Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		token, err := extractBearerToken(r)
		if err != nil {
			return err
		}

		claims, err := a.validator.ValidateToken(token)
		if err != nil {
			return apperrors.NewUnauthorizedError("Invalid Token, not Authenticated.").WithCause(err)
		}

		user := &auth.UserContext{
			UserID: claims.UserID,
			Name:   claims.Name,
			Role:   claims.Role,
		}
		return next(w, r.WithContext(auth.SetUserInContext(r.Context(), user)))
	}
}

// RequireAdmin rejects authenticated callers that do not hold the Admin
// role. It must sit inside Authenticate.
func RequireAdmin(next Handler) Handler {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := auth.GetUserFromContext(r.Context())
		if err != nil {
			return apperrors.NewUnauthorizedError("Invalid Token, not Authenticated.").WithCause(err)
		}
		if !user.IsAdmin() {
			return apperrors.NewForbiddenError("Access Denied! You do not have permission to perform this operation.")
		}
		return next(w, r)
	}
}

func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.NewUnauthorizedError("Invalid Token, not Authenticated.").WithCause(auth.ErrMissingToken)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperrors.NewUnauthorizedError("Invalid Token, not Authenticated.").WithCause(auth.ErrInvalidToken)
	}
	return parts[1], nil
}
