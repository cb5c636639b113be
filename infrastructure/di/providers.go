package di

import (
	"database/sql"
	"time"

	"accounts-backend/application/ports"
	"accounts-backend/application/services"
	"accounts-backend/infrastructure/config"
	"accounts-backend/infrastructure/persistence/sqlite"
	"accounts-backend/infrastructure/security"
	"accounts-backend/infrastructure/telemetry"
	"accounts-backend/interfaces/http/rest"
	"accounts-backend/interfaces/http/rest/handlers"
	"accounts-backend/interfaces/http/rest/middleware"
	"accounts-backend/pkg/auth"

	"go.uber.org/zap"
)

// TelemetrySink extends the outbound port with the shutdown hook the relay
// needs. Both the real relay and the disabled no-op satisfy it.
type TelemetrySink interface {
	ports.TelemetrySink
	Close()
}

// capturePrefixes are the path prefixes excluded from request auditing.
var capturePrefixes = []string{"/health", "/ready", "/swagger"}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDB opens the SQLite database and applies the schema
func ProvideDB(cfg *config.Config) (*sql.DB, error) {
	return sqlite.OpenDB(cfg.DatabasePath)
}

// ProvideTelemetrySink creates the secondary log sink, or a no-op when
// telemetry is disabled
func ProvideTelemetrySink(cfg *config.Config, logger *zap.Logger) TelemetrySink {
	if !cfg.TelemetryEnabled {
		return telemetry.NewNoop()
	}
	return telemetry.NewRelay(telemetry.Config{
		Endpoint:   cfg.TelemetryEndpoint,
		LicenseKey: cfg.TelemetryLicenseKey,
		QueueSize:  cfg.TelemetryQueueSize,
		Timeout:    5 * time.Second,
	}, logger)
}

// ProvideUserRepository creates the user repository
func ProvideUserRepository(db *sql.DB) ports.UserRepository {
	return sqlite.NewUserRepository(db)
}

// ProvideLogRepository creates the log repository
func ProvideLogRepository(db *sql.DB) ports.LogRepository {
	return sqlite.NewLogRepository(db)
}

// ProvidePasswordHasher creates the bcrypt password hasher
func ProvidePasswordHasher() ports.PasswordHasher {
	return security.NewBcryptHasher(0)
}

// ProvideLoggerService creates the resilient audit logger
func ProvideLoggerService(repo ports.LogRepository, sink TelemetrySink, cfg *config.Config, logger *zap.Logger) *services.LoggerService {
	return services.NewLoggerService(repo, sink, cfg.TelemetryEnabled, logger)
}

// ProvidePasswordPolicy creates the password policy from configuration
func ProvidePasswordPolicy(cfg *config.Config) services.PasswordPolicy {
	policy := services.DefaultPasswordPolicy()
	if cfg.PasswordMinLength > 0 {
		policy.MinLength = cfg.PasswordMinLength
	}
	return policy
}

// ProvideUserService creates the user service
func ProvideUserService(users ports.UserRepository, hasher ports.PasswordHasher, policy services.PasswordPolicy) *services.UserService {
	return services.NewUserService(users, hasher, policy)
}

// ProvideJWTConfig builds the shared JWT settings
func ProvideJWTConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	}
}

// ProvideJWTValidator creates the token validator
func ProvideJWTValidator(jwtCfg auth.JWTConfig) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(jwtCfg)
}

// ProvideJWTGenerator creates the token generator
func ProvideJWTGenerator(jwtCfg auth.JWTConfig) (*auth.JWTGenerator, error) {
	return auth.NewJWTGenerator(jwtCfg)
}

// ProvideAuthService creates the authentication service
func ProvideAuthService(generator *auth.JWTGenerator) *services.AuthService {
	return services.NewAuthService(generator)
}

// ProvideCapture creates the request audit middleware
func ProvideCapture(logger *services.LoggerService, fallback *zap.Logger) *middleware.Capture {
	return middleware.NewCapture(logger, fallback, capturePrefixes)
}

// ProvideErrorClassifier creates the error classification middleware
func ProvideErrorClassifier(logger *services.LoggerService, fallback *zap.Logger) *middleware.ErrorClassifier {
	return middleware.NewErrorClassifier(logger, fallback)
}

// ProvideAuthenticator creates the JWT authentication middleware
func ProvideAuthenticator(validator *auth.JWTValidator) *middleware.Authenticator {
	return middleware.NewAuthenticator(validator)
}

// ProvideUserHandler creates the user endpoints handler
func ProvideUserHandler(users *services.UserService) *handlers.UserHandler {
	return handlers.NewUserHandler(users)
}

// ProvideAuthHandler creates the login endpoint handler
func ProvideAuthHandler(users *services.UserService, authSvc *services.AuthService) *handlers.AuthHandler {
	return handlers.NewAuthHandler(users, authSvc)
}

// ProvideHealthHandler creates the probe endpoints handler
func ProvideHealthHandler(db *sql.DB) *handlers.HealthHandler {
	return handlers.NewHealthHandler(db)
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	classifier *middleware.ErrorClassifier,
	capture *middleware.Capture,
	authn *middleware.Authenticator,
	users *handlers.UserHandler,
	authH *handlers.AuthHandler,
	health *handlers.HealthHandler,
) *rest.Router {
	return rest.NewRouter(classifier, capture, authn, users, authH, health)
}
