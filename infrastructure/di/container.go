package di

import (
	"database/sql"

	"accounts-backend/application/services"
	"accounts-backend/infrastructure/config"
	"accounts-backend/interfaces/http/rest"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *sql.DB
	Telemetry     TelemetrySink
	LoggerService *services.LoggerService
	Router        *rest.Router
}

// Close releases the container's resources. The telemetry relay is drained
// before the database handle goes away.
func (c *Container) Close() {
	c.Telemetry.Close()
	if err := c.DB.Close(); err != nil {
		c.Logger.Error("failed to close database", zap.Error(err))
	}
}
