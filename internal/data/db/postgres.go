package db

import (
	"fmt"

	"gorm.io/driver/postgres"

	"github.com/yungbote/bandit-backend/internal/platform/logger"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (c PostgresConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		sslMode,
	)
}

func openPostgres(cfg Config, logg *logger.Logger) (*Service, error) {
	return OpenDialector(DriverPostgres, postgres.Open(cfg.Postgres.DSN()), cfg, logg)
}
