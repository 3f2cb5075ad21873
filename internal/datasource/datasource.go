package datasource

import (
	"context"
	"fmt"
	"time"

	"colsweep/internal/analysis"
	"colsweep/internal/query"
)

// DataSource is the boundary the analysis core consumes: something
// that returns a materialized table given a query. Connection
// strategy, retries, and driver selection live behind it.
type DataSource interface {
	Fetch(ctx context.Context, queryStr string, args ...interface{}) (*analysis.Table, error)
	FetchSample(ctx context.Context, schema, table string, limit int) (*analysis.Table, error)
	ListTables(ctx context.Context, schema string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config holds connection configuration for one database.
type Config struct {
	Name     string
	Driver   string
	Host     string
	Port     int
	Database string
	Schema   string
	Username string
	Password string

	// Snowflake-specific
	Account   string
	Warehouse string
	Role      string

	Timeout time.Duration
}

// dialect supplies everything driver-specific: the DSN, parameter
// markers, row limiting, and catalog queries.
type dialect interface {
	query.Dialect
	driverName() string
	dsn(cfg Config) (string, error)
	listTablesQuery(schema string) (string, []interface{})
	defaultSchema() string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case "sqlserver", "mssql":
		return sqlServerDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "snowflake":
		return snowflakeDialect{}, nil
	}
	return nil, fmt.Errorf("unsupported driver: %s", driver)
}

// ValidateConfig validates a connection configuration.
func ValidateConfig(cfg Config) error {
	if cfg.Driver == "" {
		return fmt.Errorf("driver is required")
	}
	if _, err := dialectFor(cfg.Driver); err != nil {
		return err
	}
	if cfg.Driver == "snowflake" {
		if cfg.Account == "" {
			return fmt.Errorf("account is required for snowflake")
		}
	} else if cfg.Host == "" {
		return fmt.Errorf("host is required")
	}
	if cfg.Database == "" {
		return fmt.Errorf("database is required")
	}
	if cfg.Username == "" {
		return fmt.Errorf("username is required")
	}
	return nil
}
