package datasource

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"colsweep/internal/analysis"
	"colsweep/internal/query"
	"colsweep/pkg/errors"
)

// Service provides table sampling over a single database connection.
// It implements DataSource for every supported driver.
type Service struct {
	db        *sql.DB
	config    Config
	dialect   dialect
	connected bool
}

// NewService creates a service for the configured driver. The
// connection is not opened until Connect.
func NewService(config Config) (*Service, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid connection configuration").
			WithContext("connection", config.Name)
	}
	d, err := dialectFor(config.Driver)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUnsupportedDriver, "cannot create data source")
	}
	if config.Schema == "" {
		config.Schema = d.defaultSchema()
		if config.Schema == "" {
			config.Schema = config.Database
		}
	}
	return &Service{config: config, dialect: d}, nil
}

// Config returns the connection configuration the service was built with.
func (s *Service) Config() Config {
	return s.config
}

// Dialect exposes the driver's SQL dialect for query building.
func (s *Service) Dialect() query.Dialect {
	return s.dialect
}

// Connect establishes and verifies the connection, retrying transient
// failures with backoff.
func (s *Service) Connect(ctx context.Context) error {
	if s.connected {
		return nil
	}

	return errors.RetryWithBackoff(ctx, func(ctx context.Context) error {
		dsn, err := s.dialect.dsn(s.config)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to build connection string").
				WithContext("driver", s.config.Driver)
		}

		db, err := sql.Open(s.dialect.driverName(), dsn)
		if err != nil {
			return errors.ConnectionError("Failed to open database connection", err).
				WithContext("driver", s.config.Driver).
				WithContext("host", s.config.Host)
		}

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(10 * time.Minute)

		pingCtx, cancel := s.queryContext(ctx)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			db.Close()

			if strings.Contains(strings.ToLower(err.Error()), "authentication") ||
				strings.Contains(strings.ToLower(err.Error()), "login failed") {
				return errors.New(errors.ErrCodeAuthenticationFailed, "Authentication failed").
					WithContext("user", s.config.Username).
					WithContext("database", s.config.Database).
					WithSuggestions(
						"Verify your username and password",
						"Check if your account is locked",
					)
			}

			return errors.ConnectionError("Failed to connect to database", err).
				WithContext("driver", s.config.Driver).
				WithContext("database", s.config.Database).
				AsRecoverable()
		}

		s.db = db
		s.connected = true
		return nil
	})
}

// Ping verifies the connection is still alive.
func (s *Service) Ping(ctx context.Context) error {
	if !s.connected {
		return errors.New(errors.ErrCodeConnectionFailed, "Not connected to database").
			WithSuggestions("Call Connect() before using the data source")
	}
	pingCtx, cancel := s.queryContext(ctx)
	defer cancel()
	return s.db.PingContext(pingCtx)
}

// Close closes the database connection.
func (s *Service) Close() error {
	if !s.connected {
		return nil
	}
	s.connected = false
	return s.db.Close()
}

// Fetch runs a query and materializes the full result set. A failed
// query surfaces as a described error, never as an empty table.
func (s *Service) Fetch(ctx context.Context, queryStr string, args ...interface{}) (*analysis.Table, error) {
	if !s.connected {
		return nil, errors.New(errors.ErrCodeConnectionFailed, "Not connected to database").
			WithSuggestions("Call Connect() before fetching data")
	}

	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, queryStr, args...)
	if err != nil {
		return nil, errors.QueryError("Query execution failed", queryStr, err).
			WithContext("database", s.config.Database)
	}
	defer rows.Close()

	table, err := scanTable(rows)
	if err != nil {
		return nil, err
	}

	table.Query = queryStr
	table.QueryParams = args
	return table, nil
}

// FetchSample retrieves up to limit rows of the table, optionally
// restricted by a projection and filter clauses.
func (s *Service) FetchSample(ctx context.Context, schema, table string, limit int) (*analysis.Table, error) {
	return s.FetchFiltered(ctx, schema, table, nil, nil, limit)
}

// FetchFiltered builds and runs the sampling query with the given
// projection and filters.
func (s *Service) FetchFiltered(ctx context.Context, schema, table string, columns []string, filters []query.Filter, limit int) (*analysis.Table, error) {
	if schema == "" {
		schema = s.config.Schema
	}

	queryStr, args, err := query.BuildSelect(query.SelectOptions{
		Schema:  schema,
		Table:   table,
		Columns: columns,
		Filters: filters,
		Limit:   limit,
	}, s.dialect)
	if err != nil {
		return nil, err
	}

	result, err := s.Fetch(ctx, queryStr, args...)
	if err != nil {
		return nil, err
	}

	result.Name = table
	result.Schema = schema
	for _, f := range filters {
		result.Filters = append(result.Filters, f.String())
	}
	return result, nil
}

// ListTables returns the table names visible in the schema.
func (s *Service) ListTables(ctx context.Context, schema string) ([]string, error) {
	if !s.connected {
		return nil, errors.New(errors.ErrCodeConnectionFailed, "Not connected to database")
	}
	if schema == "" {
		schema = s.config.Schema
	}

	queryStr, args := s.dialect.listTablesQuery(schema)

	queryCtx, cancel := s.queryContext(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(queryCtx, queryStr, args...)
	if err != nil {
		return nil, errors.QueryError("Failed to list tables", queryStr, err).
			WithContext("schema", schema)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeQueryFailed, "Failed to scan table name")
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

func (s *Service) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
