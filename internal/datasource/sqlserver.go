package datasource

import (
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
)

// sqlServerDialect targets SQL Server via the go-mssqldb driver.
type sqlServerDialect struct{}

func (sqlServerDialect) driverName() string { return "sqlserver" }

func (sqlServerDialect) defaultSchema() string { return "dbo" }

func (sqlServerDialect) dsn(cfg Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = 1433
	}

	u := &url.URL{
		Scheme: "sqlserver",
		User:   url.UserPassword(cfg.Username, cfg.Password),
		Host:   fmt.Sprintf("%s:%d", cfg.Host, port),
	}
	values := url.Values{}
	values.Set("database", cfg.Database)
	values.Set("TrustServerCertificate", "true")
	u.RawQuery = values.Encode()

	return u.String(), nil
}

func (sqlServerDialect) Placeholder(n int) string {
	return fmt.Sprintf("@p%d", n)
}

func (sqlServerDialect) Limit(query string, n int) string {
	// SQL Server has no LIMIT clause; rewrite to SELECT TOP.
	if strings.HasPrefix(query, "SELECT ") {
		return fmt.Sprintf("SELECT TOP %d %s", n, strings.TrimPrefix(query, "SELECT "))
	}
	return query
}

func (sqlServerDialect) listTablesQuery(schema string) (string, []interface{}) {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = @p1 AND table_type = 'BASE TABLE' ORDER BY table_name", []interface{}{schema}
}
