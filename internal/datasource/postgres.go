package datasource

import (
	"fmt"

	_ "github.com/lib/pq"
)

// postgresDialect targets PostgreSQL via lib/pq.
type postgresDialect struct{}

func (postgresDialect) driverName() string { return "postgres" }

func (postgresDialect) defaultSchema() string { return "public" }

func (postgresDialect) dsn(cfg Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, port, cfg.Username, cfg.Password, cfg.Database), nil
}

func (postgresDialect) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (postgresDialect) Limit(query string, n int) string {
	return fmt.Sprintf("%s LIMIT %d", query, n)
}

func (postgresDialect) listTablesQuery(schema string) (string, []interface{}) {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name", []interface{}{schema}
}
