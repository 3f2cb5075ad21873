package datasource

import (
	"fmt"

	_ "github.com/snowflakedb/gosnowflake"
)

// snowflakeDialect targets Snowflake via gosnowflake.
type snowflakeDialect struct{}

func (snowflakeDialect) driverName() string { return "snowflake" }

func (snowflakeDialect) defaultSchema() string { return "PUBLIC" }

func (snowflakeDialect) dsn(cfg Config) (string, error) {
	if cfg.Account == "" {
		return "", fmt.Errorf("snowflake account is required")
	}
	dsn := fmt.Sprintf("%s:%s@%s/%s/%s", cfg.Username, cfg.Password, cfg.Account, cfg.Database, cfg.Schema)
	sep := "?"
	if cfg.Warehouse != "" {
		dsn += sep + "warehouse=" + cfg.Warehouse
		sep = "&"
	}
	if cfg.Role != "" {
		dsn += sep + "role=" + cfg.Role
	}
	return dsn, nil
}

func (snowflakeDialect) Placeholder(int) string {
	return "?"
}

func (snowflakeDialect) Limit(query string, n int) string {
	return fmt.Sprintf("%s LIMIT %d", query, n)
}

func (snowflakeDialect) listTablesQuery(schema string) (string, []interface{}) {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name", []interface{}{schema}
}
