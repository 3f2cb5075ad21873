package datasource

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// mysqlDialect targets MySQL/MariaDB via go-sql-driver.
type mysqlDialect struct{}

func (mysqlDialect) driverName() string { return "mysql" }

// MySQL has no separate schema level; the database is the schema.
func (mysqlDialect) defaultSchema() string { return "" }

func (mysqlDialect) dsn(cfg Config) (string, error) {
	port := cfg.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database), nil
}

func (mysqlDialect) Placeholder(int) string {
	return "?"
}

func (mysqlDialect) Limit(query string, n int) string {
	return fmt.Sprintf("%s LIMIT %d", query, n)
}

func (mysqlDialect) listTablesQuery(schema string) (string, []interface{}) {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = ? AND table_type = 'BASE TABLE' ORDER BY table_name", []interface{}{schema}
}
