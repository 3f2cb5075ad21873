package datasource

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"colsweep/internal/analysis"
	"colsweep/internal/query"
	"colsweep/pkg/errors"
)

func mockService(t *testing.T, d dialect) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := &Service{
		db:        db,
		config:    Config{Name: "mock", Driver: d.driverName(), Database: "testdb", Schema: d.defaultSchema()},
		dialect:   d,
		connected: true,
	}
	return svc, mock
}

func TestNewServiceValidation(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantError bool
	}{
		{
			name:   "valid sqlserver",
			config: Config{Driver: "sqlserver", Host: "db.local", Database: "app", Username: "svc"},
		},
		{
			name:   "valid snowflake",
			config: Config{Driver: "snowflake", Account: "xy12345", Database: "APP", Username: "svc"},
		},
		{
			name:      "missing driver",
			config:    Config{Host: "db.local", Database: "app", Username: "svc"},
			wantError: true,
		},
		{
			name:      "unknown driver",
			config:    Config{Driver: "oracle", Host: "db.local", Database: "app", Username: "svc"},
			wantError: true,
		},
		{
			name:      "snowflake without account",
			config:    Config{Driver: "snowflake", Database: "APP", Username: "svc"},
			wantError: true,
		},
		{
			name:      "missing host",
			config:    Config{Driver: "postgres", Database: "app", Username: "svc"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(tt.config)
			if tt.wantError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, svc)
				assert.False(t, svc.connected)
			}
		})
	}
}

func TestNewServiceSchemaDefaults(t *testing.T) {
	svc, err := NewService(Config{Driver: "sqlserver", Host: "h", Database: "app", Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, "dbo", svc.Config().Schema)

	svc, err = NewService(Config{Driver: "mysql", Host: "h", Database: "app", Username: "u"})
	require.NoError(t, err)
	assert.Equal(t, "app", svc.Config().Schema)

	svc, err = NewService(Config{Driver: "postgres", Host: "h", Database: "app", Username: "u", Schema: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", svc.Config().Schema)
}

func TestFetchMaterializesTable(t *testing.T) {
	svc, mock := mockService(t, sqlServerDialect{})

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("INT", int64(0)),
		sqlmock.NewColumn("name").OfType("NVARCHAR", ""),
		sqlmock.NewColumn("created_at").OfType("DATETIME2", nil),
	).
		AddRow(int64(1), "alice", nil).
		AddRow(int64(2), nil, nil).
		AddRow(int64(3), []byte("bob"), nil)

	mock.ExpectQuery("SELECT \\* FROM dbo.users").WillReturnRows(rows)

	table, err := svc.Fetch(context.Background(), "SELECT * FROM dbo.users")
	require.NoError(t, err)

	assert.Equal(t, 3, table.RowCount)
	require.Len(t, table.Columns, 3)

	assert.Equal(t, analysis.KindNumeric, table.Columns[0].Kind)
	assert.Equal(t, analysis.KindText, table.Columns[1].Kind)
	assert.Equal(t, analysis.KindTemporal, table.Columns[2].Kind)

	// Raw bytes normalize to strings, nil stays the null marker.
	assert.Equal(t, []interface{}{"alice", nil, "bob"}, table.Columns[1].Values)
	assert.Equal(t, "SELECT * FROM dbo.users", table.Query)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchZeroRowsIsNotAnError(t *testing.T) {
	svc, mock := mockService(t, postgresDialect{})

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("INT8", int64(0)),
	)
	mock.ExpectQuery("SELECT \\* FROM public.empty_table").WillReturnRows(rows)

	table, err := svc.Fetch(context.Background(), "SELECT * FROM public.empty_table")
	require.NoError(t, err)

	assert.Equal(t, 0, table.RowCount)
	assert.Len(t, table.Columns, 1)
}

func TestFetchQueryFailureIsDescribed(t *testing.T) {
	svc, mock := mockService(t, sqlServerDialect{})

	mock.ExpectQuery("SELECT \\* FROM dbo.missing").
		WillReturnError(fmt.Errorf("invalid object name 'dbo.missing'"))

	table, err := svc.Fetch(context.Background(), "SELECT * FROM dbo.missing")

	// A failed query is an error, never an empty table.
	require.Error(t, err)
	assert.Nil(t, table)
	assert.Equal(t, errors.ErrCodeQueryFailed, errors.GetErrorCode(err))
	assert.Contains(t, err.Error(), "invalid object name")
}

func TestFetchNotConnected(t *testing.T) {
	svc := &Service{config: Config{Driver: "postgres"}, dialect: postgresDialect{}}

	_, err := svc.Fetch(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConnectionFailed, errors.GetErrorCode(err))
}

func TestFetchFiltered(t *testing.T) {
	svc, mock := mockService(t, sqlServerDialect{})

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("id").OfType("INT", int64(0)),
	).AddRow(int64(7))

	mock.ExpectQuery("SELECT TOP 100 id FROM dbo.orders WHERE status = @p1").
		WithArgs("open").
		WillReturnRows(rows)

	filters := []query.Filter{{Column: "status", Operator: query.OpEqual, Value: "open"}}
	table, err := svc.FetchFiltered(context.Background(), "", "orders", []string{"id"}, filters, 100)
	require.NoError(t, err)

	assert.Equal(t, "orders", table.Name)
	assert.Equal(t, "dbo", table.Schema)
	assert.Equal(t, []string{"status = open"}, table.Filters)
	assert.Equal(t, []interface{}{"open"}, table.QueryParams)
	assert.Contains(t, table.Query, "SELECT TOP 100 id")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchFilteredRejectsBadOperator(t *testing.T) {
	svc, _ := mockService(t, postgresDialect{})

	filters := []query.Filter{{Column: "x", Operator: "BETWEEN", Value: 1}}
	_, err := svc.FetchFiltered(context.Background(), "", "t", nil, filters, 0)

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFilterOperator, errors.GetErrorCode(err))
}

func TestListTables(t *testing.T) {
	svc, mock := mockService(t, postgresDialect{})

	rows := sqlmock.NewRows([]string{"table_name"}).
		AddRow("customers").
		AddRow("orders")

	mock.ExpectQuery("SELECT table_name FROM information_schema.tables").
		WithArgs("public").
		WillReturnRows(rows)

	tables, err := svc.ListTables(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "orders"}, tables)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChainConnectEmpty(t *testing.T) {
	_, err := NewChain().Connect(context.Background())

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigMissing, errors.GetErrorCode(err))
}

func TestChainConnectReportsEveryAttempt(t *testing.T) {
	configs := []Config{
		{Name: "first", Driver: "oracle", Host: "h", Database: "d", Username: "u"},
		{Name: "second", Driver: "nosuchdb", Host: "h", Database: "d", Username: "u"},
	}

	_, err := NewChain(configs...).Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConnectionFailed, errors.GetErrorCode(err))

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	attempts, _ := appErr.Context["attempts"].(string)
	assert.Contains(t, attempts, "first (oracle)")
	assert.Contains(t, attempts, "second (nosuchdb)")
}
