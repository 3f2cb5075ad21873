package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"colsweep/internal/analysis"
	"colsweep/internal/config"
	"colsweep/internal/datasource"
	"colsweep/internal/query"
	"colsweep/internal/report"
	"colsweep/internal/ui"
	"colsweep/pkg/errors"
	"colsweep/pkg/models"
)

var (
	connectionName string
	driverName     string
	dbHost         string
	dbPort         int
	dbDatabase     string
	dbSchema       string
	dbUsername     string
	dbPassword     string
	sfAccount      string
	sfWarehouse    string
	sfRole         string

	tableName     string
	filterExprs   []string
	columnNames   []string
	sampleLimit   int
	strictMode    bool
	nullThreshold float64
	zeroThreshold float64
	lowVariance   float64

	outputFormat string
	outputDir    string
	outputPrefix string
	noReportFile bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a table's columns for exclusion candidates",
	Long: `Sample a table, profile every column (null ratio, cardinality, zero ratio,
empty strings), and flag columns to drop. Prints the verdicts to the console
and writes a report file in the chosen format.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Connection flags
	analyzeCmd.Flags().StringVarP(&connectionName, "connection", "c", "", "Named connection from the config file")
	analyzeCmd.Flags().StringVar(&driverName, "driver", "", "Database driver: sqlserver, postgres, mysql, snowflake")
	analyzeCmd.Flags().StringVar(&dbHost, "host", "", "Database host")
	analyzeCmd.Flags().IntVar(&dbPort, "port", 0, "Database port (driver default if omitted)")
	analyzeCmd.Flags().StringVar(&dbDatabase, "database", "", "Database name")
	analyzeCmd.Flags().StringVar(&dbSchema, "schema", "", "Schema name (driver default if omitted)")
	analyzeCmd.Flags().StringVar(&dbUsername, "username", "", "Database user")
	analyzeCmd.Flags().StringVar(&dbPassword, "password", "", "Database password (prefer .env or the keyring)")
	analyzeCmd.Flags().StringVar(&sfAccount, "account", "", "Snowflake account")
	analyzeCmd.Flags().StringVar(&sfWarehouse, "warehouse", "", "Snowflake warehouse")
	analyzeCmd.Flags().StringVar(&sfRole, "role", "", "Snowflake role")

	// Analysis flags
	analyzeCmd.Flags().StringVarP(&tableName, "table", "t", "", "Table to analyze (prompted if omitted)")
	analyzeCmd.Flags().StringSliceVar(&filterExprs, "filter", []string{}, "Row filter, e.g. \"created_at>=2022-01-01\" (repeatable)")
	analyzeCmd.Flags().StringSliceVar(&columnNames, "columns", []string{}, "Restrict analysis to these columns")
	analyzeCmd.Flags().IntVar(&sampleLimit, "limit", 0, "Maximum rows to sample (0 = all rows)")
	analyzeCmd.Flags().BoolVar(&strictMode, "strict", false, "Use the strict threshold preset (nulls 70%, zeros 90%, variance 2%)")
	analyzeCmd.Flags().Float64Var(&nullThreshold, "null-threshold", 0, "Override the null percentage threshold")
	analyzeCmd.Flags().Float64Var(&zeroThreshold, "zero-threshold", 0, "Override the zero/empty percentage threshold")
	analyzeCmd.Flags().Float64Var(&lowVariance, "low-variance-threshold", 0, "Enable the low-variance rule below this distinct percentage")

	// Output flags
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "markdown", "Report format: text, markdown, html, json, csv, xlsx")
	analyzeCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory for the report file")
	analyzeCmd.Flags().StringVar(&outputPrefix, "prefix", report.DefaultPrefix, "Report file name prefix")
	analyzeCmd.Flags().BoolVar(&noReportFile, "no-file", false, "Print to the console only, do not write a report file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	configs, err := resolveConnections(cfg)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	filters, err := query.ParseFilters(filterExprs)
	if err != nil {
		return err
	}

	thresholds := resolveThresholds(cmd, cfg)
	if err := thresholds.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeValidationFailed, "invalid thresholds")
	}

	ui.ShowHeader("Column Exclusion Analysis")

	svc, err := datasource.NewChain(configs...).Connect(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()
	ui.ShowInfo(fmt.Sprintf("Connected via %s", svc.Config().Driver))

	if tableName == "" {
		tableName, err = promptForTable(ctx, svc)
		if err != nil {
			return err
		}
	}

	limit := sampleLimit
	if limit == 0 {
		limit = cfg.Analysis.SampleLimit
	}

	start := time.Now()
	table, err := svc.FetchFiltered(ctx, dbSchema, tableName, columnNames, filters, limit)
	if err != nil {
		return err
	}
	ui.ShowInfo(fmt.Sprintf("Fetched %d rows, %d columns in %s", table.RowCount, len(table.Columns), time.Since(start).Round(time.Millisecond)))

	result, err := analysis.Analyze(table, thresholds)
	if err != nil {
		return err
	}

	reporter := report.NewReporter(result)

	console, err := reporter.Generate(report.FormatText)
	if err != nil {
		return err
	}
	fmt.Println(console)

	if !noReportFile {
		path, err := reporter.WriteFile(resolveOutputDir(cfg), resolvePrefix(cfg), format)
		if err != nil {
			return err
		}
		ui.ShowSuccess("Report saved: " + path)
	}

	return nil
}

// resolveConnections builds the ordered connection candidates: an
// explicit named connection, an ad hoc one from flags, or every
// configured connection as a fallback chain.
func resolveConnections(cfg *models.Config) ([]datasource.Config, error) {
	if connectionName != "" {
		conn := cfg.FindConnection(connectionName)
		if conn == nil {
			return nil, errors.New(errors.ErrCodeConfigNotFound, "connection not found: "+connectionName).
				WithSuggestions("Run 'colsweep setup' to configure it", "Check the connection name in ~/.colsweep/config.yaml")
		}
		return []datasource.Config{toDataSourceConfig(conn)}, nil
	}

	if driverName != "" || dbHost != "" {
		conn := &models.Connection{
			Name:      "cli",
			Driver:    driverName,
			Host:      dbHost,
			Port:      dbPort,
			Database:  dbDatabase,
			Schema:    dbSchema,
			Username:  dbUsername,
			Password:  dbPassword,
			Account:   sfAccount,
			Warehouse: sfWarehouse,
			Role:      sfRole,
		}
		return []datasource.Config{toDataSourceConfig(conn)}, nil
	}

	if len(cfg.Connections) == 0 {
		return nil, errors.New(errors.ErrCodeConfigMissing, "No database connections configured").
			WithSuggestions("Run 'colsweep setup' to configure a connection", "Or pass --driver/--host/--database flags")
	}

	configs := make([]datasource.Config, 0, len(cfg.Connections))
	for i := range cfg.Connections {
		configs = append(configs, toDataSourceConfig(&cfg.Connections[i]))
	}
	return configs, nil
}

func toDataSourceConfig(conn *models.Connection) datasource.Config {
	return datasource.Config{
		Name:      conn.Name,
		Driver:    conn.Driver,
		Host:      conn.Host,
		Port:      conn.Port,
		Database:  conn.Database,
		Schema:    conn.Schema,
		Username:  conn.Username,
		Password:  config.ResolvePassword(conn),
		Account:   conn.Account,
		Warehouse: conn.Warehouse,
		Role:      conn.Role,
		Timeout:   conn.Timeout,
	}
}

// resolveThresholds starts from the preset and applies config file
// values, then explicit flag overrides.
func resolveThresholds(cmd *cobra.Command, cfg *models.Config) analysis.ThresholdConfig {
	thresholds := analysis.RelaxedThresholds()
	if strictMode || cfg.Analysis.Strict {
		thresholds = analysis.StrictThresholds()
	}

	if cfg.Analysis.NullThresholdPercent > 0 {
		thresholds.NullThresholdPercent = cfg.Analysis.NullThresholdPercent
	}
	if cfg.Analysis.ZeroThresholdPercent > 0 {
		thresholds.ZeroThresholdPercent = cfg.Analysis.ZeroThresholdPercent
	}
	if cfg.Analysis.LowVarianceThresholdPercent > 0 {
		thresholds.LowVarianceThresholdPercent = cfg.Analysis.LowVarianceThresholdPercent
	}

	if cmd.Flags().Changed("null-threshold") {
		thresholds.NullThresholdPercent = nullThreshold
	}
	if cmd.Flags().Changed("zero-threshold") {
		thresholds.ZeroThresholdPercent = zeroThreshold
	}
	if cmd.Flags().Changed("low-variance-threshold") {
		thresholds.LowVarianceThresholdPercent = lowVariance
	}
	return thresholds
}

func resolveOutputDir(cfg *models.Config) string {
	if outputDir != "." || cfg.Report.OutputDir == "" {
		return outputDir
	}
	return cfg.Report.OutputDir
}

func resolvePrefix(cfg *models.Config) string {
	if outputPrefix != report.DefaultPrefix || cfg.Report.Prefix == "" {
		return outputPrefix
	}
	return cfg.Report.Prefix
}

// promptForTable lets the user pick a table interactively when none
// was passed on the command line.
func promptForTable(ctx context.Context, svc *datasource.Service) (string, error) {
	tables, err := svc.ListTables(ctx, dbSchema)
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "", errors.EmptyInputError("no tables found in schema")
	}

	var selected string
	prompt := &survey.Select{
		Message:  "Select a table to analyze:",
		Options:  tables,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}
	return selected, nil
}
